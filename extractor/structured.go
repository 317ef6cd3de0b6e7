package extractor

import (
	"regexp"
	"strings"
)

var actionVerbs = []string{
	"implement",
	"fix",
	"create",
	"update",
	"review",
	"deploy",
	"test",
	"refactor",
	"build",
	"setup",
	"configure",
	"investigate",
	"resolve",
}

var checkboxPattern = regexp.MustCompile(`^\s*\[[\sxX]\]`)

// Structured annotates every actionable line with priority, due date and
// assignee. Lines are kept in input order and never deduplicated.
type Structured struct{}

// Extract implements Extractor.
func (Structured) Extract(text string) []ActionItem {
	items := []ActionItem{}
	for _, line := range PrepareLines(text) {
		if !IsActionable(line) {
			continue
		}
		items = append(items, ActionItem{
			Text:     line,
			Priority: ExtractPriority(line),
			DueDate:  ExtractDueDate(line),
			Assignee: ExtractAssignee(line),
		})
	}
	return items
}

// Extract runs the Structured strategy.
func Extract(text string) []ActionItem {
	return Structured{}.Extract(text)
}

// PrepareLines splits text into trimmed, non-empty lines with any leading
// run of "-" and spaces removed.
func PrepareLines(text string) []string {
	var lines []string
	for _, line := range trimLines(text) {
		line = strings.TrimSpace(strings.TrimLeft(line, "- "))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// IsActionable reports whether a prepared line is an action item.
func IsActionable(line string) bool {
	normalized := strings.ToLower(strings.TrimSpace(line))

	if strings.HasPrefix(normalized, "todo:") || strings.HasPrefix(normalized, "action:") {
		return true
	}
	if checkboxPattern.MatchString(line) {
		return true
	}
	if strings.HasSuffix(strings.TrimRightFunc(line, isSpace), "!") {
		return true
	}
	for _, verb := range actionVerbs {
		if strings.HasPrefix(normalized, verb+" ") || strings.HasPrefix(normalized, verb+":") {
			return true
		}
	}
	return false
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
