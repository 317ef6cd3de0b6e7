package extractor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type priorityRule struct {
	pattern  *regexp.Regexp
	priority string
}

// Checked in order; the first hit wins.
var explicitPriorities = []priorityRule{
	{regexp.MustCompile(`(?i)\bP0\b`), PriorityP0},
	{regexp.MustCompile(`(?i)\bP1\b`), PriorityP1},
	{regexp.MustCompile(`(?i)\bP2\b`), PriorityP2},
	{regexp.MustCompile(`(?i)\bP3\b`), PriorityP3},
	{regexp.MustCompile(`(?i)\bhigh\b`), PriorityHigh},
	{regexp.MustCompile(`(?i)\bmedium\b`), PriorityMedium},
	{regexp.MustCompile(`(?i)\blow\b`), PriorityLow},
}

var (
	isoDatePattern   = regexp.MustCompile(`\b(\d{4}-\d{1,2}-\d{1,2})\b`)
	fullDatePattern  = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)
	shortDatePattern = regexp.MustCompile(`\b(\d{1,2}/\d{1,2})\b`)

	naturalDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bby\s+([A-Za-z]+day)\b`),
		regexp.MustCompile(`(?i)\bdue\s+([A-Za-z]+day)\b`),
		regexp.MustCompile(`(?i)\bby\s+([A-Za-z]+\s+\d{1,2})`),
		regexp.MustCompile(`(?i)\bdue\s+([A-Za-z]+\s+\d{1,2})`),
	}
)

var (
	handlePattern = regexp.MustCompile(`@([a-zA-Z0-9_-]+)`)

	assigneePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)assigned\s+to:\s*([^\s,]+)`),
		regexp.MustCompile(`(?i)owner:\s*([^\s,]+)`),
		regexp.MustCompile(`(?i)assignee:\s*([^\s,]+)`),
	}
)

// ExtractPriority returns the explicit priority token in line, or the
// priority implied by its trailing exclamation marks. Explicit tokens always
// win over the exclamation count.
func ExtractPriority(line string) string {
	for _, rule := range explicitPriorities {
		if findBounded(rule.pattern, line) != nil {
			return rule.priority
		}
	}

	trimmed := strings.TrimRightFunc(line, isSpace)
	switch n := len(trimmed) - len(strings.TrimRight(trimmed, "!")); {
	case n >= 3:
		return PriorityP0
	case n == 2:
		return PriorityP1
	case n == 1:
		return PriorityP2
	}
	return ""
}

// ExtractDueDate returns the first date expression found in line. Numeric
// dates are returned bare; natural-language dates keep their by/due keyword.
func ExtractDueDate(line string) string {
	for _, p := range []*regexp.Regexp{isoDatePattern, fullDatePattern, shortDatePattern} {
		if m := findBounded(p, line); m != nil {
			return line[m[2]:m[3]]
		}
	}
	for _, p := range naturalDatePatterns {
		if m := findBounded(p, line); m != nil {
			return strings.TrimSpace(line[m[0]:m[1]])
		}
	}
	return ""
}

// ExtractAssignee returns an @handle without the "@", or the token that
// follows an "assigned to:", "owner:" or "assignee:" keyword.
func ExtractAssignee(line string) string {
	if m := handlePattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	for _, p := range assigneePatterns {
		if m := p.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// findBounded returns the submatch indexes of the first match of re whose
// \b edges also hold against non-ASCII letters and digits. RE2 treats only
// ASCII as word characters, so "éP1" would otherwise match \bP1\b.
func findBounded(re *regexp.Regexp, s string) []int {
	trailing := strings.HasSuffix(re.String(), `\b`)
	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		if r, _ := utf8.DecodeLastRuneInString(s[:m[0]]); m[0] > 0 && isWordRune(r) {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(s[m[1]:]); trailing && m[1] < len(s) && isWordRune(r) {
			continue
		}
		return m
	}
	return nil
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
