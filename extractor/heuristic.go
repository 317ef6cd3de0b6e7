package extractor

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	bulletPrefixPattern = regexp.MustCompile(`^\s*([-*•]|\d+\.)\s+`)
	wordPattern         = regexp.MustCompile(`[A-Za-z']+`)
)

var keywordPrefixes = []string{"todo:", "action:", "next:"}

var imperativeStarters = map[string]bool{
	"add":         true,
	"create":      true,
	"implement":   true,
	"fix":         true,
	"update":      true,
	"write":       true,
	"check":       true,
	"verify":      true,
	"refactor":    true,
	"document":    true,
	"design":      true,
	"investigate": true,
}

// Heuristic extracts bulleted, keyword-prefixed and checkbox lines with their
// markers removed. When no line qualifies it falls back to imperative
// sentences. Results are deduplicated case-insensitively, first one wins.
// Only Text is populated.
type Heuristic struct{}

// Extract implements Extractor.
func (Heuristic) Extract(text string) []ActionItem {
	var found []string
	for _, line := range trimLines(text) {
		if !isHeuristicActionLine(line) {
			continue
		}
		cleaned := strings.TrimSpace(bulletPrefixPattern.ReplaceAllString(line, ""))
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "[ ]"))
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "[todo]"))
		found = append(found, cleaned)
	}

	if len(found) == 0 {
		for _, sentence := range SplitSentences(text) {
			if looksImperative(sentence) {
				found = append(found, sentence)
			}
		}
	}

	items := []ActionItem{}
	seen := make(map[string]bool, len(found))
	for _, s := range found {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, ActionItem{Text: s})
	}
	return items
}

func isHeuristicActionLine(line string) bool {
	stripped := strings.ToLower(strings.TrimSpace(line))
	if stripped == "" {
		return false
	}
	if bulletPrefixPattern.MatchString(stripped) {
		return true
	}
	for _, prefix := range keywordPrefixes {
		if strings.HasPrefix(stripped, prefix) {
			return true
		}
	}
	return strings.Contains(stripped, "[ ]") || strings.Contains(stripped, "[todo]")
}

// SplitSentences splits text at whitespace runs that follow '.', '!' or '?'.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	var (
		sentences []string
		start     int
	)
	runes := []rune(text)
	for i := 1; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) {
			continue
		}
		switch runes[i-1] {
		case '.', '!', '?':
		default:
			continue
		}
		if s := strings.TrimSpace(string(runes[start:i])); s != "" {
			sentences = append(sentences, s)
		}
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		start = i
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func looksImperative(sentence string) bool {
	first := wordPattern.FindString(sentence)
	if first == "" {
		return false
	}
	return imperativeStarters[strings.ToLower(first)]
}
