package extractor

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	cleanBulletPattern   = regexp.MustCompile(`^\s*([-*•]|\d+\.)\s*`)
	cleanCheckboxPattern = regexp.MustCompile(`^\s*\[( |x|X)\]\s*`)
	cleanKeywordPattern  = regexp.MustCompile(`(?i)^(TODO|Action|Next):?\s*`)
	lineMarkerPattern    = regexp.MustCompile(`^\d+\.`)
)

const minCleanedLength = 3

// CleanItem strips list markers, checkboxes, keyword prefixes and ellipses
// from a task string produced by a language model.
func CleanItem(item string) string {
	cleaned := cleanBulletPattern.ReplaceAllString(item, "")
	cleaned = cleanCheckboxPattern.ReplaceAllString(cleaned, "")
	// Twice, for "TODO: Action: ..." style stacking.
	cleaned = cleanKeywordPattern.ReplaceAllString(cleaned, "")
	cleaned = cleanKeywordPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, "...", "")
	return strings.TrimSpace(cleaned)
}

// ParseModelOutput reads the task list out of a chat completion. It accepts a
// JSON array, a JSON object holding an array, or plain lines as a last
// resort. Items shorter than three characters after cleaning are dropped.
func ParseModelOutput(content string) []string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.Trim(content, "`")
		if strings.HasPrefix(strings.ToLower(content), "json") {
			content = strings.TrimSpace(content[4:])
		}
	}

	raw, ok := decodeTaskList(content)
	if !ok || len(raw) == 0 {
		raw = raw[:0]
		for _, s := range trimLines(content) {
			if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "*") || strings.HasPrefix(s, "•") || lineMarkerPattern.MatchString(s) {
				s = cleanBulletPattern.ReplaceAllString(s, "")
			}
			if s != "" {
				raw = append(raw, s)
			}
		}
	}

	cleaned := []string{}
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if c := CleanItem(s); utf8.RuneCountInString(c) >= minCleanedLength {
			cleaned = append(cleaned, c)
		}
	}
	return cleaned
}

// decodeTaskList returns the top-level array, or the first array-valued
// field of a top-level object in document order.
func decodeTaskList(content string) ([]any, bool) {
	var list []any
	if err := json.Unmarshal([]byte(content), &list); err == nil {
		return list, true
	}

	dec := json.NewDecoder(strings.NewReader(content))
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}
	var first []any
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, false
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		if first != nil {
			continue
		}
		if err := json.Unmarshal(value, &list); err == nil && list != nil {
			first = list
		}
	}
	// the whole input must be exactly one object
	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return first, first != nil
}
