package extractor

import "strings"

// SplitLines splits text at the same boundaries as Python's str.splitlines:
// \n, \r, \r\n, \v, \f, \x1c-\x1e, \x85, U+2028 and U+2029. A trailing
// boundary does not produce an empty final line.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i, r := range text {
		if !isLineBoundary(r) {
			continue
		}
		if r == '\n' && i > 0 && text[i-1] == '\r' {
			// second half of \r\n; the line was cut at \r
			start = i + 1
			continue
		}
		lines = append(lines, text[start:i])
		start = i + len(string(r))
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// trimLines applies strings.TrimSpace to each line and drops empty ones.
func trimLines(text string) []string {
	var out []string
	for _, line := range SplitLines(text) {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out
}
