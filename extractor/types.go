// Package extractor turns free-form note text into structured action items.
//
// Two strategies are available. Structured keeps every actionable line and
// annotates it with priority, due date and assignee. Heuristic cleans list
// markers, falls back to imperative sentences and deduplicates the result.
// Both are pure and safe for concurrent use.
package extractor

import (
	"fmt"
	"strings"
)

// ActionItem is a task inferred from a single line of text.
// Optional fields are empty when undetectable and omitted from JSON.
type ActionItem struct {
	Text     string `json:"text"`
	Priority string `json:"priority,omitempty"`
	DueDate  string `json:"due_date,omitempty"`
	Assignee string `json:"assignee,omitempty"`
}

// Priority tokens produced by ExtractPriority.
const (
	PriorityP0     = "P0"
	PriorityP1     = "P1"
	PriorityP2     = "P2"
	PriorityP3     = "P3"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Extractor is the common "text to action items" capability.
type Extractor interface {
	Extract(text string) []ActionItem
}

// Mode names an extraction strategy.
type Mode string

const (
	ModeStructured Mode = "structured"
	ModeHeuristic  Mode = "heuristic"
	ModeLLM        Mode = "llm"
)

// ParseMode validates a mode name. An empty name selects ModeStructured.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeStructured:
		return ModeStructured, nil
	case ModeHeuristic:
		return ModeHeuristic, nil
	case ModeLLM:
		return ModeLLM, nil
	}
	return "", fmt.Errorf("unknown extraction mode %q", s)
}

// ForMode returns the local strategy for m. ModeLLM has no local strategy
// and resolves to Heuristic, which is what LLM extraction falls back to.
func ForMode(m Mode) Extractor {
	if m == ModeStructured {
		return Structured{}
	}
	return Heuristic{}
}
