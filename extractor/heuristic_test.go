package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristic_BulletsAndCheckboxes(t *testing.T) {
	text := `Notes from meeting:
    - [ ] Set up database
    * implement API extract endpoint
    1. Write tests
    Some narrative sentence.`

	items := Heuristic{}.Extract(text)
	assert.Equal(t, []string{"Set up database", "implement API extract endpoint", "Write tests"}, texts(items))
	for _, it := range items {
		assert.Empty(t, it.Priority)
		assert.Empty(t, it.DueDate)
		assert.Empty(t, it.Assignee)
	}
}

func TestHeuristic_KeywordsKeepPrefix(t *testing.T) {
	text := "TODO: Fix bug\nNext: Deploy\nsomething [todo] later\nplain"
	assert.Equal(t, []string{"TODO: Fix bug", "Next: Deploy", "something [todo] later"}, texts(Heuristic{}.Extract(text)))
}

func TestHeuristic_Deduplicates(t *testing.T) {
	text := "- Write tests\n- write TESTS\n* Deploy\n- Write tests"
	assert.Equal(t, []string{"Write tests", "Deploy"}, texts(Heuristic{}.Extract(text)))
}

func TestHeuristic_ImperativeFallback(t *testing.T) {
	text := "We met today. Fix the login flow! Check the logs? The team is happy. add monitoring"
	assert.Equal(t, []string{"Fix the login flow!", "Check the logs?", "add monitoring"}, texts(Heuristic{}.Extract(text)))
}

func TestHeuristic_FallbackNotUsedWhenLinesMatch(t *testing.T) {
	text := "- Ship it\nFix the other thing."
	assert.Equal(t, []string{"Ship it"}, texts(Heuristic{}.Extract(text)))
}

func TestHeuristic_Empty(t *testing.T) {
	for _, in := range []string{"", "  ", "\n\n"} {
		items := Heuristic{}.Extract(in)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"One. Two! Three? Four", []string{"One.", "Two!", "Three?", "Four"}},
		{"v1.2 is out.\n\nNext step", []string{"v1.2 is out.", "Next step"}},
		{"no punctuation here", []string{"no punctuation here"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}
