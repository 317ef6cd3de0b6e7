package models

import (
	"time"

	"gorm.io/datatypes"
)

// ExtractionRun records the outcome of a persisted extraction.
type ExtractionRun struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// NoteID is set when the text came from a stored note.
	NoteID *uint `gorm:"index" json:"note_id"`

	// Mode is the strategy that actually produced Items; an LLM run that fell
	// back is recorded as heuristic.
	Mode string `gorm:"size:20;not null" json:"mode"`

	// Items is the JSONB array of extractor.ActionItem values.
	Items     datatypes.JSON `json:"items"`
	ItemCount int            `json:"item_count"`
	CreatedAt time.Time      `json:"created_at"`
}
