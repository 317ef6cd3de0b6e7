package models

import (
	"time"

	"github.com/Itish41/ActionNotes/extractor"
)

// ActionItem is a persisted task, entered by hand or extracted from text.
type ActionItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	NoteID      *uint     `gorm:"index" json:"note_id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	Priority    string    `gorm:"size:10" json:"priority,omitempty"`
	DueDate     string    `gorm:"size:50" json:"due_date,omitempty"`
	Assignee    string    `gorm:"size:100" json:"assignee,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActionItemFromExtracted builds an unsaved ActionItem from an extractor result.
func ActionItemFromExtracted(item extractor.ActionItem, noteID *uint) ActionItem {
	return ActionItem{
		NoteID:      noteID,
		Description: item.Text,
		Priority:    item.Priority,
		DueDate:     item.DueDate,
		Assignee:    item.Assignee,
	}
}
