package services

import (
	"errors"
	"time"

	model "github.com/Itish41/ActionNotes/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write would violate a uniqueness rule.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidInput is returned for input the service refuses to process.
	ErrInvalidInput = errors.New("invalid input")
)

// NoteQuery filters and pages ListNotes. Order is a validated SQL order clause.
type NoteQuery struct {
	Q     string
	Skip  int
	Limit int
	Order string
}

// ActionItemQuery filters and pages ListActionItems.
type ActionItemQuery struct {
	Completed *bool
	NoteID    *uint
	Skip      int
	Limit     int
	Order     string
}

// Store is the persistence boundary of NotesService.
type Store interface {
	ListNotes(q NoteQuery) ([]model.Note, error)
	FindNotes(ids []uint) ([]model.Note, error)
	GetNote(id uint) (*model.Note, error)
	CreateNote(note *model.Note) error
	// UpdateNote saves note and, when tags is non-nil, replaces its tag set
	// in the same transaction.
	UpdateNote(note *model.Note, tags *[]model.Tag) error
	AddNoteTag(noteID, tagID uint) error
	RemoveNoteTag(noteID, tagID uint) error
	DeleteNote(id uint) error

	ListTags() ([]model.Tag, error)
	FindTags(ids []uint) ([]model.Tag, error)
	GetTag(id uint) (*model.Tag, error)
	FindTagByName(name string) (*model.Tag, error)
	CreateTag(tag *model.Tag) error
	UpdateTag(tag *model.Tag) error
	DeleteTag(id uint) error

	ListActionItems(q ActionItemQuery) ([]model.ActionItem, error)
	GetActionItem(id uint) (*model.ActionItem, error)
	CreateActionItem(item *model.ActionItem) error
	UpdateActionItem(item *model.ActionItem) error
	DeleteActionItem(id uint) error

	// SaveExtraction stores the action items and the run that produced them
	// atomically. IDs are filled in on success.
	SaveExtraction(run *model.ExtractionRun, items []model.ActionItem) error
	ListExtractionRuns(noteID uint) ([]model.ExtractionRun, error)

	ListMoods(skip, limit int) ([]model.MoodEntry, error)
	MoodsSince(since time.Time) ([]model.MoodEntry, error)
	MoodCountsSince(since time.Time) (map[string]int64, error)
	GetMood(id uint) (*model.MoodEntry, error)
	CreateMood(entry *model.MoodEntry) error
	UpdateMood(entry *model.MoodEntry) error
	DeleteMood(id uint) error
}
