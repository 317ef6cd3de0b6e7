package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Itish41/ActionNotes/extractor"
	model "github.com/Itish41/ActionNotes/models"
	"github.com/rs/zerolog/log"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// now is the service clock.
var now = time.Now

// NotesService implements notes, tags, moods and action items on top of a Store.
// Search, import archiving, LLM extraction and assignment emails are optional.
type NotesService struct {
	store    Store
	indexer  Indexer
	archiver Archiver
	chat     ChatClient
	notifier Notifier
}

// Option configures optional collaborators of NotesService.
type Option func(*NotesService)

// WithIndexer enables the full-text search index.
func WithIndexer(i Indexer) Option { return func(s *NotesService) { s.indexer = i } }

// WithArchiver enables archiving of imported files.
func WithArchiver(a Archiver) Option { return func(s *NotesService) { s.archiver = a } }

// WithChatClient enables LLM extraction.
func WithChatClient(c ChatClient) Option { return func(s *NotesService) { s.chat = c } }

// WithNotifier enables assignment notifications.
func WithNotifier(n Notifier) Option { return func(s *NotesService) { s.notifier = n } }

// NewNotesService builds the service.
func NewNotesService(store Store, opts ...Option) *NotesService {
	s := &NotesService{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NoteInput is the payload for CreateNote.
type NoteInput struct {
	Title   string
	Content string
	MoodID  *uint
	TagIDs  []uint
}

// NotePatch is a partial update; nil fields are left unchanged.
type NotePatch struct {
	Title   *string
	Content *string
	MoodID  *uint
	TagIDs  *[]uint
}

// ImportResult is returned by ImportNote.
type ImportResult struct {
	Note        *model.Note        `json:"note"`
	ArchiveURL  string             `json:"archive_url,omitempty"`
	ActionItems []model.ActionItem `json:"action_items"`
}

var noteSortColumns = map[string]bool{"id": true, "title": true, "created_at": true, "updated_at": true}

// ListNotes returns notes matching an optional substring, paged and sorted.
func (s *NotesService) ListNotes(q string, skip, limit int, sort string) ([]model.Note, error) {
	order, err := orderClause(sort, noteSortColumns, "id ASC")
	if err != nil {
		return nil, err
	}
	skip, limit = normalizePage(skip, limit)
	notes, err := s.store.ListNotes(NoteQuery{Q: strings.TrimSpace(q), Skip: skip, Limit: limit, Order: order})
	if err != nil {
		log.Error().Err(err).Msg("[ListNotes] Error fetching notes")
		return nil, err
	}
	return notes, nil
}

// GetNote returns a note with its tags and mood.
func (s *NotesService) GetNote(id uint) (*model.Note, error) {
	return s.store.GetNote(id)
}

// CreateNote stores a new note and indexes it for search.
func (s *NotesService) CreateNote(ctx context.Context, in NoteInput) (*model.Note, error) {
	note := &model.Note{Title: in.Title, Content: in.Content, MoodID: in.MoodID, Tags: []model.Tag{}}
	if err := s.checkMood(in.MoodID); err != nil {
		return nil, err
	}
	if len(in.TagIDs) > 0 {
		tags, err := s.resolveTags(in.TagIDs)
		if err != nil {
			return nil, err
		}
		note.Tags = tags
	}
	if err := s.store.CreateNote(note); err != nil {
		log.Error().Err(err).Msg("[CreateNote] Error creating note")
		return nil, err
	}
	log.Info().Uint("note_id", note.ID).Msg("[CreateNote] Note created")
	s.index(ctx, note)
	return note, nil
}

// UpdateNote applies a partial update.
func (s *NotesService) UpdateNote(ctx context.Context, id uint, patch NotePatch) (*model.Note, error) {
	note, err := s.store.GetNote(id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.MoodID != nil {
		if err := s.checkMood(patch.MoodID); err != nil {
			return nil, err
		}
		note.MoodID = patch.MoodID
		note.Mood = nil
	}
	// references are resolved before anything is written
	var tags *[]model.Tag
	if patch.TagIDs != nil {
		resolved, err := s.resolveTags(*patch.TagIDs)
		if err != nil {
			return nil, err
		}
		tags = &resolved
	}
	note.UpdatedAt = now()
	if err := s.store.UpdateNote(note, tags); err != nil {
		log.Error().Err(err).Uint("note_id", id).Msg("[UpdateNote] Error saving note")
		return nil, err
	}
	updated, err := s.store.GetNote(id)
	if err != nil {
		return nil, err
	}
	s.index(ctx, updated)
	return updated, nil
}

// DeleteNote removes a note and its search document.
func (s *NotesService) DeleteNote(ctx context.Context, id uint) error {
	if err := s.store.DeleteNote(id); err != nil {
		return err
	}
	if s.indexer != nil {
		if err := s.indexer.DeleteNote(ctx, id); err != nil {
			log.Warn().Err(err).Uint("note_id", id).Msg("[DeleteNote] Search index delete failed")
		}
	}
	log.Info().Uint("note_id", id).Msg("[DeleteNote] Note deleted")
	return nil
}

// AddTagToNote links an existing tag to an existing note.
func (s *NotesService) AddTagToNote(noteID, tagID uint) error {
	if _, err := s.store.GetNote(noteID); err != nil {
		return fmt.Errorf("note: %w", err)
	}
	if _, err := s.store.GetTag(tagID); err != nil {
		return fmt.Errorf("tag: %w", err)
	}
	return s.store.AddNoteTag(noteID, tagID)
}

// RemoveTagFromNote unlinks a tag from a note.
func (s *NotesService) RemoveTagFromNote(noteID, tagID uint) error {
	if _, err := s.store.GetNote(noteID); err != nil {
		return fmt.Errorf("note: %w", err)
	}
	if _, err := s.store.GetTag(tagID); err != nil {
		return fmt.Errorf("tag: %w", err)
	}
	return s.store.RemoveNoteTag(noteID, tagID)
}

// SearchNotes queries the search index, falling back to substring matching
// in the store when no index is configured or the index fails.
func (s *NotesService) SearchNotes(ctx context.Context, query string, limit int) ([]model.Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	_, limit = normalizePage(0, limit)

	if s.indexer != nil {
		ids, err := s.indexer.SearchNotes(ctx, query, limit)
		if err == nil {
			return s.notesInOrder(ids)
		}
		log.Warn().Err(err).Msg("[SearchNotes] Search index failed, falling back to database")
	}
	return s.store.ListNotes(NoteQuery{Q: query, Limit: limit, Order: "updated_at DESC"})
}

func (s *NotesService) notesInOrder(ids []uint) ([]model.Note, error) {
	notes, err := s.store.FindNotes(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Note, len(notes))
	for _, n := range notes {
		byID[n.ID] = n
	}
	ordered := make([]model.Note, 0, len(ids))
	for _, id := range ids {
		// hits for notes deleted since indexing are skipped
		if n, ok := byID[id]; ok {
			ordered = append(ordered, n)
		}
	}
	return ordered, nil
}

// ImportNote turns an uploaded text file into a note. The raw file is
// archived when an Archiver is configured, and action items are extracted
// and saved when extract is set.
func (s *NotesService) ImportNote(ctx context.Context, filename, contentType string, body []byte, extract bool) (*ImportResult, error) {
	content := strings.TrimSpace(string(body))
	if content == "" {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	title := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if title == "" || title == "." {
		title = "Imported note"
	}
	if len(title) > 200 {
		title = title[:200]
	}

	result := &ImportResult{ActionItems: []model.ActionItem{}}
	if s.archiver != nil {
		url, err := s.archiver.Put(ctx, filename, contentType, body)
		if err != nil {
			log.Error().Err(err).Str("file", filename).Msg("[ImportNote] Archive upload failed")
			return nil, fmt.Errorf("failed to archive file: %w", err)
		}
		result.ArchiveURL = url
	}

	note, err := s.CreateNote(ctx, NoteInput{Title: title, Content: content})
	if err != nil {
		return nil, err
	}
	result.Note = note

	if extract {
		items, _, err := s.ExtractAndSave(ctx, note.Content, extractor.ModeStructured, &note.ID)
		if err != nil {
			return nil, err
		}
		result.ActionItems = items
	}
	return result, nil
}

// resolveTags loads the tags for ids, failing when any is missing.
func (s *NotesService) resolveTags(ids []uint) ([]model.Tag, error) {
	if len(ids) == 0 {
		return []model.Tag{}, nil
	}
	tags, err := s.store.FindTags(ids)
	if err != nil {
		return nil, err
	}
	unique := make(map[uint]bool, len(ids))
	for _, id := range ids {
		unique[id] = true
	}
	if len(tags) != len(unique) {
		return nil, fmt.Errorf("tag: %w", ErrNotFound)
	}
	return tags, nil
}

func (s *NotesService) checkMood(id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.store.GetMood(*id); err != nil {
		return fmt.Errorf("mood: %w", err)
	}
	return nil
}

func (s *NotesService) index(ctx context.Context, note *model.Note) {
	if s.indexer == nil {
		return
	}
	// indexing failures never fail the write
	if err := s.indexer.IndexNote(ctx, note); err != nil {
		log.Warn().Err(err).Uint("note_id", note.ID).Msg("Search indexing failed")
	}
}

func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}

// orderClause turns "field" or "-field" into an ORDER BY clause.
func orderClause(sort string, allowed map[string]bool, fallback string) (string, error) {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		return fallback, nil
	}
	dir := "ASC"
	if strings.HasPrefix(sort, "-") {
		dir = "DESC"
		sort = sort[1:]
	}
	if !allowed[sort] {
		return "", fmt.Errorf("%w: cannot sort by %q", ErrInvalidInput, sort)
	}
	return sort + " " + dir, nil
}
