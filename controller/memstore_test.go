package controller

import (
	"sort"
	"strings"
	"sync"
	"time"

	model "github.com/Itish41/ActionNotes/models"
	services "github.com/Itish41/ActionNotes/service"
)

// memStore is an in-memory services.Store for exercising the HTTP layer.
type memStore struct {
	mu       sync.Mutex
	seq      uint
	notes    map[uint]model.Note
	noteTags map[uint]map[uint]bool
	tags     map[uint]model.Tag
	items    map[uint]model.ActionItem
	runs     map[uint]model.ExtractionRun
	moods    map[uint]model.MoodEntry
}

var _ services.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		notes:    map[uint]model.Note{},
		noteTags: map[uint]map[uint]bool{},
		tags:     map[uint]model.Tag{},
		items:    map[uint]model.ActionItem{},
		runs:     map[uint]model.ExtractionRun{},
		moods:    map[uint]model.MoodEntry{},
	}
}

func (s *memStore) nextID() uint {
	s.seq++
	return s.seq
}

func sortedIDs[T any](m map[uint]T, desc bool) []uint {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if desc {
			return ids[i] > ids[j]
		}
		return ids[i] < ids[j]
	})
	return ids
}

func page[T any](all []T, skip, limit int) []T {
	if skip >= len(all) {
		return []T{}
	}
	all = all[skip:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

// withRelations must be called with the lock held.
func (s *memStore) withRelations(n model.Note) model.Note {
	n.Tags = []model.Tag{}
	for _, id := range sortedIDs(s.noteTags[n.ID], false) {
		n.Tags = append(n.Tags, s.tags[id])
	}
	if n.MoodID != nil {
		if m, ok := s.moods[*n.MoodID]; ok {
			n.Mood = &m
		}
	}
	return n
}

func (s *memStore) ListNotes(q services.NoteQuery) ([]model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Note
	needle := strings.ToLower(q.Q)
	for _, id := range sortedIDs(s.notes, strings.HasSuffix(q.Order, "DESC")) {
		n := s.notes[id]
		if needle != "" && !strings.Contains(strings.ToLower(n.Title+" "+n.Content), needle) {
			continue
		}
		out = append(out, s.withRelations(n))
	}
	return page(out, q.Skip, q.Limit), nil
}

func (s *memStore) FindNotes(ids []uint) ([]model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Note
	for _, id := range ids {
		if n, ok := s.notes[id]; ok {
			out = append(out, s.withRelations(n))
		}
	}
	return out, nil
}

func (s *memStore) GetNote(id uint) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	n = s.withRelations(n)
	return &n, nil
}

func (s *memStore) CreateNote(note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	note.ID = s.nextID()
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	links := map[uint]bool{}
	for _, t := range note.Tags {
		links[t.ID] = true
	}
	s.noteTags[note.ID] = links
	stored := *note
	stored.Tags, stored.Mood = nil, nil
	s.notes[note.ID] = stored
	return nil
}

func (s *memStore) UpdateNote(note *model.Note, tags *[]model.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[note.ID]; !ok {
		return services.ErrNotFound
	}
	stored := *note
	stored.Tags, stored.Mood = nil, nil
	s.notes[note.ID] = stored
	if tags != nil {
		links := map[uint]bool{}
		for _, t := range *tags {
			links[t.ID] = true
		}
		s.noteTags[note.ID] = links
	}
	return nil
}

func (s *memStore) AddNoteTag(noteID, tagID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noteTags[noteID][tagID] = true
	return nil
}

func (s *memStore) RemoveNoteTag(noteID, tagID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.noteTags[noteID], tagID)
	return nil
}

func (s *memStore) DeleteNote(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return services.ErrNotFound
	}
	delete(s.notes, id)
	delete(s.noteTags, id)
	return nil
}

func (s *memStore) ListTags() ([]model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Tag{}
	for _, id := range sortedIDs(s.tags, false) {
		out = append(out, s.tags[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) FindTags(ids []uint) ([]model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[uint]bool{}
	var out []model.Tag
	for _, id := range ids {
		if t, ok := s.tags[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memStore) GetTag(id uint) (*model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tags[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &t, nil
}

func (s *memStore) FindTagByName(name string) (*model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tags {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, services.ErrNotFound
}

func (s *memStore) CreateTag(tag *model.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tag.ID = s.nextID()
	tag.CreatedAt = time.Now()
	tag.UpdatedAt = tag.CreatedAt
	s.tags[tag.ID] = *tag
	return nil
}

func (s *memStore) UpdateTag(tag *model.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[tag.ID] = *tag
	return nil
}

func (s *memStore) DeleteTag(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tags[id]; !ok {
		return services.ErrNotFound
	}
	delete(s.tags, id)
	for _, links := range s.noteTags {
		delete(links, id)
	}
	return nil
}

func (s *memStore) ListActionItems(q services.ActionItemQuery) ([]model.ActionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.ActionItem{}
	for _, id := range sortedIDs(s.items, strings.HasSuffix(q.Order, "DESC")) {
		it := s.items[id]
		if q.Completed != nil && it.Completed != *q.Completed {
			continue
		}
		if q.NoteID != nil && (it.NoteID == nil || *it.NoteID != *q.NoteID) {
			continue
		}
		out = append(out, it)
	}
	return page(out, q.Skip, q.Limit), nil
}

func (s *memStore) GetActionItem(id uint) (*model.ActionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &it, nil
}

func (s *memStore) createItem(item *model.ActionItem) {
	item.ID = s.nextID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	s.items[item.ID] = *item
}

func (s *memStore) CreateActionItem(item *model.ActionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createItem(item)
	return nil
}

func (s *memStore) UpdateActionItem(item *model.ActionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = *item
	return nil
}

func (s *memStore) DeleteActionItem(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return services.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *memStore) SaveExtraction(run *model.ExtractionRun, items []model.ActionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range items {
		s.createItem(&items[i])
	}
	run.ID = s.nextID()
	run.CreatedAt = time.Now()
	s.runs[run.ID] = *run
	return nil
}

func (s *memStore) ListExtractionRuns(noteID uint) ([]model.ExtractionRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.ExtractionRun{}
	for _, id := range sortedIDs(s.runs, true) {
		if r := s.runs[id]; r.NoteID != nil && *r.NoteID == noteID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) ListMoods(skip, limit int) ([]model.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.MoodEntry{}
	for _, m := range s.moods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return page(out, skip, limit), nil
}

func (s *memStore) MoodsSince(since time.Time) ([]model.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.MoodEntry{}
	for _, m := range s.moods {
		if !m.Date.Before(since) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *memStore) MoodCountsSince(since time.Time) (map[string]int64, error) {
	entries, _ := s.MoodsSince(since)
	counts := map[string]int64{}
	for _, m := range entries {
		counts[m.Mood]++
	}
	return counts, nil
}

func (s *memStore) GetMood(id uint) (*model.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.moods[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &m, nil
}

// uniqueDate must be called with the lock held.
func (s *memStore) uniqueDate(entry *model.MoodEntry) error {
	for _, m := range s.moods {
		if m.ID != entry.ID && m.Date.Equal(entry.Date) {
			return services.ErrConflict
		}
	}
	return nil
}

func (s *memStore) CreateMood(entry *model.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.uniqueDate(entry); err != nil {
		return err
	}
	entry.ID = s.nextID()
	entry.CreatedAt = time.Now()
	s.moods[entry.ID] = *entry
	return nil
}

func (s *memStore) UpdateMood(entry *model.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.uniqueDate(entry); err != nil {
		return err
	}
	s.moods[entry.ID] = *entry
	return nil
}

func (s *memStore) DeleteMood(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.moods[id]; !ok {
		return services.ErrNotFound
	}
	delete(s.moods, id)
	for nid, n := range s.notes {
		if n.MoodID != nil && *n.MoodID == id {
			n.MoodID = nil
			s.notes[nid] = n
		}
	}
	return nil
}
