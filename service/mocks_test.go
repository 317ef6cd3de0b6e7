package services

import (
	"context"
	"time"

	model "github.com/Itish41/ActionNotes/models"
	"github.com/stretchr/testify/mock"
)

// FixedTime for consistent time patching
var FixedTime = time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC)

// MockStore implements Store with testify/mock
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListNotes(q NoteQuery) ([]model.Note, error) {
	args := m.Called(q)
	notes, _ := args.Get(0).([]model.Note)
	return notes, args.Error(1)
}

func (m *MockStore) FindNotes(ids []uint) ([]model.Note, error) {
	args := m.Called(ids)
	notes, _ := args.Get(0).([]model.Note)
	return notes, args.Error(1)
}

func (m *MockStore) GetNote(id uint) (*model.Note, error) {
	args := m.Called(id)
	note, _ := args.Get(0).(*model.Note)
	return note, args.Error(1)
}

func (m *MockStore) CreateNote(note *model.Note) error {
	return m.Called(note).Error(0)
}

func (m *MockStore) UpdateNote(note *model.Note, tags *[]model.Tag) error {
	return m.Called(note, tags).Error(0)
}

func (m *MockStore) AddNoteTag(noteID, tagID uint) error {
	return m.Called(noteID, tagID).Error(0)
}

func (m *MockStore) RemoveNoteTag(noteID, tagID uint) error {
	return m.Called(noteID, tagID).Error(0)
}

func (m *MockStore) DeleteNote(id uint) error {
	return m.Called(id).Error(0)
}

func (m *MockStore) ListTags() ([]model.Tag, error) {
	args := m.Called()
	tags, _ := args.Get(0).([]model.Tag)
	return tags, args.Error(1)
}

func (m *MockStore) FindTags(ids []uint) ([]model.Tag, error) {
	args := m.Called(ids)
	tags, _ := args.Get(0).([]model.Tag)
	return tags, args.Error(1)
}

func (m *MockStore) GetTag(id uint) (*model.Tag, error) {
	args := m.Called(id)
	tag, _ := args.Get(0).(*model.Tag)
	return tag, args.Error(1)
}

func (m *MockStore) FindTagByName(name string) (*model.Tag, error) {
	args := m.Called(name)
	tag, _ := args.Get(0).(*model.Tag)
	return tag, args.Error(1)
}

func (m *MockStore) CreateTag(tag *model.Tag) error {
	return m.Called(tag).Error(0)
}

func (m *MockStore) UpdateTag(tag *model.Tag) error {
	return m.Called(tag).Error(0)
}

func (m *MockStore) DeleteTag(id uint) error {
	return m.Called(id).Error(0)
}

func (m *MockStore) ListActionItems(q ActionItemQuery) ([]model.ActionItem, error) {
	args := m.Called(q)
	items, _ := args.Get(0).([]model.ActionItem)
	return items, args.Error(1)
}

func (m *MockStore) GetActionItem(id uint) (*model.ActionItem, error) {
	args := m.Called(id)
	item, _ := args.Get(0).(*model.ActionItem)
	return item, args.Error(1)
}

func (m *MockStore) CreateActionItem(item *model.ActionItem) error {
	return m.Called(item).Error(0)
}

func (m *MockStore) UpdateActionItem(item *model.ActionItem) error {
	return m.Called(item).Error(0)
}

func (m *MockStore) DeleteActionItem(id uint) error {
	return m.Called(id).Error(0)
}

func (m *MockStore) SaveExtraction(run *model.ExtractionRun, items []model.ActionItem) error {
	return m.Called(run, items).Error(0)
}

func (m *MockStore) ListExtractionRuns(noteID uint) ([]model.ExtractionRun, error) {
	args := m.Called(noteID)
	runs, _ := args.Get(0).([]model.ExtractionRun)
	return runs, args.Error(1)
}

func (m *MockStore) ListMoods(skip, limit int) ([]model.MoodEntry, error) {
	args := m.Called(skip, limit)
	entries, _ := args.Get(0).([]model.MoodEntry)
	return entries, args.Error(1)
}

func (m *MockStore) MoodsSince(since time.Time) ([]model.MoodEntry, error) {
	args := m.Called(since)
	entries, _ := args.Get(0).([]model.MoodEntry)
	return entries, args.Error(1)
}

func (m *MockStore) MoodCountsSince(since time.Time) (map[string]int64, error) {
	args := m.Called(since)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

func (m *MockStore) GetMood(id uint) (*model.MoodEntry, error) {
	args := m.Called(id)
	entry, _ := args.Get(0).(*model.MoodEntry)
	return entry, args.Error(1)
}

func (m *MockStore) CreateMood(entry *model.MoodEntry) error {
	return m.Called(entry).Error(0)
}

func (m *MockStore) UpdateMood(entry *model.MoodEntry) error {
	return m.Called(entry).Error(0)
}

func (m *MockStore) DeleteMood(id uint) error {
	return m.Called(id).Error(0)
}

// MockIndexer implements Indexer
type MockIndexer struct {
	mock.Mock
}

func (m *MockIndexer) IndexNote(ctx context.Context, note *model.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockIndexer) DeleteNote(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockIndexer) SearchNotes(ctx context.Context, query string, limit int) ([]uint, error) {
	args := m.Called(ctx, query, limit)
	ids, _ := args.Get(0).([]uint)
	return ids, args.Error(1)
}

// MockChat implements ChatClient
type MockChat struct {
	mock.Mock
}

func (m *MockChat) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

// MockNotifier implements Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyAssignment(ctx context.Context, email string, item *model.ActionItem) error {
	return m.Called(ctx, email, item).Error(0)
}

// MockArchiver implements Archiver
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Put(ctx context.Context, filename, contentType string, body []byte) (string, error) {
	args := m.Called(ctx, filename, contentType, body)
	return args.String(0), args.Error(1)
}
