package services

import (
	"errors"
	"fmt"
	"time"

	model "github.com/Itish41/ActionNotes/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// GormStore implements Store on top of gorm and postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// translateError maps driver errors onto the service sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pqErr.Constraint)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func paginate(db *gorm.DB, skip, limit int, order string) *gorm.DB {
	if order != "" {
		db = db.Order(order)
	}
	if skip > 0 {
		db = db.Offset(skip)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	return db
}

func (s *GormStore) ListNotes(q NoteQuery) ([]model.Note, error) {
	var notes []model.Note
	db := s.db.Preload("Tags").Preload("Mood")
	if q.Q != "" {
		like := "%" + q.Q + "%"
		db = db.Where("title ILIKE ? OR content ILIKE ?", like, like)
	}
	if err := paginate(db, q.Skip, q.Limit, q.Order).Find(&notes).Error; err != nil {
		return nil, translateError(err)
	}
	return notes, nil
}

func (s *GormStore) FindNotes(ids []uint) ([]model.Note, error) {
	var notes []model.Note
	if len(ids) == 0 {
		return notes, nil
	}
	if err := s.db.Preload("Tags").Preload("Mood").Where("id IN ?", ids).Find(&notes).Error; err != nil {
		return nil, translateError(err)
	}
	return notes, nil
}

func (s *GormStore) GetNote(id uint) (*model.Note, error) {
	var note model.Note
	if err := s.db.Preload("Tags").Preload("Mood").First(&note, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &note, nil
}

func (s *GormStore) CreateNote(note *model.Note) error {
	return translateError(s.db.Create(note).Error)
}

func (s *GormStore) UpdateNote(note *model.Note, tags *[]model.Tag) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Mood").Save(note).Error; err != nil {
			return err
		}
		if tags == nil {
			return nil
		}
		if err := tx.Model(&model.Note{ID: note.ID}).Association("Tags").Replace(*tags); err != nil {
			return fmt.Errorf("failed to replace note tags: %w", err)
		}
		return nil
	})
	return translateError(err)
}

func (s *GormStore) AddNoteTag(noteID, tagID uint) error {
	return translateError(s.db.Model(&model.Note{ID: noteID}).Association("Tags").Append(&model.Tag{ID: tagID}))
}

func (s *GormStore) RemoveNoteTag(noteID, tagID uint) error {
	return translateError(s.db.Model(&model.Note{ID: noteID}).Association("Tags").Delete(&model.Tag{ID: tagID}))
}

func (s *GormStore) DeleteNote(id uint) error {
	return deleteByID(s.db, &model.Note{}, id)
}

func (s *GormStore) ListTags() ([]model.Tag, error) {
	var tags []model.Tag
	if err := s.db.Order("name").Find(&tags).Error; err != nil {
		return nil, translateError(err)
	}
	return tags, nil
}

func (s *GormStore) FindTags(ids []uint) ([]model.Tag, error) {
	var tags []model.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := s.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, translateError(err)
	}
	return tags, nil
}

func (s *GormStore) GetTag(id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

func (s *GormStore) FindTagByName(name string) (*model.Tag, error) {
	var tag model.Tag
	if err := s.db.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

func (s *GormStore) CreateTag(tag *model.Tag) error {
	return translateError(s.db.Create(tag).Error)
}

func (s *GormStore) UpdateTag(tag *model.Tag) error {
	return translateError(s.db.Save(tag).Error)
}

func (s *GormStore) DeleteTag(id uint) error {
	return deleteByID(s.db, &model.Tag{}, id)
}

func (s *GormStore) ListActionItems(q ActionItemQuery) ([]model.ActionItem, error) {
	var items []model.ActionItem
	db := s.db.Model(&model.ActionItem{})
	if q.Completed != nil {
		db = db.Where("completed = ?", *q.Completed)
	}
	if q.NoteID != nil {
		db = db.Where("note_id = ?", *q.NoteID)
	}
	if err := paginate(db, q.Skip, q.Limit, q.Order).Find(&items).Error; err != nil {
		return nil, translateError(err)
	}
	return items, nil
}

func (s *GormStore) GetActionItem(id uint) (*model.ActionItem, error) {
	var item model.ActionItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

func (s *GormStore) CreateActionItem(item *model.ActionItem) error {
	return translateError(s.db.Create(item).Error)
}

func (s *GormStore) UpdateActionItem(item *model.ActionItem) error {
	return translateError(s.db.Save(item).Error)
}

func (s *GormStore) DeleteActionItem(id uint) error {
	return deleteByID(s.db, &model.ActionItem{}, id)
}

func (s *GormStore) SaveExtraction(run *model.ExtractionRun, items []model.ActionItem) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to create action items: %w", err)
			}
		}
		if err := tx.Create(run).Error; err != nil {
			return fmt.Errorf("failed to create extraction run: %w", err)
		}
		return nil
	})
	return translateError(err)
}

func (s *GormStore) ListExtractionRuns(noteID uint) ([]model.ExtractionRun, error) {
	var runs []model.ExtractionRun
	if err := s.db.Where("note_id = ?", noteID).Order("created_at DESC").Find(&runs).Error; err != nil {
		return nil, translateError(err)
	}
	return runs, nil
}

func (s *GormStore) ListMoods(skip, limit int) ([]model.MoodEntry, error) {
	var entries []model.MoodEntry
	if err := paginate(s.db, skip, limit, "date DESC").Find(&entries).Error; err != nil {
		return nil, translateError(err)
	}
	return entries, nil
}

func (s *GormStore) MoodsSince(since time.Time) ([]model.MoodEntry, error) {
	var entries []model.MoodEntry
	if err := s.db.Where("date >= ?", since).Order("date ASC").Find(&entries).Error; err != nil {
		return nil, translateError(err)
	}
	return entries, nil
}

func (s *GormStore) MoodCountsSince(since time.Time) (map[string]int64, error) {
	var rows []struct {
		Mood  string
		Count int64
	}
	err := s.db.Model(&model.MoodEntry{}).
		Select("mood, COUNT(id) AS count").
		Where("date >= ?", since).
		Group("mood").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Mood] = r.Count
	}
	return counts, nil
}

func (s *GormStore) GetMood(id uint) (*model.MoodEntry, error) {
	var entry model.MoodEntry
	if err := s.db.First(&entry, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &entry, nil
}

func (s *GormStore) CreateMood(entry *model.MoodEntry) error {
	return translateError(s.db.Create(entry).Error)
}

func (s *GormStore) UpdateMood(entry *model.MoodEntry) error {
	return translateError(s.db.Save(entry).Error)
}

func (s *GormStore) DeleteMood(id uint) error {
	return deleteByID(s.db, &model.MoodEntry{}, id)
}

func deleteByID(db *gorm.DB, value interface{}, id uint) error {
	res := db.Delete(value, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
