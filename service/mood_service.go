package services

import (
	"fmt"
	"strings"
	"time"

	model "github.com/Itish41/ActionNotes/models"
	"github.com/rs/zerolog/log"
)

const moodWindow = 7 * 24 * time.Hour

// ListMoods returns mood entries, newest first.
func (s *NotesService) ListMoods(skip, limit int) ([]model.MoodEntry, error) {
	skip, limit = normalizePage(skip, limit)
	return s.store.ListMoods(skip, limit)
}

// WeeklyMoods returns entries from the last seven days, oldest first.
func (s *NotesService) WeeklyMoods() ([]model.MoodEntry, error) {
	return s.store.MoodsSince(now().UTC().Add(-moodWindow))
}

// WeeklyMoodStats counts entries per mood over the last seven days.
func (s *NotesService) WeeklyMoodStats() (map[string]int64, error) {
	return s.store.MoodCountsSince(now().UTC().Add(-moodWindow))
}

// GetMood returns a single mood entry.
func (s *NotesService) GetMood(id uint) (*model.MoodEntry, error) {
	return s.store.GetMood(id)
}

// CreateMood records the mood for a day. A nil date means today. Only one
// entry per calendar day (UTC) is allowed.
func (s *NotesService) CreateMood(mood string, date *time.Time) (*model.MoodEntry, error) {
	if err := validateMood(mood); err != nil {
		return nil, err
	}
	entry := &model.MoodEntry{Mood: mood, Date: moodDay(date)}
	if err := s.store.CreateMood(entry); err != nil {
		log.Error().Err(err).Time("date", entry.Date).Msg("[CreateMood] Error creating mood entry")
		return nil, err
	}
	return entry, nil
}

// UpdateMood changes the mood and, when date is set, the day of an entry.
func (s *NotesService) UpdateMood(id uint, mood string, date *time.Time) (*model.MoodEntry, error) {
	if err := validateMood(mood); err != nil {
		return nil, err
	}
	entry, err := s.store.GetMood(id)
	if err != nil {
		return nil, err
	}
	entry.Mood = mood
	if date != nil {
		entry.Date = moodDay(date)
	}
	if err := s.store.UpdateMood(entry); err != nil {
		log.Error().Err(err).Uint("mood_id", id).Msg("[UpdateMood] Error saving mood entry")
		return nil, err
	}
	return entry, nil
}

// DeleteMood removes a mood entry. Notes pointing at it keep no mood.
func (s *NotesService) DeleteMood(id uint) error {
	return s.store.DeleteMood(id)
}

func validateMood(mood string) error {
	if !model.IsValidMood(mood) {
		return fmt.Errorf("%w: invalid mood, must be one of: %s", ErrInvalidInput, strings.Join(model.Moods, ", "))
	}
	return nil
}

func moodDay(date *time.Time) time.Time {
	d := now()
	if date != nil {
		d = *date
	}
	d = d.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
