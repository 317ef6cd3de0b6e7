package services

import (
	"testing"
	"time"

	model "github.com/Itish41/ActionNotes/models"
	"github.com/agiledragon/gomonkey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotesService_CreateMood(t *testing.T) {
	patches := gomonkey.ApplyFuncVar(&now, func() time.Time { return FixedTime })
	defer patches.Reset()

	today := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.March, 1, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600))

	tests := []struct {
		name     string
		mood     string
		date     *time.Time
		setup    func(m *MockStore)
		wantDate time.Time
		wantErr  error
	}{
		{
			name: "Defaults to today",
			mood: "happy",
			setup: func(m *MockStore) {
				m.On("CreateMood", mock.AnythingOfType("*models.MoodEntry")).Return(nil)
			},
			wantDate: today,
		},
		{
			name: "Date is truncated to the UTC day",
			mood: "tired",
			date: &evening,
			setup: func(m *MockStore) {
				m.On("CreateMood", mock.Anything).Return(nil)
			},
			wantDate: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "Invalid mood",
			mood:    "ecstatic",
			setup:   func(m *MockStore) {},
			wantErr: ErrInvalidInput,
		},
		{
			name: "One entry per day",
			mood: "sad",
			setup: func(m *MockStore) {
				m.On("CreateMood", mock.Anything).Return(ErrConflict)
			},
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockStore)
			tt.setup(m)
			entry, err := NewNotesService(m).CreateMood(tt.mood, tt.date)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.mood, entry.Mood)
			assert.True(t, tt.wantDate.Equal(entry.Date), "got %s", entry.Date)
		})
	}
}

func TestNotesService_UpdateMood(t *testing.T) {
	m := new(MockStore)
	original := time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC)
	m.On("GetMood", uint(3)).Return(&model.MoodEntry{ID: 3, Mood: "sad", Date: original}, nil)
	m.On("UpdateMood", mock.Anything).Return(nil)

	entry, err := NewNotesService(m).UpdateMood(3, "neutral", nil)
	require.NoError(t, err)
	assert.Equal(t, "neutral", entry.Mood)
	assert.Equal(t, original, entry.Date)

	_, err = NewNotesService(m).UpdateMood(3, "Happy", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNotesService_WeeklyMoods(t *testing.T) {
	patches := gomonkey.ApplyFuncVar(&now, func() time.Time { return FixedTime })
	defer patches.Reset()

	since := FixedTime.Add(-7 * 24 * time.Hour)
	m := new(MockStore)
	m.On("MoodsSince", since).Return([]model.MoodEntry{{ID: 1}, {ID: 2}}, nil)
	m.On("MoodCountsSince", since).Return(map[string]int64{"happy": 2}, nil)

	s := NewNotesService(m)
	entries, err := s.WeeklyMoods()
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	stats, err := s.WeeklyMoodStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats["happy"])
	m.AssertExpectations(t)
}
