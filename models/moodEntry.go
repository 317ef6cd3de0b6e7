package models

import "time"

// Moods accepted by MoodEntry.Mood.
var Moods = []string{"happy", "neutral", "sad", "angry", "tired"}

// MoodEntry records the mood for a single date. Dates are unique.
type MoodEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"uniqueIndex;not null" json:"date"`
	Mood      string    `gorm:"size:20;not null" json:"mood"`
	CreatedAt time.Time `json:"created_at"`
}

// IsValidMood reports whether m is one of Moods.
func IsValidMood(m string) bool {
	for _, v := range Moods {
		if v == m {
			return true
		}
	}
	return false
}
