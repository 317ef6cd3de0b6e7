package models

import "time"

// DefaultTagColor is used when a tag is created without a color.
const DefaultTagColor = "#3B82F6"

// Tag labels notes. Names are unique.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Color     string    `gorm:"size:7;not null;default:#3B82F6" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
