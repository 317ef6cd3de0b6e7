package models

import "time"

// Note is a free-form text entry that can carry tags and a mood.
type Note struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"size:200;not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	// MoodID optionally links the note to the mood logged for its day.
	MoodID *uint      `json:"mood_id"`
	Mood   *MoodEntry `gorm:"foreignKey:MoodID;constraint:OnDelete:SET NULL" json:"mood_entry,omitempty"`

	// Tags is a many-to-many relation through note_tags.
	Tags []Tag `gorm:"many2many:note_tags;constraint:OnDelete:CASCADE" json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchDocument is the shape indexed for full-text search.
func (n *Note) SearchDocument() map[string]interface{} {
	tags := make([]string, 0, len(n.Tags))
	for _, t := range n.Tags {
		tags = append(tags, t.Name)
	}
	return map[string]interface{}{
		"id":         n.ID,
		"title":      n.Title,
		"content":    n.Content,
		"tags":       tags,
		"updated_at": n.UpdatedAt.UTC(),
	}
}
