package services

import (
	"errors"
	"fmt"

	model "github.com/Itish41/ActionNotes/models"
	"github.com/rs/zerolog/log"
)

// ListTags returns all tags ordered by name.
func (s *NotesService) ListTags() ([]model.Tag, error) {
	return s.store.ListTags()
}

// GetTag returns a single tag.
func (s *NotesService) GetTag(id uint) (*model.Tag, error) {
	return s.store.GetTag(id)
}

// CreateTag stores a tag. Names must be unique.
func (s *NotesService) CreateTag(name, color string) (*model.Tag, error) {
	if color == "" {
		color = model.DefaultTagColor
	}
	if err := s.ensureTagNameFree(name, 0); err != nil {
		return nil, err
	}
	tag := &model.Tag{Name: name, Color: color}
	if err := s.store.CreateTag(tag); err != nil {
		log.Error().Err(err).Str("name", name).Msg("[CreateTag] Error creating tag")
		return nil, err
	}
	log.Info().Uint("tag_id", tag.ID).Str("name", name).Msg("[CreateTag] Tag created")
	return tag, nil
}

// UpdateTag renames or recolors a tag.
func (s *NotesService) UpdateTag(id uint, name, color string) (*model.Tag, error) {
	tag, err := s.store.GetTag(id)
	if err != nil {
		return nil, err
	}
	if name != tag.Name {
		if err := s.ensureTagNameFree(name, id); err != nil {
			return nil, err
		}
	}
	tag.Name = name
	if color != "" {
		tag.Color = color
	}
	if err := s.store.UpdateTag(tag); err != nil {
		log.Error().Err(err).Uint("tag_id", id).Msg("[UpdateTag] Error saving tag")
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag and its note links.
func (s *NotesService) DeleteTag(id uint) error {
	return s.store.DeleteTag(id)
}

func (s *NotesService) ensureTagNameFree(name string, selfID uint) error {
	existing, err := s.store.FindTagByName(name)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return fmt.Errorf("%w: tag with this name already exists", ErrConflict)
	}
	return nil
}
