package services

import (
	"context"
	"fmt"
	"strings"

	model "github.com/Itish41/ActionNotes/models"
	"github.com/rs/zerolog/log"
)

// ActionItemFilter narrows ListActionItems.
type ActionItemFilter struct {
	Completed *bool
	NoteID    *uint
	Skip      int
	Limit     int
	Sort      string
}

// ActionItemPatch is a partial update; nil fields are left unchanged.
type ActionItemPatch struct {
	Description *string
	Completed   *bool
	Priority    *string
	DueDate     *string
	Assignee    *string
}

var actionItemSortColumns = map[string]bool{
	"id": true, "created_at": true, "updated_at": true, "completed": true, "priority": true,
}

// ListActionItems returns action items, optionally filtered by completion or note.
func (s *NotesService) ListActionItems(f ActionItemFilter) ([]model.ActionItem, error) {
	order, err := orderClause(f.Sort, actionItemSortColumns, "id ASC")
	if err != nil {
		return nil, err
	}
	skip, limit := normalizePage(f.Skip, f.Limit)
	items, err := s.store.ListActionItems(ActionItemQuery{
		Completed: f.Completed,
		NoteID:    f.NoteID,
		Skip:      skip,
		Limit:     limit,
		Order:     order,
	})
	if err != nil {
		log.Error().Err(err).Msg("[ListActionItems] Error fetching action items")
		return nil, err
	}
	return items, nil
}

// GetActionItem returns a single action item.
func (s *NotesService) GetActionItem(id uint) (*model.ActionItem, error) {
	return s.store.GetActionItem(id)
}

// CreateActionItem stores a hand-written action item.
func (s *NotesService) CreateActionItem(item model.ActionItem) (*model.ActionItem, error) {
	if strings.TrimSpace(item.Description) == "" {
		return nil, fmt.Errorf("%w: description cannot be empty", ErrInvalidInput)
	}
	item.ID = 0
	if err := s.store.CreateActionItem(&item); err != nil {
		log.Error().Err(err).Msg("[CreateActionItem] Error creating action item")
		return nil, err
	}
	log.Info().Uint("action_id", item.ID).Msg("[CreateActionItem] Action item created")
	return &item, nil
}

// UpdateActionItem applies a partial update.
func (s *NotesService) UpdateActionItem(id uint, patch ActionItemPatch) (*model.ActionItem, error) {
	item, err := s.store.GetActionItem(id)
	if err != nil {
		return nil, err
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", ErrInvalidInput)
		}
		item.Description = *patch.Description
	}
	if patch.Completed != nil {
		item.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		item.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		item.DueDate = *patch.DueDate
	}
	if patch.Assignee != nil {
		item.Assignee = *patch.Assignee
	}
	item.UpdatedAt = now()
	if err := s.store.UpdateActionItem(item); err != nil {
		log.Error().Err(err).Uint("action_id", id).Msg("[UpdateActionItem] Error saving action item")
		return nil, err
	}
	return item, nil
}

// CompleteActionItem marks an action item as completed.
func (s *NotesService) CompleteActionItem(id uint) (*model.ActionItem, error) {
	done := true
	item, err := s.UpdateActionItem(id, ActionItemPatch{Completed: &done})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("action_id", id).Msg("[CompleteActionItem] Action item marked as completed")
	return item, nil
}

// AssignActionItem sets the assignee and, when an email address is given and
// a Notifier is configured, sends an assignment notification.
func (s *NotesService) AssignActionItem(ctx context.Context, id uint, assignee, email string) (*model.ActionItem, error) {
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		return nil, fmt.Errorf("%w: assignee is required", ErrInvalidInput)
	}
	item, err := s.UpdateActionItem(id, ActionItemPatch{Assignee: &assignee})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("action_id", id).Str("assignee", assignee).Msg("[AssignActionItem] Updated assignee")

	if email == "" || s.notifier == nil {
		return item, nil
	}
	if err := s.notifier.NotifyAssignment(ctx, email, item); err != nil {
		log.Error().Err(err).Uint("action_id", id).Msg("[AssignActionItem] Error sending notification")
		return nil, fmt.Errorf("assignee saved but notification failed: %w", err)
	}
	log.Info().Uint("action_id", id).Str("email", email).Msg("[AssignActionItem] Notification sent")
	return item, nil
}

// DeleteActionItem removes an action item.
func (s *NotesService) DeleteActionItem(id uint) error {
	return s.store.DeleteActionItem(id)
}
