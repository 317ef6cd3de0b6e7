package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Itish41/ActionNotes/extractor"
	model "github.com/Itish41/ActionNotes/models"
	services "github.com/Itish41/ActionNotes/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type createActionItemRequest struct {
	Description string `json:"description" binding:"required,notblank"`
	NoteID      *uint  `json:"note_id"`
	Completed   bool   `json:"completed"`
	Priority    string `json:"priority" binding:"max=10"`
	DueDate     string `json:"due_date" binding:"max=50"`
	Assignee    string `json:"assignee" binding:"max=100"`
}

type updateActionItemRequest struct {
	Description *string `json:"description" binding:"omitempty,notblank"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority" binding:"omitempty,max=10"`
	DueDate     *string `json:"due_date" binding:"omitempty,max=50"`
	Assignee    *string `json:"assignee" binding:"omitempty,max=100"`
}

type assignRequest struct {
	Assignee string `json:"assignee" binding:"required,notblank,max=100"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type extractRequest struct {
	Text   string `json:"text"`
	Mode   string `json:"mode"`
	Save   bool   `json:"save"`
	NoteID *uint  `json:"note_id"`
}

// ListActionItems handles GET /action-items?completed=&note_id=&skip=&limit=&sort=
func (c *Controller) ListActionItems(ctx *gin.Context) {
	skip, limit, ok := pageParams(ctx)
	if !ok {
		return
	}
	filter := services.ActionItemFilter{Skip: skip, Limit: limit, Sort: ctx.Query("sort")}
	if v := ctx.Query("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "completed must be true or false"})
			return
		}
		filter.Completed = &completed
	}
	if v := ctx.Query("note_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "note_id must be a positive integer"})
			return
		}
		noteID := uint(id)
		filter.NoteID = &noteID
	}

	items, err := c.service.ListActionItems(filter)
	if err != nil {
		respondError(ctx, "Action item", err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

func (c *Controller) GetActionItem(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	item, err := c.service.GetActionItem(id)
	if err != nil {
		respondError(ctx, "Action item", err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

func (c *Controller) CreateActionItem(ctx *gin.Context) {
	var req createActionItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}
	item, err := c.service.CreateActionItem(model.ActionItem{
		NoteID:      req.NoteID,
		Description: strings.TrimSpace(req.Description),
		Completed:   req.Completed,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Assignee:    req.Assignee,
	})
	if err != nil {
		respondError(ctx, "Action item", err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

func (c *Controller) UpdateActionItem(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req updateActionItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}
	if req.Description != nil {
		d := strings.TrimSpace(*req.Description)
		req.Description = &d
	}
	item, err := c.service.UpdateActionItem(id, services.ActionItemPatch{
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Assignee:    req.Assignee,
	})
	if err != nil {
		respondError(ctx, "Action item", err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// CompleteActionItem marks an action as completed
func (c *Controller) CompleteActionItem(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	item, err := c.service.CompleteActionItem(id)
	if err != nil {
		respondError(ctx, "Action item", err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// AssignActionItem sets the assignee of an action item and, when an email is
// given, sends a notification.
func (c *Controller) AssignActionItem(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req assignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}
	item, err := c.service.AssignActionItem(ctx.Request.Context(), id, req.Assignee, req.Email)
	if err != nil {
		respondError(ctx, "Action item", err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

func (c *Controller) DeleteActionItem(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeleteActionItem(id); err != nil {
		respondError(ctx, "Action item", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ExtractActionItems handles POST /action-items/extract. Items are only
// persisted when save is set.
func (c *Controller) ExtractActionItems(ctx *gin.Context) {
	var req extractRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}
	mode, err := extractor.ParseMode(req.Mode)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	if !req.Save {
		items, used, err := c.service.Extract(ctx.Request.Context(), req.Text, mode)
		if err != nil {
			respondError(ctx, "Action item", err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"mode": used, "items": items})
		return
	}

	if req.NoteID != nil {
		if _, err := c.service.GetNote(*req.NoteID); err != nil {
			respondError(ctx, "Note", err)
			return
		}
	}
	items, used, err := c.service.ExtractAndSave(ctx.Request.Context(), req.Text, mode, req.NoteID)
	if err != nil {
		respondError(ctx, "Action item", err)
		return
	}
	log.Info().Int("items", len(items)).Str("mode", string(used)).Msg("[ExtractActionItems] Saved extracted items")
	ctx.JSON(http.StatusCreated, gin.H{"mode": used, "items": items})
}
