package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type moodRequest struct {
	Mood string `json:"mood" binding:"required,oneof=happy neutral sad angry tired"`
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

func (r moodRequest) date() *time.Time {
	if r.Date == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return nil // already validated
	}
	return &d
}

func (c *Controller) ListMoods(ctx *gin.Context) {
	skip, limit, ok := pageParams(ctx)
	if !ok {
		return
	}
	entries, err := c.service.ListMoods(skip, limit)
	if err != nil {
		respondError(ctx, "Mood entry", err)
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// WeeklyMoods handles GET /moods/weekly
func (c *Controller) WeeklyMoods(ctx *gin.Context) {
	entries, err := c.service.WeeklyMoods()
	if err != nil {
		respondError(ctx, "Mood entry", err)
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// WeeklyMoodStats handles GET /moods/stats/weekly
func (c *Controller) WeeklyMoodStats(ctx *gin.Context) {
	counts, err := c.service.WeeklyMoodStats()
	if err != nil {
		respondError(ctx, "Mood entry", err)
		return
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	ctx.JSON(http.StatusOK, gin.H{"counts": counts, "total": total})
}

func (c *Controller) GetMood(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	entry, err := c.service.GetMood(id)
	if err != nil {
		respondError(ctx, "Mood entry", err)
		return
	}
	ctx.JSON(http.StatusOK, entry)
}

func (c *Controller) CreateMood(ctx *gin.Context) {
	var req moodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}
	entry, err := c.service.CreateMood(req.Mood, req.date())
	if err != nil {
		respondError(ctx, "Mood entry", err)
		return
	}
	ctx.JSON(http.StatusCreated, entry)
}

func (c *Controller) UpdateMood(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req moodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}
	entry, err := c.service.UpdateMood(id, req.Mood, req.date())
	if err != nil {
		respondError(ctx, "Mood entry", err)
		return
	}
	ctx.JSON(http.StatusOK, entry)
}

func (c *Controller) DeleteMood(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeleteMood(id); err != nil {
		respondError(ctx, "Mood entry", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
