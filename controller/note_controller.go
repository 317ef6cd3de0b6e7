package controller

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Itish41/ActionNotes/extractor"
	services "github.com/Itish41/ActionNotes/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// maxImportSize caps uploaded note files.
const maxImportSize = 1 << 20

type createNoteRequest struct {
	Title   string `json:"title" binding:"required,notblank,max=200"`
	Content string `json:"content" binding:"required,notblank"`
	MoodID  *uint  `json:"mood_id"`
	TagIDs  []uint `json:"tag_ids"`
}

type updateNoteRequest struct {
	Title   *string `json:"title" binding:"omitempty,notblank,max=200"`
	Content *string `json:"content" binding:"omitempty,notblank"`
	MoodID  *uint   `json:"mood_id"`
	TagIDs  *[]uint `json:"tag_ids"`
}

// ListNotes handles GET /notes?q=&skip=&limit=&sort=
func (c *Controller) ListNotes(ctx *gin.Context) {
	skip, limit, ok := pageParams(ctx)
	if !ok {
		return
	}
	notes, err := c.service.ListNotes(ctx.Query("q"), skip, limit, ctx.Query("sort"))
	if err != nil {
		respondError(ctx, "Note", err)
		return
	}
	ctx.JSON(http.StatusOK, notes)
}

// SearchNotes handles GET /notes/search?q=
func (c *Controller) SearchNotes(ctx *gin.Context) {
	_, limit, ok := pageParams(ctx)
	if !ok {
		return
	}
	notes, err := c.service.SearchNotes(ctx.Request.Context(), ctx.Query("q"), limit)
	if err != nil {
		respondError(ctx, "Note", err)
		return
	}
	ctx.JSON(http.StatusOK, notes)
}

func (c *Controller) GetNote(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	note, err := c.service.GetNote(id)
	if err != nil {
		respondError(ctx, "Note", err)
		return
	}
	ctx.JSON(http.StatusOK, note)
}

func (c *Controller) CreateNote(ctx *gin.Context) {
	var req createNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}
	note, err := c.service.CreateNote(ctx.Request.Context(), services.NoteInput{
		Title:   strings.TrimSpace(req.Title),
		Content: strings.TrimSpace(req.Content),
		MoodID:  req.MoodID,
		TagIDs:  req.TagIDs,
	})
	if err != nil {
		respondError(ctx, "Note", err)
		return
	}
	ctx.JSON(http.StatusCreated, note)
}

func (c *Controller) UpdateNote(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req updateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}
	patch := services.NotePatch{MoodID: req.MoodID, TagIDs: req.TagIDs}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		patch.Title = &title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		patch.Content = &content
	}
	note, err := c.service.UpdateNote(ctx.Request.Context(), id, patch)
	if err != nil {
		respondError(ctx, "Note", err)
		return
	}
	ctx.JSON(http.StatusOK, note)
}

func (c *Controller) DeleteNote(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeleteNote(ctx.Request.Context(), id); err != nil {
		respondError(ctx, "Note", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddTagToNote handles POST /notes/:id/tags/:tagId
func (c *Controller) AddTagToNote(ctx *gin.Context) {
	noteID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	tagID, ok := idParam(ctx, "tagId")
	if !ok {
		return
	}
	if err := c.service.AddTagToNote(noteID, tagID); err != nil {
		respondError(ctx, "Note", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// RemoveTagFromNote handles DELETE /notes/:id/tags/:tagId
func (c *Controller) RemoveTagFromNote(ctx *gin.Context) {
	noteID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	tagID, ok := idParam(ctx, "tagId")
	if !ok {
		return
	}
	if err := c.service.RemoveTagFromNote(noteID, tagID); err != nil {
		respondError(ctx, "Note", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ImportNote handles the multipart upload of a text file as a new note.
func (c *Controller) ImportNote(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Failed to get file from request"})
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, maxImportSize+1))
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("[ImportNote] Error reading upload")
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to read file"})
		return
	}
	if len(body) > maxImportSize {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "File exceeds 1 MiB"})
		return
	}
	extract, _ := strconv.ParseBool(ctx.DefaultQuery("extract", "false"))

	result, err := c.service.ImportNote(ctx.Request.Context(), header.Filename, header.Header.Get("Content-Type"), body, extract)
	if err != nil {
		respondError(ctx, "Note", err)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// ExtractFromNote handles POST /notes/:id/extract?mode=
func (c *Controller) ExtractFromNote(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	mode, err := extractor.ParseMode(ctx.Query("mode"))
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	items, used, err := c.service.ExtractFromNote(ctx.Request.Context(), id, mode)
	if err != nil {
		respondError(ctx, "Note", err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"mode": used, "items": items})
}

// ListExtractionRuns handles GET /notes/:id/extractions
func (c *Controller) ListExtractionRuns(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	runs, err := c.service.ListExtractionRuns(id)
	if err != nil {
		respondError(ctx, "Note", err)
		return
	}
	ctx.JSON(http.StatusOK, runs)
}
