package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API on r. strict guards the expensive endpoints
// (file import and extraction).
func RegisterRoutes(r gin.IRouter, c *Controller, strict gin.HandlerFunc) {
	if strict == nil {
		strict = func(ctx *gin.Context) { ctx.Next() }
	}

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	notes := r.Group("/notes")
	notes.GET("", c.ListNotes)
	notes.POST("", c.CreateNote)
	notes.GET("/search", c.SearchNotes)
	notes.POST("/import", strict, c.ImportNote)
	notes.GET("/:id", c.GetNote)
	notes.PATCH("/:id", c.UpdateNote)
	notes.DELETE("/:id", c.DeleteNote)
	notes.POST("/:id/tags/:tagId", c.AddTagToNote)
	notes.DELETE("/:id/tags/:tagId", c.RemoveTagFromNote)
	notes.POST("/:id/extract", strict, c.ExtractFromNote)
	notes.GET("/:id/extractions", c.ListExtractionRuns)

	tags := r.Group("/tags")
	tags.GET("", c.ListTags)
	tags.POST("", c.CreateTag)
	tags.GET("/:id", c.GetTag)
	tags.PUT("/:id", c.UpdateTag)
	tags.DELETE("/:id", c.DeleteTag)

	items := r.Group("/action-items")
	items.GET("", c.ListActionItems)
	items.POST("", c.CreateActionItem)
	items.POST("/extract", strict, c.ExtractActionItems)
	items.GET("/:id", c.GetActionItem)
	items.PATCH("/:id", c.UpdateActionItem)
	items.DELETE("/:id", c.DeleteActionItem)
	items.PUT("/:id/complete", c.CompleteActionItem)
	items.PUT("/:id/assign", c.AssignActionItem)

	moods := r.Group("/moods")
	moods.GET("", c.ListMoods)
	moods.POST("", c.CreateMood)
	moods.GET("/weekly", c.WeeklyMoods)
	moods.GET("/stats/weekly", c.WeeklyMoodStats)
	moods.GET("/:id", c.GetMood)
	moods.PUT("/:id", c.UpdateMood)
	moods.DELETE("/:id", c.DeleteMood)
}
