package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type tagRequest struct {
	Name  string `json:"name" binding:"required,notblank,max=50"`
	Color string `json:"color" binding:"omitempty,len=7,hexcolor"`
}

func (c *Controller) ListTags(ctx *gin.Context) {
	tags, err := c.service.ListTags()
	if err != nil {
		respondError(ctx, "Tag", err)
		return
	}
	ctx.JSON(http.StatusOK, tags)
}

func (c *Controller) GetTag(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	tag, err := c.service.GetTag(id)
	if err != nil {
		respondError(ctx, "Tag", err)
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

func (c *Controller) CreateTag(ctx *gin.Context) {
	var req tagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}
	tag, err := c.service.CreateTag(strings.TrimSpace(req.Name), req.Color)
	if err != nil {
		respondError(ctx, "Tag", err)
		return
	}
	ctx.JSON(http.StatusCreated, tag)
}

func (c *Controller) UpdateTag(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req tagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}
	tag, err := c.service.UpdateTag(id, strings.TrimSpace(req.Name), req.Color)
	if err != nil {
		respondError(ctx, "Tag", err)
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

func (c *Controller) DeleteTag(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeleteTag(id); err != nil {
		respondError(ctx, "Tag", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
