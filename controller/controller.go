package controller

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	services "github.com/Itish41/ActionNotes/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// Controller serves the notes API.
type Controller struct {
	service *services.NotesService
}

// NewController wraps a NotesService.
func NewController(service *services.NotesService) *Controller {
	return &Controller{service: service}
}

// RegisterValidators adds the notblank rule to gin's validator and makes
// validation errors report JSON field names.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		return name
	})
	return v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// respondError maps service errors onto status codes. thing names the
// resource in 404 bodies, e.g. "Note".
func respondError(ctx *gin.Context, thing string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		// "note: record not found" names the missing side of a link
		if prefix, _, ok := strings.Cut(err.Error(), ": "); ok && prefix != services.ErrNotFound.Error() {
			thing = strings.ToUpper(prefix[:1]) + prefix[1:]
		}
		ctx.JSON(http.StatusNotFound, gin.H{"detail": thing + " not found"})
	case errors.Is(err, services.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"detail": conflictDetail(err)})
	case errors.Is(err, services.ErrInvalidInput):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": ")})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("[respondError] Unexpected error")
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

func conflictDetail(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, services.ErrConflict.Error()+": "); ok && strings.Contains(rest, " ") {
		return rest
	}
	return msg
}

// bindError answers 422 for a request body that failed to bind or validate.
func bindError(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, gin.H{
				"field": fe.Field(),
				"rule":  fe.Tag(),
				"msg":   validationMessage(fe),
			})
		}
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": details})
		return
	}
	ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "notblank":
		return "must not be blank"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "len", "hexcolor":
		return "must be a #RRGGBB color"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	}
	return "failed " + fe.Tag() + " validation"
}

// idParam parses a positive integer path parameter.
func idParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": name + " must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

// pageParams reads skip and limit query parameters.
func pageParams(ctx *gin.Context) (skip, limit int, ok bool) {
	var err error
	if v := ctx.Query("skip"); v != "" {
		if skip, err = strconv.Atoi(v); err != nil || skip < 0 {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "skip must be a non-negative integer"})
			return 0, 0, false
		}
	}
	if v := ctx.Query("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 || limit > 500 {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "limit must be between 1 and 500"})
			return 0, 0, false
		}
	}
	return skip, limit, true
}
