package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"bookrealm-backend/internal/shared/response"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("duplicate category")
)

var categoryErrorMap = map[error]struct {
	Status  int
	Message string
}{
	ErrCategoryNotFound: {
		Status:  http.StatusNotFound,
		Message: "The specified category does not exist",
	},
	ErrDuplicateCategory: {
		Status:  http.StatusConflict,
		Message: "A category with this title already exists",
	},
}

// HandleCategoryError translates domain errors to HTTP responses.
// Returns true when the error was handled.
func HandleCategoryError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.UnprocessableEntity(c, validationErrs.Error())
		return true
	}

	for sentinel, cfg := range categoryErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, http.StatusText(cfg.Status), cfg.Message)
			return true
		}
	}

	log.Error().Err(err).Msg("Unhandled category error")
	response.InternalServerError(c, "Internal server error")
	return true
}
