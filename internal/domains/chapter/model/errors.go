package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"bookrealm-backend/internal/shared/response"
)

// ErrChapterNotFound covers missing chapters and ownership mismatches
// alike.
var ErrChapterNotFound = errors.New("chapter not found")

// HandleChapterError translates domain and validation errors to HTTP
// responses. Returns true when the error was handled.
func HandleChapterError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.UnprocessableEntity(c, validationErrs.Error())
		return true
	}

	if errors.Is(err, ErrChapterNotFound) {
		response.ErrorResponse(c, http.StatusNotFound, http.StatusText(http.StatusNotFound), err.Error())
		return true
	}

	log.Error().Err(err).Msg("Unhandled chapter error")
	response.InternalServerError(c, "Internal server error")
	return true
}
