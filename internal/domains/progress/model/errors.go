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
	ErrProgressNotFound  = errors.New("reading progress not found")
	ErrDuplicateProgress = errors.New("reading progress already exists for this book")
)

var progressErrorMap = map[error]int{
	ErrProgressNotFound:  http.StatusNotFound,
	ErrDuplicateProgress: http.StatusConflict,
}

// HandleProgressError translates domain and validation errors to HTTP
// responses. Returns true when the error was handled.
func HandleProgressError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.UnprocessableEntity(c, validationErrs.Error())
		return true
	}

	for sentinel, status := range progressErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, status, http.StatusText(status), err.Error())
			return true
		}
	}

	log.Error().Err(err).Msg("Unhandled progress error")
	response.InternalServerError(c, "Internal server error")
	return true
}
