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
	ErrAlreadyInterested = errors.New("category already in interests")
	ErrInterestNotFound  = errors.New("interest not found")
)

var interestErrorMap = map[error]int{
	ErrAlreadyInterested: http.StatusConflict,
	ErrInterestNotFound:  http.StatusNotFound,
}

// HandleInterestError translates domain and validation errors to HTTP
// responses. Returns true when the error was handled.
func HandleInterestError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.UnprocessableEntity(c, validationErrs.Error())
		return true
	}

	for sentinel, status := range interestErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, status, http.StatusText(status), err.Error())
			return true
		}
	}

	log.Error().Err(err).Msg("Unhandled interest error")
	response.InternalServerError(c, "Internal server error")
	return true
}
