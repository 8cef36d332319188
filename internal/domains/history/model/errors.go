package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookrealm-backend/internal/shared/response"
)

var ErrHistoryNotFound = errors.New("history entry not found")

// HandleHistoryError translates domain errors to HTTP responses.
// Returns true when the error was handled.
func HandleHistoryError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrHistoryNotFound) {
		response.ErrorResponse(c, http.StatusNotFound, http.StatusText(http.StatusNotFound), err.Error())
		return true
	}

	log.Error().Err(err).Msg("Unhandled history error")
	response.InternalServerError(c, "Internal server error")
	return true
}
