package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookrealm-backend/internal/shared/response"
)

var (
	ErrAlreadyFavorited = errors.New("book already favorited")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

var favoriteErrorMap = map[error]int{
	ErrAlreadyFavorited: http.StatusConflict,
	ErrFavoriteNotFound: http.StatusNotFound,
}

// HandleFavoriteError translates domain errors to HTTP responses.
// Returns true when the error was handled.
func HandleFavoriteError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, status := range favoriteErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, status, http.StatusText(status), err.Error())
			return true
		}
	}

	log.Error().Err(err).Msg("Unhandled favorite error")
	response.InternalServerError(c, "Internal server error")
	return true
}
