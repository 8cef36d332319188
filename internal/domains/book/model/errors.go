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
	// ErrBookNotFound also covers ownership mismatches on mutation
	// targets: a caller probing another author's book learns nothing.
	ErrBookNotFound = errors.New("book not found")

	// ErrDuplicateTitle is raised when another active book of the same
	// author already owns the derived slug.
	ErrDuplicateTitle = errors.New("duplicate book title")

	// ErrNoPublishedChapters rejects a publish transition for a book
	// without a single published chapter.
	ErrNoPublishedChapters = errors.New("book has no published chapters")

	// ErrBookNotInTrash rejects a hard delete of a book that was never
	// soft-deleted.
	ErrBookNotInTrash = errors.New("book is not in trash")

	// ErrCategoryNotFound rejects a book write referencing a category
	// id that does not resolve.
	ErrCategoryNotFound = errors.New("category not found")
)

// The response message is err.Error() itself: batch operations wrap
// the sentinel with the offending slug and that context must reach the
// caller.
var bookErrorMap = map[error]int{
	ErrBookNotFound:        http.StatusNotFound,
	ErrDuplicateTitle:      http.StatusConflict,
	ErrNoPublishedChapters: http.StatusUnprocessableEntity,
	ErrBookNotInTrash:      http.StatusUnprocessableEntity,
	ErrCategoryNotFound:    http.StatusNotFound,
}

// HandleBookError translates domain and validation errors to HTTP
// responses. Returns true when the error was handled.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.UnprocessableEntity(c, validationErrs.Error())
		return true
	}

	for sentinel, status := range bookErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, status, http.StatusText(status), err.Error())
			return true
		}
	}

	log.Error().Err(err).Msg("Unhandled book error")
	response.InternalServerError(c, "Internal server error")
	return true
}
