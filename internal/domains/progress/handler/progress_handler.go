package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bookmodel "bookrealm-backend/internal/domains/book/model"
	chaptermodel "bookrealm-backend/internal/domains/chapter/model"
	"bookrealm-backend/internal/domains/progress/model"
	"bookrealm-backend/internal/domains/progress/service"
	"bookrealm-backend/internal/shared/middleware"
	"bookrealm-backend/internal/shared/response"
)

type ProgressHandler struct {
	service service.ServiceInterface
}

func NewProgressHandler(svc service.ServiceInterface) *ProgressHandler {
	return &ProgressHandler{service: svc}
}

func (h *ProgressHandler) Start(c *gin.Context) {
	var req model.SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	progress, err := h.service.Start(c.Request.Context(), middleware.UserID(c), c.Param("slug"), req)
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, progress)
}

func (h *ProgressHandler) Advance(c *gin.Context) {
	var req model.SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	progress, err := h.service.Advance(c.Request.Context(), middleware.UserID(c), c.Param("slug"), req)
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, progress)
}

func (h *ProgressHandler) Get(c *gin.Context) {
	progress, err := h.service.Get(c.Request.Context(), middleware.UserID(c), c.Param("slug"))
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, progress)
}

// handleError covers the cross-domain sentinels first: a progress call
// can fail on the book or the chapter before it touches its own rows.
func handleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, bookmodel.ErrBookNotFound) || errors.Is(err, chaptermodel.ErrChapterNotFound) {
		response.NotFound(c, err.Error())
		return true
	}
	return model.HandleProgressError(c, err)
}
