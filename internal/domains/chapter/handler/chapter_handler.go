package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	bookmodel "bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/chapter/model"
	"bookrealm-backend/internal/domains/chapter/service"
	"bookrealm-backend/internal/shared/middleware"
	"bookrealm-backend/internal/shared/response"
)

type ChapterHandler struct {
	service service.ServiceInterface
}

func NewChapterHandler(svc service.ServiceInterface) *ChapterHandler {
	return &ChapterHandler{service: svc}
}

func (h *ChapterHandler) Create(c *gin.Context) {
	var req model.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	chapter, err := h.service.Create(c.Request.Context(), middleware.UserID(c), c.Param("slug"), req)
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, chapter)
}

func (h *ChapterHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid chapter id")
		return
	}

	var req model.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	chapter, err := h.service.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, chapter)
}

func (h *ChapterHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid chapter id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id); handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *ChapterHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid chapter id")
		return
	}

	chapter, err := h.service.Get(c.Request.Context(), middleware.UserID(c), id)
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, chapter)
}

func (h *ChapterHandler) ListByBook(c *gin.Context) {
	chapters, err := h.service.ListByBookSlug(c.Request.Context(), middleware.UserID(c), c.Param("slug"))
	if handleError(c, err) {
		return
	}
	if chapters == nil {
		chapters = []model.Chapter{}
	}
	response.Success(c, http.StatusOK, chapters)
}

func handleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	// Creating a chapter resolves the owning book first.
	if errors.Is(err, bookmodel.ErrBookNotFound) {
		response.NotFound(c, err.Error())
		return true
	}
	return model.HandleChapterError(c, err)
}
