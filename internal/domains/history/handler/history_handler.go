package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bookmodel "bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/history/model"
	"bookrealm-backend/internal/domains/history/service"
	"bookrealm-backend/internal/shared/middleware"
	"bookrealm-backend/internal/shared/response"
)

type HistoryHandler struct {
	service service.ServiceInterface
}

func NewHistoryHandler(svc service.ServiceInterface) *HistoryHandler {
	return &HistoryHandler{service: svc}
}

func (h *HistoryHandler) Track(c *gin.Context) {
	err := h.service.Track(c.Request.Context(), middleware.UserID(c), c.Param("slug"))
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"tracked": c.Param("slug")})
}

func (h *HistoryHandler) List(c *gin.Context) {
	books, err := h.service.List(c.Request.Context(), middleware.UserID(c))
	if handleError(c, err) {
		return
	}
	if books == nil {
		books = []bookmodel.Book{}
	}
	response.Success(c, http.StatusOK, books)
}

func (h *HistoryHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), middleware.UserID(c), c.Param("slug"))
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": c.Param("slug")})
}

func handleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, bookmodel.ErrBookNotFound) {
		response.NotFound(c, err.Error())
		return true
	}
	return model.HandleHistoryError(c, err)
}
