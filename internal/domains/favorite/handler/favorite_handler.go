package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bookmodel "bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/favorite/model"
	"bookrealm-backend/internal/domains/favorite/service"
	"bookrealm-backend/internal/shared/middleware"
	"bookrealm-backend/internal/shared/response"
)

type FavoriteHandler struct {
	service service.ServiceInterface
}

func NewFavoriteHandler(svc service.ServiceInterface) *FavoriteHandler {
	return &FavoriteHandler{service: svc}
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	err := h.service.Add(c.Request.Context(), middleware.UserID(c), c.Param("slug"))
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"favorited": c.Param("slug")})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	err := h.service.Remove(c.Request.Context(), middleware.UserID(c), c.Param("slug"))
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unfavorited": c.Param("slug")})
}

func (h *FavoriteHandler) ListMine(c *gin.Context) {
	var page bookmodel.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, meta, err := h.service.ListByUser(c.Request.Context(), middleware.UserID(c), page)
	if handleError(c, err) {
		return
	}
	if books == nil {
		books = []bookmodel.Book{}
	}
	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		TotalItems:   meta.TotalItems,
		TotalPages:   meta.TotalPages,
		CurrentPage:  meta.CurrentPage,
		ItemsPerPage: meta.ItemsPerPage,
	})
}

func handleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	// The write path resolves the book before touching favorites.
	if errors.Is(err, bookmodel.ErrBookNotFound) {
		response.NotFound(c, err.Error())
		return true
	}
	return model.HandleFavoriteError(c, err)
}
