package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	categorymodel "bookrealm-backend/internal/domains/category/model"
	"bookrealm-backend/internal/domains/interest/model"
	"bookrealm-backend/internal/domains/interest/service"
	"bookrealm-backend/internal/shared/middleware"
	"bookrealm-backend/internal/shared/response"
)

type InterestHandler struct {
	service service.ServiceInterface
}

func NewInterestHandler(svc service.ServiceInterface) *InterestHandler {
	return &InterestHandler{service: svc}
}

func (h *InterestHandler) Add(c *gin.Context) {
	var req model.AddInterestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Add(c.Request.Context(), middleware.UserID(c), req); handleError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"added": len(req.CategoryIDs)})
}

func (h *InterestHandler) List(c *gin.Context) {
	categories, err := h.service.ListByUser(c.Request.Context(), middleware.UserID(c))
	if handleError(c, err) {
		return
	}
	if categories == nil {
		categories = []categorymodel.Category{}
	}
	response.Success(c, http.StatusOK, categories)
}

func (h *InterestHandler) Delete(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), categoryID); handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": categoryID})
}

func handleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, categorymodel.ErrCategoryNotFound) {
		response.NotFound(c, err.Error())
		return true
	}
	return model.HandleInterestError(c, err)
}
