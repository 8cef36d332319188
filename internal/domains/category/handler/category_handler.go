package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookrealm-backend/internal/domains/category/model"
	"bookrealm-backend/internal/domains/category/service"
	"bookrealm-backend/internal/shared/response"
)

type CategoryHandler struct {
	service service.ServiceInterface
}

func NewCategoryHandler(svc service.ServiceInterface) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	icon, err := readUploadedIcon(c, "icon")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.service.Create(c.Request.Context(), icon, req)
	if model.HandleCategoryError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, category)
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if model.HandleCategoryError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, categories)
}

func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	category, err := h.service.FindByID(c.Request.Context(), id)
	if model.HandleCategoryError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	var req model.UpdateCategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	icon, err := readUploadedIcon(c, "icon")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.service.Update(c.Request.Context(), id, icon, req)
	if model.HandleCategoryError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	category, err := h.service.Remove(c.Request.Context(), id)
	if model.HandleCategoryError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, category)
}

// readUploadedIcon decodes an optional multipart file field.
func readUploadedIcon(c *gin.Context, field string) (*service.UploadedIcon, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// Missing file is fine; the field is optional.
		return nil, nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &service.UploadedIcon{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
