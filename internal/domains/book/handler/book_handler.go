package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookrealm-backend/internal/domains/book/model"
	"bookrealm-backend/internal/domains/book/service"
	"bookrealm-backend/internal/shared/middleware"
	"bookrealm-backend/internal/shared/response"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cover, err := readUploadedCover(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.service.Create(c.Request.Context(), middleware.UserID(c), cover, req)
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, book)
}

func (h *BookHandler) Update(c *gin.Context) {
	var req model.UpdateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cover, err := readUploadedCover(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.service.Update(c.Request.Context(), middleware.UserID(c), c.Param("slug"), cover, req)
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, book)
}

// Delete moves the book to the trash. The response carries the purge
// deadline so clients can surface the countdown.
func (h *BookHandler) Delete(c *gin.Context) {
	book, err := h.service.SoftDelete(c.Request.Context(), middleware.UserID(c), c.Param("slug"))
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, book)
}

func (h *BookHandler) List(c *gin.Context) {
	var filter model.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	var page model.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, meta, err := h.service.ListPublished(c.Request.Context(), middleware.UserID(c), filter, page)
	if handleError(c, err) {
		return
	}
	respondPage(c, books, meta)
}

func (h *BookHandler) ListMine(c *gin.Context) {
	var page model.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	includeDeleted := c.Query("include_deleted") == "true"

	books, meta, err := h.service.ListMine(c.Request.Context(), middleware.UserID(c), includeDeleted, page)
	if handleError(c, err) {
		return
	}
	respondPage(c, books, meta)
}

func (h *BookHandler) ListTrash(c *gin.Context) {
	books, err := h.service.ListTrashed(c.Request.Context(), middleware.UserID(c))
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, books)
}

func (h *BookHandler) Restore(c *gin.Context) {
	var req model.RestoreBooksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	if err := h.service.Restore(c.Request.Context(), middleware.UserID(c), req.Slugs); handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"restored": len(req.Slugs)})
}

func (h *BookHandler) Remove(c *gin.Context) {
	var req model.RemoveBooksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	if err := h.service.Remove(c.Request.Context(), middleware.UserID(c), req.Slugs); handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": len(req.Slugs)})
}

func (h *BookHandler) GetBySlug(c *gin.Context) {
	book, err := h.service.GetBySlug(c.Request.Context(), middleware.UserID(c), c.Param("slug"))
	if handleError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, book)
}

func (h *BookHandler) GetRecommended(c *gin.Context) {
	var page model.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, meta, err := h.service.GetRecommended(c.Request.Context(), middleware.UserID(c), page)
	if handleError(c, err) {
		return
	}
	respondPage(c, books, meta)
}

func (h *BookHandler) GetPopular(c *gin.Context) {
	var page model.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, meta, err := h.service.GetPopular(c.Request.Context(), middleware.UserID(c), page)
	if handleError(c, err) {
		return
	}
	respondPage(c, books, meta)
}

func (h *BookHandler) GetRelated(c *gin.Context) {
	var page model.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, meta, err := h.service.GetRelated(c.Request.Context(), middleware.UserID(c), c.Param("slug"), page)
	if handleError(c, err) {
		return
	}
	respondPage(c, books, meta)
}

func handleError(c *gin.Context, err error) bool {
	return model.HandleBookError(c, err)
}

func respondPage(c *gin.Context, books []model.Book, meta model.PageMeta) {
	if books == nil {
		books = []model.Book{}
	}
	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		TotalItems:   meta.TotalItems,
		TotalPages:   meta.TotalPages,
		CurrentPage:  meta.CurrentPage,
		ItemsPerPage: meta.ItemsPerPage,
	})
}

func readUploadedCover(c *gin.Context) (*service.UploadedImage, error) {
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		// The cover is optional.
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

	return &service.UploadedImage{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
