package model

import (
	"crypto/md5"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Sort orders accepted by the list endpoints. Empty means database
// natural order.
const (
	SortNone      = ""
	SortTitleAsc  = "title_asc"
	SortTitleDesc = "title_desc"
	SortNewest    = "newest"
	SortOldest    = "oldest"
)

type CreateBookRequest struct {
	Title       string   `json:"title" form:"title" binding:"required"`
	Description *string  `json:"description" form:"description"`
	Keywords    []string `json:"keywords" form:"keywords"`
	CategoryID  int64    `json:"category_id" form:"category_id" binding:"required"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Keywords,
			validation.Each(validation.Length(1, 50)),
		),
		validation.Field(&r.CategoryID,
			validation.Required.Error("category_id is required"),
			validation.Min(int64(1)),
		),
	)
}

type UpdateBookRequest struct {
	Title       *string  `json:"title" form:"title"`
	Description *string  `json:"description" form:"description"`
	Keywords    []string `json:"keywords" form:"keywords"` // nil = unchanged
	CategoryID  *int64   `json:"category_id" form:"category_id"`
	Status      *string  `json:"status" form:"status"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, 255)),
		),
		validation.Field(&r.Keywords,
			validation.Each(validation.Length(1, 50)),
		),
		validation.Field(&r.Status,
			validation.When(r.Status != nil, validation.In(StatusDraft, StatusPublished)),
		),
	)
}

// ListFilter narrows the published-books listing. Search runs through
// the three-tier fallback (title, then keywords, then description).
type ListFilter struct {
	Search     string `form:"search"`
	CategoryID *int64 `form:"category_id"`
	OwnerID    *int64 `form:"owner_id"`
	Sort       string `form:"sort"`
}

func (f ListFilter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Sort,
			validation.In(SortNone, SortTitleAsc, SortTitleDesc, SortNewest, SortOldest).
				Error("invalid sort parameter"),
		),
	)
}

// Page is 1-indexed pagination input.
type Page struct {
	Number int `form:"page"`
	Size   int `form:"limit"`
}

// Normalized clamps the page parameters to sane bounds.
func (p Page) Normalized() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size <= 0 {
		p.Size = 10
	}
	if p.Size > 100 {
		p.Size = 100
	}
	return p
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// PageMeta is the pagination metadata returned alongside every list.
type PageMeta struct {
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
}

// NewPageMeta computes totals from an item count and page input.
func NewPageMeta(totalItems int, page Page) PageMeta {
	totalPages := (totalItems + page.Size - 1) / page.Size
	return PageMeta{
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		CurrentPage:  page.Number,
		ItemsPerPage: page.Size,
	}
}

// RestoreBooksRequest restores a batch of trashed books by slug.
type RestoreBooksRequest struct {
	Slugs []string `json:"slugs" binding:"required"`
}

func (r RestoreBooksRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Slugs,
			validation.Required.Error("slugs is required"),
			validation.Each(validation.Length(1, 300)),
		),
	)
}

// RemoveBooksRequest permanently deletes a batch of trashed books.
type RemoveBooksRequest struct {
	Slugs []string `json:"slugs" binding:"required"`
}

func (r RemoveBooksRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Slugs,
			validation.Required.Error("slugs is required"),
			validation.Each(validation.Length(1, 300)),
		),
	)
}

// ListCacheKey derives a stable cache key for a list request.
func ListCacheKey(filter ListFilter, page Page, viewerID int64) string {
	categoryID := int64(0)
	if filter.CategoryID != nil {
		categoryID = *filter.CategoryID
	}
	ownerID := int64(0)
	if filter.OwnerID != nil {
		ownerID = *filter.OwnerID
	}

	data := fmt.Sprintf("q=%s|cat=%d|owner=%d|sort=%s|page=%d|size=%d|viewer=%d",
		filter.Search, categoryID, ownerID, filter.Sort, page.Number, page.Size, viewerID)
	return fmt.Sprintf("books:list:%x", md5.Sum([]byte(data)))
}
