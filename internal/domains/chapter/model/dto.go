package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateChapterRequest struct {
	Title   string  `json:"title" binding:"required"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

func (r CreateChapterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Status,
			validation.When(r.Status != nil, validation.In(StatusDraft, StatusPublished)),
		),
	)
}

type UpdateChapterRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

func (r UpdateChapterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, 255)),
		),
		validation.Field(&r.Status,
			validation.When(r.Status != nil, validation.In(StatusDraft, StatusPublished)),
		),
	)
}
