package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateCategoryRequest struct {
	Title string `json:"title" form:"title" binding:"required"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 100),
		),
	)
}

type UpdateCategoryRequest struct {
	Title *string `json:"title" form:"title"`
}

func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, 100)),
		),
	)
}
