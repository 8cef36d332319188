package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AddInterestsRequest struct {
	CategoryIDs []int64 `json:"category_ids" binding:"required"`
}

func (r AddInterestsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CategoryIDs,
			validation.Required.Error("category_ids is required"),
			validation.Each(validation.Min(int64(1))),
		),
	)
}
