package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type SaveProgressRequest struct {
	ChapterID int64 `json:"chapter_id" binding:"required"`
	Position  int   `json:"position"`
}

func (r SaveProgressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ChapterID,
			validation.Required.Error("chapter_id is required"),
			validation.Min(int64(1)),
		),
		validation.Field(&r.Position, validation.Min(0)),
	)
}
