package model

import "time"

// InterestedCategory marks a category the user wants recommendations
// from. Unique per (user, category).
type InterestedCategory struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	CategoryID int64     `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}
