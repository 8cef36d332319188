package model

import "time"

// Category groups books and carries a popularity weight. Priority is a
// relative counter bumped when books are assigned to the category and
// lowered when they leave; it only drives ordering, never access.
type Category struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Icon      *string   `json:"icon,omitempty"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
