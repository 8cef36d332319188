package model

import "time"

// Favorite is a (user, book) pair; the composite primary key keeps it
// at most one row per pair.
type Favorite struct {
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}
