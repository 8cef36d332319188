package model

import "time"

// DefaultCap is how many books a user's reading history retains; the
// oldest entries are pruned past it.
const DefaultCap = 12

// History records that a user opened a book. One row per (user, book);
// re-reading bumps UpdatedAt instead of adding a row.
type History struct {
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	UpdatedAt time.Time `json:"updated_at"`
}
