package model

import "time"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Chapter belongs to exactly one book and is removed with it. A book's
// publishability depends on its published chapter count, which is why
// chapter writes can ripple into the book's status.
type Chapter struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
