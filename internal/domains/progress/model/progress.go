package model

import "time"

// Progress is a reader's bookmark within a book: the chapter they last
// opened and how far into it they got. One row per reader per book; the
// row moves forward as the reader advances.
type Progress struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	ChapterID int64     `json:"chapter_id"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
