package model

import "time"

// Book status. A book is created in draft and may only be published
// while it owns at least one published chapter.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Book is the aggregate root. FavoriteCount is denormalized and kept in
// sync by the favorite projector (eventually consistent). DeletedAt,
// PurgeAt and ExpiryDays model the trash state: a soft-deleted book is
// excluded from normal queries until restored or purged.
type Book struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Description   *string    `json:"description,omitempty"`
	Keywords      []string   `json:"keywords"`
	CoverURL      *string    `json:"cover_url,omitempty"`
	Status        string     `json:"status"`
	FavoriteCount int        `json:"favorite_count"`
	UserID        int64      `json:"user_id"`
	CategoryID    *int64     `json:"category_id,omitempty"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	PurgeAt       *time.Time `json:"purge_at,omitempty"`
	ExpiryDays    *int       `json:"expiry_days,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Read-side annotations, populated by joins and per-viewer lookups.
	// Never written back to storage.
	AuthorName    string  `json:"author_name,omitempty"`
	CategoryTitle *string `json:"category_title,omitempty"`
	IsFavorite    bool    `json:"is_favorite"`
}

// IsDeleted reports whether the book currently sits in the trash.
func (b *Book) IsDeleted() bool {
	return b.DeletedAt != nil
}

// DaysUntilPurge computes the remaining retention window, floored at 0.
func (b *Book) DaysUntilPurge(now time.Time) int {
	if b.PurgeAt == nil {
		return 0
	}
	remaining := b.PurgeAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	// Round up: a book purged "in 12 hours" still has 1 day left.
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}
