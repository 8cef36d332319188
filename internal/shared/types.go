package shared

// Asynq task types. Keeping them here avoids import cycles between
// the domains that enqueue and the worker that consumes.
const (
	TypePurgeExpiredBooks = "book:purge_expired"
	TypeDeleteBookImage   = "book:delete_image"
)

// Asynq queue names.
const (
	QueueBook = "book"
)

// DeleteImagePayload is enqueued whenever a stored cover image becomes
// unreferenced (hard delete, cover replacement).
type DeleteImagePayload struct {
	URL string `json:"url"`
}

// PurgeExpiredPayload triggers the daily trash sweep.
type PurgeExpiredPayload struct{}
