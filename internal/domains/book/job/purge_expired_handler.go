package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookrealm-backend/internal/domains/book/service"
)

// PurgeExpiredHandler runs the daily trash sweep: refreshes purge
// countdowns and removes books whose retention window has passed.
type PurgeExpiredHandler struct {
	books service.ServiceInterface
}

func NewPurgeExpiredHandler(books service.ServiceInterface) *PurgeExpiredHandler {
	return &PurgeExpiredHandler{books: books}
}

func (h *PurgeExpiredHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	log.Info().Str("task", t.Type()).Msg("Starting trash sweep")

	if err := h.books.SweepTrash(ctx); err != nil {
		log.Error().Err(err).Msg("Trash sweep failed")
		return err
	}
	return nil
}
