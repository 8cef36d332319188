package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookrealm-backend/internal/infrastructure/storage"
	"bookrealm-backend/internal/shared"
)

// DeleteImageHandler removes a stored image that no longer has an
// owner (replaced cover, hard-deleted book).
type DeleteImageHandler struct {
	images storage.ImageStore
}

func NewDeleteImageHandler(images storage.ImageStore) *DeleteImageHandler {
	return &DeleteImageHandler{images: images}
}

func (h *DeleteImageHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.DeleteImagePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// Malformed payloads never fix themselves on retry.
		return fmt.Errorf("unmarshal delete image payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.images.Delete(ctx, payload.URL); err != nil {
		log.Error().Err(err).Str("url", payload.URL).Msg("Failed to delete image")
		return err
	}

	log.Info().Str("url", payload.URL).Msg("Deleted orphaned image")
	return nil
}
