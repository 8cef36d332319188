package service

import (
	"context"
	"fmt"

	"bookrealm-backend/internal/domains/history/repository"
	"bookrealm-backend/internal/events"
)

// Invalidator purges a book from every reading history when it leaves
// the published state, so histories never point at books their readers
// can no longer open.
type Invalidator struct {
	repo repository.RepositoryInterface
}

func NewInvalidator(repo repository.RepositoryInterface) *Invalidator {
	return &Invalidator{repo: repo}
}

// Register subscribes the invalidator to unpublish events.
func (i *Invalidator) Register(bus *events.Bus) {
	bus.Subscribe(events.BookUnpublished, i.onUnpublished)
}

func (i *Invalidator) onUnpublished(ctx context.Context, ev events.Event) error {
	if err := i.repo.DeleteByBook(ctx, ev.BookID); err != nil {
		return fmt.Errorf("purge history for book %d: %w", ev.BookID, err)
	}
	return nil
}
