package service

import (
	"context"
	"fmt"

	"bookrealm-backend/internal/events"
)

// CountProjector keeps books.favorite_count in line with the favorites
// table. It reacts to favorite events instead of updating inline so a
// slow counter write never extends the favorite request, at the price
// of eventual consistency in the displayed count.
type CountProjector struct {
	counts CounterStore
}

func NewCountProjector(counts CounterStore) *CountProjector {
	return &CountProjector{counts: counts}
}

// Register subscribes the projector to the favorite events.
func (p *CountProjector) Register(bus *events.Bus) {
	bus.Subscribe(events.FavoriteCreated, p.onCreated)
	bus.Subscribe(events.FavoriteDeleted, p.onDeleted)
}

func (p *CountProjector) onCreated(ctx context.Context, ev events.Event) error {
	if err := p.counts.IncrementFavoriteCount(ctx, ev.BookID); err != nil {
		return fmt.Errorf("increment favorite count for book %d: %w", ev.BookID, err)
	}
	return nil
}

func (p *CountProjector) onDeleted(ctx context.Context, ev events.Event) error {
	if err := p.counts.DecrementFavoriteCount(ctx, ev.BookID); err != nil {
		return fmt.Errorf("decrement favorite count for book %d: %w", ev.BookID, err)
	}
	return nil
}
