package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Event names. The set is fixed; this is not a generic workflow engine.
const (
	BookUnpublished = "book.unpublished"
	FavoriteCreated = "favorite.created"
	FavoriteDeleted = "favorite.deleted"
)

// Event is the envelope carried to every subscriber. All current events
// concern a single book, so the payload is just the book id.
type Event struct {
	ID         uuid.UUID
	Name       string
	BookID     int64
	OccurredAt time.Time
}

// NewEvent builds an envelope for a book-scoped event.
func NewEvent(name string, bookID int64) Event {
	return Event{
		ID:         uuid.New(),
		Name:       name,
		BookID:     bookID,
		OccurredAt: time.Now(),
	}
}

// Handler processes a single event. Handlers must tolerate redelivery:
// dispatch is at-least-once in intent, and the same event can reach a
// handler twice under retry.
type Handler func(ctx context.Context, ev Event) error

// Bus is an in-process, asynchronous event dispatcher. It is built once
// at startup and injected into the services that emit and the services
// that subscribe; there is no package-level instance.
//
// Emit never blocks on handlers and never surfaces handler failures to
// the emitter: secondary bookkeeping must not fail the primary write.
// Failures are logged, not dropped silently.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler

	// wg tracks in-flight handlers so shutdown can drain them.
	wg sync.WaitGroup
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for an event name. Registration happens
// during container construction, before any Emit.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Emit dispatches the event to every subscriber, each in its own
// goroutine. The caller's context is not reused: the triggering HTTP
// request may finish before the handlers do.
func (b *Bus) Emit(ev Event) {
	b.mu.RLock()
	subscribers := b.handlers[ev.Name]
	b.mu.RUnlock()

	if len(subscribers) == 0 {
		log.Warn().
			Str("event", ev.Name).
			Int64("book_id", ev.BookID).
			Msg("Event emitted with no subscribers")
		return
	}

	for _, h := range subscribers {
		h := h
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Str("event", ev.Name).
						Str("event_id", ev.ID.String()).
						Interface("panic", r).
						Msg("Event handler panicked")
				}
			}()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := h(ctx, ev); err != nil {
				log.Error().
					Err(err).
					Str("event", ev.Name).
					Str("event_id", ev.ID.String()).
					Int64("book_id", ev.BookID).
					Msg("Event handler failed")
			}
		}()
	}
}

// Drain waits for in-flight handlers to finish. Called on shutdown so a
// clean stop does not lose side effects; a crash still can, which is an
// accepted weakness of the non-persisted bus.
func (b *Bus) Drain() {
	b.wg.Wait()
}
