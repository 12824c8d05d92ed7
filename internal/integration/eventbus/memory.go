// Package eventbus delivers change events to a user's open views.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// subscriberBuffer is how many undelivered events a slow subscriber may hold before
// new events for it are dropped.
const subscriberBuffer = 32

// MemoryBus fans events out to subscribers of the same process.
type MemoryBus struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan entity.ChangeEvent]struct{}
}

var _ adapter.EventBus = (*MemoryBus)(nil)

// NewMemoryBus creates an empty in-process bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[uuid.UUID]map[chan entity.ChangeEvent]struct{})}
}

// Publish delivers the event to every current subscriber of its user. It never blocks.
func (b *MemoryBus) Publish(_ context.Context, event entity.ChangeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[event.UserID] {
		select {
		case ch <- event:
		default:
			slog.Warn("Dropping change event for slow subscriber", "user_id", event.UserID, "event_type", event.Type)
		}
	}
	return nil
}

// Subscribe returns a channel of the user's events, closed when ctx is done.
func (b *MemoryBus) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan entity.ChangeEvent, error) {
	ch := make(chan entity.ChangeEvent, subscriberBuffer)

	b.mu.Lock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[chan entity.ChangeEvent]struct{})
	}
	b.subs[userID][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs[userID], ch)
		if len(b.subs[userID]) == 0 {
			delete(b.subs, userID)
		}
		b.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}
