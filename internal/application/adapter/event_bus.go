// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// EventPublisher announces committed changes.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.ChangeEvent) error
}

// EventBus fans change events out to the subscribers of the event's user.
type EventBus interface {
	EventPublisher

	// Subscribe returns the user's events until ctx is done, then closes the channel.
	Subscribe(ctx context.Context, userID uuid.UUID) (<-chan entity.ChangeEvent, error)
}
