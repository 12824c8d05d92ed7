package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

const channelPrefix = "wallet:events:"

// RedisBus fans events out through Redis pub/sub so every API instance sees them.
type RedisBus struct {
	client *redis.Client
}

var _ adapter.EventBus = (*RedisBus)(nil)

// NewRedisBus creates a bus on top of client.
func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

// wireEvent is the JSON published on the user's channel.
type wireEvent struct {
	ID         uuid.UUID              `json:"id"`
	UserID     uuid.UUID              `json:"user_id"`
	Type       entity.ChangeEventType `json:"type"`
	EntityID   uuid.UUID              `json:"entity_id"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func channel(userID uuid.UUID) string {
	return channelPrefix + userID.String()
}

// Publish sends the event to the user's channel.
func (b *RedisBus) Publish(ctx context.Context, event entity.ChangeEvent) error {
	payload, err := json.Marshal(wireEvent(event))
	if err != nil {
		return fmt.Errorf("encode change event: %w", err)
	}
	if err := b.client.Publish(ctx, channel(event.UserID), payload).Err(); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}

// Subscribe listens on the user's channel until ctx is done.
// It returns once the subscription is confirmed by Redis.
func (b *RedisBus) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan entity.ChangeEvent, error) {
	pubsub := b.client.Subscribe(ctx, channel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe change events: %w", err)
	}

	out := make(chan entity.ChangeEvent, subscriberBuffer)
	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event wireEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					slog.Warn("Discarding malformed change event", "channel", msg.Channel, "error", err)
					continue
				}
				select {
				case out <- entity.ChangeEvent(event):
				default:
					slog.Warn("Dropping change event for slow subscriber", "user_id", userID, "event_type", event.Type)
				}
			}
		}
	}()

	return out, nil
}
