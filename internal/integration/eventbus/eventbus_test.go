package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

func receive(t *testing.T, ch <-chan entity.ChangeEvent) entity.ChangeEvent {
	t.Helper()
	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return entity.ChangeEvent{}
}

func exerciseBus(t *testing.T, bus adapter.EventBus) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alice, bob := uuid.New(), uuid.New()
	aliceEvents, err := bus.Subscribe(ctx, alice)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	bobEvents, err := bus.Subscribe(ctx, bob)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	billID := uuid.New()
	if err := bus.Publish(ctx, entity.NewChangeEvent(alice, entity.ChangeBillPaid, billID)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	got := receive(t, aliceEvents)
	if got.Type != entity.ChangeBillPaid || got.EntityID != billID || got.UserID != alice {
		t.Errorf("event = %+v", got)
	}

	select {
	case event := <-bobEvents:
		t.Fatalf("bob received alice's event %+v", event)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case _, ok := <-aliceEvents:
		if ok {
			t.Fatal("expected channel to close after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestMemoryBus(t *testing.T) {
	exerciseBus(t, NewMemoryBus())
}

func TestMemoryBusPublishWithoutSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	if err := bus.Publish(context.Background(), entity.NewChangeEvent(uuid.New(), entity.ChangeBillUpdated, uuid.New())); err != nil {
		t.Fatalf("publish: %v", err)
	}
}

func TestRedisBus(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	exerciseBus(t, NewRedisBus(client))
}
