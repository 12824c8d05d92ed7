package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/wallet/internal/application/adapter"
)

func newRedisLocker(t *testing.T, ttl time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLocker(client, ttl), mr
}

func exerciseLocker(t *testing.T, locker adapter.Locker) {
	t.Helper()
	ctx := context.Background()

	release, ok, err := locker.TryLock(ctx, "bill:1")
	if err != nil || !ok {
		t.Fatalf("first TryLock = %v, %v; want acquired", ok, err)
	}

	if _, ok, _ := locker.TryLock(ctx, "bill:1"); ok {
		t.Fatal("second TryLock acquired a held lock")
	}
	if r, ok, _ := locker.TryLock(ctx, "bill:2"); !ok {
		t.Fatal("other key should be free")
	} else {
		r()
	}

	release()
	release2, ok, err := locker.TryLock(ctx, "bill:1")
	if err != nil || !ok {
		t.Fatalf("TryLock after release = %v, %v; want acquired", ok, err)
	}
	release2()
}

func TestRedisLocker(t *testing.T) {
	locker, _ := newRedisLocker(t, time.Minute)
	exerciseLocker(t, locker)
}

func TestRedisLockerExpiredLockIsNotReleasedByOldOwner(t *testing.T) {
	ctx := context.Background()
	locker, mr := newRedisLocker(t, time.Second)

	staleRelease, ok, _ := locker.TryLock(ctx, "bill:1")
	if !ok {
		t.Fatal("expected lock")
	}
	mr.FastForward(2 * time.Second)

	_, ok, _ = locker.TryLock(ctx, "bill:1")
	if !ok {
		t.Fatal("expired lock should be acquirable")
	}

	staleRelease()
	if _, ok, _ := locker.TryLock(ctx, "bill:1"); ok {
		t.Fatal("stale owner released the new owner's lock")
	}
}

func TestRedisLockerUnavailable(t *testing.T) {
	locker, mr := newRedisLocker(t, time.Minute)
	mr.Close()

	if _, _, err := locker.TryLock(context.Background(), "bill:1"); err == nil {
		t.Fatal("expected an error when redis is down")
	}
}

func TestMemoryLocker(t *testing.T) {
	exerciseLocker(t, NewMemoryLocker(time.Minute))
}

func TestMemoryLockerExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.April, 15, 12, 0, 0, 0, time.UTC)
	locker := NewMemoryLocker(time.Second)
	locker.now = func() time.Time { return now }

	staleRelease, _, _ := locker.TryLock(ctx, "bill:1")
	now = now.Add(2 * time.Second)

	if _, ok, _ := locker.TryLock(ctx, "bill:1"); !ok {
		t.Fatal("expired lock should be acquirable")
	}
	staleRelease()
	if _, ok, _ := locker.TryLock(ctx, "bill:1"); ok {
		t.Fatal("stale owner released the new owner's lock")
	}
}
