package lock

import (
	"context"
	"sync"
	"time"

	"github.com/finance-tracker/wallet/internal/application/adapter"
)

// MemoryLocker is a single-process locker used when Redis is not configured.
type MemoryLocker struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	seq  uint64
	held map[string]held
}

type held struct {
	expiresAt time.Time
	seq       uint64
}

var _ adapter.Locker = (*MemoryLocker)(nil)

// NewMemoryLocker creates a locker whose locks expire after ttl if never released.
func NewMemoryLocker(ttl time.Duration) *MemoryLocker {
	return &MemoryLocker{
		ttl:  ttl,
		now:  time.Now,
		held: make(map[string]held),
	}
}

// TryLock acquires key without waiting.
func (l *MemoryLocker) TryLock(_ context.Context, key string) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if h, ok := l.held[key]; ok && now.Before(h.expiresAt) {
		return nil, false, nil
	}

	l.seq++
	seq := l.seq
	l.held[key] = held{expiresAt: now.Add(l.ttl), seq: seq}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if h, ok := l.held[key]; ok && h.seq == seq {
				delete(l.held, key)
			}
		})
	}, true, nil
}
