// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute

	redisRateKeyPrefix = "wallet:ratelimit:"
)

// RateLimitStore counts hits per key inside a fixed window.
type RateLimitStore interface {
	// Hit records one attempt and returns the number of attempts in the current window.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter provides IP-based rate limiting functionality.
type RateLimiter struct {
	store       RateLimitStore
	maxAttempts int64
	window      time.Duration
	enabled     bool
}

// NewRateLimiter creates an in-process rate limiter.
// Non-positive values fall back to 5 attempts per minute.
func NewRateLimiter(maxAttempts int, window time.Duration) *RateLimiter {
	return newRateLimiter(newMemoryRateStore(), maxAttempts, window)
}

// NewRedisRateLimiter creates a rate limiter whose counters are shared through Redis.
func NewRedisRateLimiter(client *redis.Client, maxAttempts int, window time.Duration) *RateLimiter {
	return newRateLimiter(&redisRateStore{client: client}, maxAttempts, window)
}

func newRateLimiter(store RateLimitStore, maxAttempts int, window time.Duration) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindowDuration
	}
	return &RateLimiter{
		store:       store,
		maxAttempts: int64(maxAttempts),
		window:      window,
		enabled:     true,
	}
}

// Disable turns the limiter into a pass-through.
func (rl *RateLimiter) Disable() *RateLimiter {
	rl.enabled = false
	return rl
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled {
			c.Next()
			return
		}

		// Get client IP
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		count, err := rl.store.Hit(c.Request.Context(), c.FullPath()+"|"+clientIP, rl.window)
		if err != nil {
			// Fail open
			slog.Warn("Rate limit store unavailable", "error", err)
			c.Next()
			return
		}

		if count > rl.maxAttempts {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int64
	resetTime time.Time
}

// memoryRateStore keeps counters in process memory.
type memoryRateStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

func newMemoryRateStore() *memoryRateStore {
	return &memoryRateStore{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

func (s *memoryRateStore) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)

	entry, exists := s.entries[key]
	if !exists {
		s.entries[key] = &rateLimitEntry{attempts: 1, resetTime: now.Add(window)}
		return 1, nil
	}
	entry.attempts++
	return entry.attempts, nil
}

func (s *memoryRateStore) evictExpired(now time.Time) {
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}

// redisRateStore keeps counters in Redis with INCR and a window expiry.
type redisRateStore struct {
	client *redis.Client
}

func (s *redisRateStore) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	key = redisRateKeyPrefix + key

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	// The first hit opens the window
	if count == 1 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}
