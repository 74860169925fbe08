package middleware

import (
	"sync"
	"time"

	"navprep/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// RateLimiter is an advisory per-client limiter over one-minute buckets.
// Counters live in memory only and reset on restart, which is acceptable
// for a courtesy limit. Safe for concurrent use.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	windowStart time.Time
	count       int
}

// NewRateLimiter creates a limiter allowing limit requests per client per
// minute. A non-positive limit defaults to 10.
func NewRateLimiter(limit int) *RateLimiter {
	if limit <= 0 {
		limit = 10
	}
	return &RateLimiter{
		limit:   limit,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow records a call for the client and reports whether it is within the
// limit for the current minute bucket. Stale buckets are purged
// opportunistically on each call.
func (r *RateLimiter) Allow(clientKey string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.purge(now)

	b, ok := r.buckets[clientKey]
	if !ok || now.Sub(b.windowStart) >= time.Minute {
		r.buckets[clientKey] = &bucket{windowStart: now, count: 1}
		return true
	}
	b.count++
	return b.count <= r.limit
}

func (r *RateLimiter) purge(now time.Time) {
	for key, b := range r.buckets {
		if now.Sub(b.windowStart) >= time.Minute {
			delete(r.buckets, key)
		}
	}
}

// RetryAfterSeconds reports how long the client should wait before the
// current bucket rolls over.
func (r *RateLimiter) RetryAfterSeconds(clientKey string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.buckets[clientKey]
	if !ok {
		return 0
	}
	remaining := time.Minute - r.now().Sub(b.windowStart)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

// RateLimit is the fiber middleware wrapping the limiter, keyed by client IP.
func RateLimit(limiter *RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP()
		if !limiter.Allow(key) {
			return domain.NewRateLimitedError(limiter.RetryAfterSeconds(key))
		}
		return c.Next()
	}
}
