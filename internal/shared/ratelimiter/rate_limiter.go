// Package ratelimiter throttles requests per client key.
package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// defaultMaxIdle is how long an unused key keeps its limiter.
const defaultMaxIdle = 10 * time.Minute

// RateLimiter keeps one token bucket per key and forgets keys that stay idle.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	maxIdle time.Duration
	now     func() time.Time

	mu    sync.Mutex
	store map[string]*entry
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter allowing rps requests per second with the given burst per key.
// Non-positive values fall back to 5 rps and a burst of 10.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		maxIdle: defaultMaxIdle,
		now:     time.Now,
		store:   make(map[string]*entry),
	}
}

// Allow reports whether one more request for key fits in its bucket.
func (r *RateLimiter) Allow(key string) bool {
	return r.get(key).AllowN(r.now(), 1)
}

func (r *RateLimiter) get(key string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.store[key]; ok {
		e.lastSeen = now
		return e.limiter
	}

	for k, e := range r.store {
		if now.Sub(e.lastSeen) > r.maxIdle {
			delete(r.store, k)
		}
	}

	lim := rate.NewLimiter(r.limit, r.burst)
	r.store[key] = &entry{limiter: lim, lastSeen: now}
	return lim
}

// size returns the number of tracked keys.
func (r *RateLimiter) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.store)
}

// PerIP returns a Gin middleware that answers 429 once a client IP exceeds its bucket.
func (r *RateLimiter) PerIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
