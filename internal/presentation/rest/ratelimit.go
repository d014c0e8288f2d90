package rest

import (
	"sync"
	"time"
)

// idleEviction is how long a client bucket may sit untouched before sweep
// removes it.
const idleEviction = 5 * time.Minute

// bucket tracks one client's remaining tokens.
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// ClientRateLimiter implements a per-client token bucket. Each client
// identity gets capacity tokens that refill at capacity per window; excess
// requests are rejected immediately, never queued.
type ClientRateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	capacity  float64
	refillPer time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewClientRateLimiter allows limit requests per window for each client.
func NewClientRateLimiter(limit int, window time.Duration) *ClientRateLimiter {
	return &ClientRateLimiter{
		buckets:   make(map[string]*bucket),
		capacity:  float64(limit),
		refillPer: window,
		now:       time.Now,
	}
}

// Allow reports whether one request from client is permitted, consuming a
// token if so.
func (rl *ClientRateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	b, ok := rl.buckets[client]
	if !ok {
		b = &bucket{tokens: rl.capacity}
		rl.buckets[client] = b
	} else {
		elapsed := now.Sub(b.lastSeen).Seconds()
		b.tokens += elapsed * rl.capacity / rl.refillPer.Seconds()
		if b.tokens > rl.capacity {
			b.tokens = rl.capacity
		}
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// sweep drops buckets idle for longer than idleEviction. Called under mu.
func (rl *ClientRateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < idleEviction {
		return
	}
	rl.lastSweep = now
	for client, b := range rl.buckets {
		if now.Sub(b.lastSeen) > idleEviction {
			delete(rl.buckets, client)
		}
	}
}
