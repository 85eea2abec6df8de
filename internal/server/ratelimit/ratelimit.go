// Implements a thread-safe token bucket rate limiter keyed by client.

// Package ratelimit implements token bucket rate limiting for HTTP handlers.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Result contains the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Remaining  int           // requests left in the current window
	RetryAfter time.Duration // how long to wait before retrying (0 if allowed)
}

// Limiter manages rate limit buckets per key using the token bucket algorithm.
// Stale buckets are evicted in the background so one-off clients do not
// accumulate forever.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
	stop    chan struct{}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a limiter allowing perMinute requests per key with the
// given burst capacity. A perMinute of zero or less disables limiting: Allow
// always succeeds.
func NewLimiter(perMinute float64, burst int) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		rate:    rate.Limit(perMinute / 60),
		burst:   burst,
		stop:    make(chan struct{}),
	}
	if l.rate > 0 {
		go l.cleanupLoop()
	}
	return l
}

// Allow checks if a request with the given key is allowed.
func (l *Limiter) Allow(key string) Result {
	if l.rate <= 0 {
		return Result{Allowed: true}
	}

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = time.Now()
	l.mu.Unlock()

	if b.limiter.Allow() {
		return Result{Allowed: true, Remaining: max(int(b.limiter.Tokens()), 0)}
	}
	// Wait until at least one token is available.
	retry := max(time.Duration(float64(time.Second)/float64(l.rate)), time.Second)
	return Result{Allowed: false, RetryAfter: retry}
}

// Stop terminates the background cleanup goroutine.
func (l *Limiter) Stop() {
	close(l.stop)
}

// cleanupLoop removes buckets idle for more than ten minutes.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for key, b := range l.buckets {
				if now.Sub(b.lastSeen) > 10*time.Minute {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
