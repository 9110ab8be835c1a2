package application

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimiter tracks the time of the last carrier call per call type
// ("single", "bulk") and refuses calls that would violate the carrier's
// documented minimum interval. It refuses, it does not queue or sleep; the
// operator retries. State is process-wide and resets on restart, which the
// carrier contract tolerates.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	now      func() time.Time
	last     map[string]time.Time
}

// NewRateLimiter builds a limiter; a nil clock means wall time.
func NewRateLimiter(interval time.Duration, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		interval: interval,
		now:      now,
		last:     make(map[string]time.Time),
	}
}

// Reserve claims a call slot of the given type or returns ErrRateLimited.
// A successful reservation counts as the call having happened.
func (l *RateLimiter) Reserve(callType string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.last[callType]; ok {
		if wait := l.interval - now.Sub(last); wait > 0 {
			return fmt.Errorf("%w: wait %s before the next %s call", ErrRateLimited, wait.Round(time.Second), callType)
		}
	}
	l.last[callType] = now
	return nil
}
