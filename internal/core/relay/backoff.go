// Package relay contains the pure retry policy for outbound chat delivery.
// The bridge adapters interpret the schedule; nothing here performs I/O.
package relay

import (
	"math/rand/v2"
	"time"
)

// Policy bounds the retry behavior for one outbound delivery.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultPolicy matches the shipped configuration defaults.
var DefaultPolicy = Policy{
	MaxAttempts: 4,
	BaseDelay:   500 * time.Millisecond,
	MaxDelay:    8 * time.Second,
}

// Delay returns the wait before the given retry attempt (1-based; attempt 1
// is the first retry after the initial failure). The delay doubles each
// attempt, is capped at MaxDelay, and carries ±25% jitter. The top-level
// rand functions are safe for concurrent relay loops.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := p.BaseDelay << (attempt - 1)
	if d > p.MaxDelay || d <= 0 {
		d = p.MaxDelay
	}
	// jitter in [-25%, +25%]
	jitter := time.Duration(rand.Int64N(int64(d)/2+1)) - d/4
	return d + jitter
}

// ShouldRetry reports whether another attempt is allowed after the given
// number of completed attempts.
func (p Policy) ShouldRetry(attempts int) bool {
	return attempts < p.MaxAttempts
}
