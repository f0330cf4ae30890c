// Package ratelimit counts requests per client over a sliding window.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the result of one Allow call.
type Decision struct {
	Allowed bool
	// RetryAfter is how long until the oldest request leaves the window.
	// It is zero when Allowed is true.
	RetryAfter time.Duration
}

// Store records requests for a key and decides whether one more fits within
// limit requests per window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error)
}
