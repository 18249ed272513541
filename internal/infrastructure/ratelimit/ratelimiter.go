package ratelimit

import (
	"context"
	"time"
)

// Rule is one sliding window: at most Limit hits per Window.
type Rule struct {
	Limit  int
	Window time.Duration
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, rule Rule) (Decision, error)
	Reset(ctx context.Context, key string) error
}
