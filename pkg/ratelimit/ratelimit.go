// Package ratelimit implements a fixed-window request limiter with
// in-memory and Redis stores.
package ratelimit

import (
	"context"
	"time"
)

// Store counts hits per key within a window.
type Store interface {
	// Incr records one hit and returns the count in the current window and
	// the time until the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetIn time.Duration, err error)
	// Name identifies the store in logs and metrics.
	Name() string
}

// Result is the outcome of one Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// Limiter allows at most Limit hits per key per window.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

func New(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window}
}

// Store returns the backing store.
func (l *Limiter) Store() Store { return l.store }

// Allow records a hit for key.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	count, resetIn, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return Result{}, err
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= int64(l.limit),
		Limit:     l.limit,
		Remaining: remaining,
		ResetIn:   resetIn,
	}, nil
}
