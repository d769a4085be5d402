// Package dbretry wraps store operations in a retry-with-exponential-backoff
// policy. The policy lives at the unit-of-work boundary: callers hand in a
// closure that acquires its own unit of work, so every attempt runs on a
// fresh transaction.
package dbretry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

type Policy struct {
	MaxAttempts  uint
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
}

// DefaultPolicy mirrors the store retry defaults: 3 attempts, 2s initial
// delay, doubling, capped at 10s between attempts.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 2 * time.Second,
		Multiplier:   2,
		MaxDelay:     10 * time.Second,
	}
}

// Do runs op until it succeeds or the policy's attempts are exhausted, then
// returns the final error. Context cancellation stops the wait between
// attempts.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialDelay
	b.Multiplier = p.Multiplier
	b.MaxInterval = p.MaxDelay

	return backoff.Retry(ctx,
		func() (T, error) { return op(ctx) },
		backoff.WithBackOff(b),
		backoff.WithMaxTries(p.MaxAttempts),
	)
}
