// Package retry wraps cenkalti/backoff with the two policies used here:
// a patient exponential one for startup dependencies and a short fixed one
// for idempotent API calls.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	initInitialInterval = 250 * time.Millisecond
	initMaxInterval     = 2 * time.Second
	initMaxElapsed      = 20 * time.Second

	fastAttempts = 3
	fastDelay    = 200 * time.Millisecond
)

// Permanent marks err as not worth retrying. Nil stays nil.
func Permanent(err error) error {
	if err == nil || IsPermanent(err) {
		return err
	}
	return backoff.Permanent(err)
}

func IsPermanent(err error) bool {
	var pe *backoff.PermanentError
	return errors.As(err, &pe)
}

// Unwrap strips the Permanent marker.
func Unwrap(err error) error {
	var pe *backoff.PermanentError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err
	}
	return err
}

// RetryInit retries fn with jittered exponential backoff until it succeeds,
// returns a permanent error, ctx ends or 20s have passed. Meant for
// connecting to dependencies such as Redis.
func RetryInit(ctx context.Context, fn func() error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = initInitialInterval
	exp.MaxInterval = initMaxInterval

	return run(ctx, fn, backoff.WithBackOff(exp), backoff.WithMaxElapsedTime(initMaxElapsed))
}

// RetryFast makes up to 3 attempts 200ms apart.
func RetryFast(ctx context.Context, fn func() error) error {
	return Fixed(ctx, fastAttempts, fastDelay, fn)
}

// Fixed makes up to attempts calls of fn with a constant delay between them.
// At least one attempt is made.
func Fixed(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	return run(ctx, fn,
		backoff.WithBackOff(backoff.NewConstantBackOff(delay)),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithMaxElapsedTime(0),
	)
}

func run(ctx context.Context, fn func() error, opts ...backoff.RetryOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, fn()
	}, opts...)
	// backoff returns a permanent error still wrapped when it hits on the last try.
	return Unwrap(err)
}
