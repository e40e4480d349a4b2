package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a transient backend failure, such as a Redis server
// that is still starting.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is wrapped with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff retries an operation with exponentially growing pauses.
type Backoff struct {
	Attempts int           // total calls, at least 1
	Delay    time.Duration // pause after the first failure, doubled after each
}

// DefaultBackoff is what NewRedisCache uses while waiting for the server.
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Do calls fn until it succeeds, returns an error not marked Retryable, or
// the attempts run out. The final error keeps its Retryable wrapper, and
// errors.Is still matches the cause.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
