package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for cache operations.
var (
	// ErrNotFound is returned when a requested entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when a backend cannot be reached
	// (connection errors, timeouts). Redis failures wrap this.
	ErrUnavailable = errors.New("cache unavailable")

	// ErrCacheMiss is returned when an entry is absent from the cache.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks an error as transient: RetryWithBackoff retries
// only errors carrying this wrapper.
type RetryableError struct{ Err error }

// Retryable wraps err as retryable. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in
// its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryAttempts bounds RetryWithBackoff; the delay doubles each attempt
// starting from one second.
const retryAttempts = 3

// RetryWithBackoff runs fn, retrying transient failures with exponential
// backoff. Non-retryable errors return immediately, as does context
// cancellation while waiting.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := time.Second
	var lastErr error

	for i := 0; i < retryAttempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err

		if i < retryAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
