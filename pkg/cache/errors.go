package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss reports a key with no usable entry.
	ErrCacheMiss = errors.New("cache miss")

	// ErrUnavailable means the backend could not be reached. Backends wrap
	// it Retryable when a later attempt could plausibly succeed.
	ErrUnavailable = errors.New("cache backend unavailable")
)

// Retry policy for transient backend failures. Delays double per attempt.
const (
	retryAttempts = 3
	retryBase     = time.Second
)

// RetryableError marks an error as transient. Only errors carrying this
// wrapper cause [RetryWithBackoff] to try again; everything else fails
// immediately.
type RetryableError struct{ Err error }

// Retryable wraps err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is marked transient anywhere in its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn, retrying transient failures with exponential
// backoff until the attempts are exhausted or ctx is done. The serve
// startup path uses it so a Redis that is still coming up does not kill
// the process.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryBase
	var lastErr error

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err
		if attempt == retryAttempts {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}
