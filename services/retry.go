package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"market-scout/observability"
)

// RetryConfig controls the exponential backoff applied to transient upstream
// failures
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryConfig suits the short interactive HTTP calls this app makes:
// quick first retry, capped so a dead upstream never stalls the menu for long
var DefaultRetryConfig = RetryConfig{
	MaxRetries:     3,
	InitialBackoff: 100 * time.Millisecond,
	MaxBackoff:     5 * time.Second,
}

// permanentError marks a failure that retrying cannot fix, such as an
// unknown ticker symbol
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so WithRetry stops immediately and returns it plain
func Permanent(err error) error {
	return &permanentError{err: err}
}

// WithRetry runs fn with exponential backoff between attempts. The operation
// string tags the retry log lines. A Permanent error or a cancelled context
// ends the loop early.
func WithRetry(ctx context.Context, operation string, config RetryConfig, fn func() error) error {
	backoff := config.InitialBackoff
	var lastErr error

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled during retry: %w", ctx.Err())
			case <-time.After(backoff):
			}

			backoff *= 2
			if backoff > config.MaxBackoff {
				backoff = config.MaxBackoff
			}
		}

		err := fn()
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}

		lastErr = err
		if attempt < config.MaxRetries {
			observability.Warn("retry attempt failed",
				"operation", operation,
				"attempt", attempt+1,
				"max_retries", config.MaxRetries,
				"error", err)
		}
	}

	return fmt.Errorf("%s failed after %d retries: %w", operation, config.MaxRetries, lastErr)
}
