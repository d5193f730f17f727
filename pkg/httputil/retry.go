package httputil

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAttemptsExhausted is returned by [Retry] when every attempt failed with a
// retryable error. The last error is wrapped alongside it.
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap rate-limit responses with this type so that [Retry] knows to attempt
// the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default [SleepFunc]. It returns ctx.Err() when ctx ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Policy configures [Retry].
//
// Attempts counts the first call, so Attempts=5 allows four retries.
// Delay is fixed; it does not grow between attempts.
type Policy struct {
	Attempts int
	Delay    time.Duration

	// Sleep replaces the real wait. Tests pass a no-op to simulate rate
	// limiting without delays. Nil means [Sleep].
	Sleep SleepFunc

	// OnRetry is called before each wait with the attempt that just failed
	// (1-based) and the error it returned.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DefaultPolicy waits a fixed minute between attempts, up to five attempts.
func DefaultPolicy() Policy {
	return Policy{Attempts: 5, Delay: time.Minute}
}

// Retry calls fn until it succeeds, returns a non-retryable error, or the
// policy runs out of attempts. Only errors wrapped with [RetryableError] are
// retried. fn receives the 1-based attempt number.
func Retry(ctx context.Context, p Policy, fn func(attempt int) error) error {
	attempts := max(p.Attempts, 1)
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, p.Delay, err)
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, attempts, lastErr)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
