package retry

import (
	"context"
	"time"
)

const (
	DefaultAttempts  = 3
	DefaultBaseDelay = time.Second
)

// Do runs fn until it succeeds or attempts are exhausted. After attempt k
// fails the executor waits baseDelay*k before the next try (linear backoff,
// no jitter, no error classification). The last error is returned once every
// attempt has failed. A cancelled context interrupts the backoff wait.
func Do[T any](ctx context.Context, attempts int, baseDelay time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if attempt == attempts {
			break
		}
		if err := sleepWithContext(ctx, baseDelay*time.Duration(attempt)); err != nil {
			return zero, err
		}
	}
	return zero, lastErr
}

// DoVoid is Do for operations with no result value.
func DoVoid(ctx context.Context, attempts int, baseDelay time.Duration, fn func(ctx context.Context) error) error {
	_, err := Do(ctx, attempts, baseDelay, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
