package retry

import (
	"context"
	"fmt"
)

// Do runs fn, retrying according to the Retrier found in ctx (or not at all
// if none is set — see FromContextOrNoop). Each failure is offered to the
// retrier's ShouldRetry before Wait is called. A failure ShouldRetry declines
// is returned as is; once MaxAttempts is reached the last failure is wrapped
// with that count.
func Do[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	retrier := FromContextOrNoop(ctx)

	var zero T
	var lastErr error
	for attempt := 1; ; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, fmt.Errorf("context cancelled after attempt %d: %w", attempt, ctx.Err())
		}
		if !retrier.ShouldRetry(err, attempt) {
			return zero, err
		}

		maxAttempts := retrier.MaxAttempts()
		if maxAttempts > 0 && attempt >= maxAttempts {
			return zero, fmt.Errorf("max retry attempts (%d) reached: %w", maxAttempts, lastErr)
		}

		if waitErr := retrier.Wait(ctx, attempt); waitErr != nil {
			return zero, fmt.Errorf("context cancelled during wait: %w", waitErr)
		}
	}
}

// DoVoid is Do for functions with no result value.
func DoVoid(ctx context.Context, fn func() error) error {
	_, err := Do(ctx, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
