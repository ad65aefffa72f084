package ogengine

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by Bounded when the deadline fires before the call
// completes.
var ErrTimeout = errors.New("ogengine: call timed out")

// Bounded runs fn with a deadline of timeout. If fn fails or does not return
// in time, fallback is returned together with the error. A late result is
// dropped; fn receives a context that is cancelled when Bounded returns.
func Bounded[T any](ctx context.Context, timeout time.Duration, fallback T, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		val T
		err error
	}
	// Buffered so an abandoned call can still send and exit.
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{val: v, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			if errors.Is(r.err, context.DeadlineExceeded) && ctx.Err() != nil {
				return fallback, ErrTimeout
			}
			return fallback, r.err
		}
		return r.val, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fallback, ErrTimeout
		}
		return fallback, ctx.Err()
	}
}
