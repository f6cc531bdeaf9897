package resilience

import (
	"context"
	"time"
)

// WithTimeout runs op and returns its result, or a *TimeoutError naming
// label if timeout elapses first. op receives a context cancelled on
// return; a result it produces after the timer fires is discarded.
func WithTimeout[T any](ctx context.Context, timeout time.Duration, label string, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if timeout <= 0 {
		return op(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := op(attemptCtx)
		done <- result{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-attemptCtx.Done():
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return zero, &TimeoutError{Label: label, Timeout: timeout}
	}
}
