package resilience

import (
	"context"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/suryansh-23/txguard/internal/config"
)

// Policy is a stateless retry schedule: attempt n (0-based) that fails with
// a transient error is followed by a wait of BaseDelay * Multiplier^n.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// DefaultPolicy returns 3 attempts with 1s then 2s waits.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: config.DefaultMaxRetryAttempts,
		BaseDelay:   config.DefaultRetryBaseDelayMS * time.Millisecond,
		Multiplier:  2,
	}
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Delays returns the waits between attempts, one fewer than MaxAttempts.
func (p Policy) Delays() []time.Duration {
	n := p.attempts() - 1
	if n == 0 {
		return nil
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.RandomizationFactor = 0
	b.Multiplier = p.Multiplier
	if b.Multiplier < 1 {
		b.Multiplier = 2
	}
	b.MaxInterval = time.Duration(math.MaxInt64)
	b.MaxElapsedTime = 0
	b.Reset()

	delays := make([]time.Duration, 0, n)
	for i := 0; i < n; i++ {
		delays = append(delays, b.NextBackOff())
	}
	return delays
}

type sleepFunc func(context.Context, time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WithRetry calls fn until it succeeds, fails with a non-retryable error,
// or maxAttempts is reached, waiting baseDelay * 2^n after failure n.
func WithRetry[T any](ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func(context.Context) (T, error)) (T, error) {
	policy := Policy{MaxAttempts: maxAttempts, BaseDelay: baseDelay, Multiplier: 2}
	return retry(ctx, policy, sleepContext, zap.NewNop(), "operation", func(ctx context.Context, _ int) (T, error) {
		return fn(ctx)
	})
}

// retry runs the attempt loop. Fatal errors are returned unchanged; the last
// transient error is wrapped in a RetriesExhaustedError.
func retry[T any](ctx context.Context, p Policy, sleep sleepFunc, logger *zap.Logger, label string, fn func(context.Context, int) (T, error)) (T, error) {
	var zero T
	delays := p.Delays()
	attempts := p.attempts()
	for attempt := 0; ; attempt++ {
		v, err := fn(ctx, attempt)
		if err == nil {
			return v, nil
		}
		if !IsRetryable(err) {
			return zero, err
		}
		if attempt+1 >= attempts {
			logger.Warn("retries exhausted",
				zap.String("op", label),
				zap.Int("attempts", attempts),
				zap.Error(err))
			return zero, &RetriesExhaustedError{Label: label, Attempts: attempts, Err: err}
		}
		delay := delays[attempt]
		logger.Info("transient failure, retrying",
			zap.String("op", label),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err))
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}
