// Package resilience runs remote calls with a per-attempt timeout and
// bounded exponential retries, optionally behind a circuit breaker and a
// client-side rate limiter.
package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/suryansh-23/txguard/internal/config"
)

// DefaultTimeout bounds a single attempt.
const DefaultTimeout = config.DefaultSDKTimeoutMS * time.Millisecond

// Executor composes timeout and retry around remote operations. It keeps no
// per-call state, so one Executor may serve concurrent callers.
type Executor struct {
	policy  Policy
	timeout time.Duration
	logger  *zap.Logger
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	sleep   sleepFunc
}

// Option configures an Executor.
type Option func(*Executor)

func WithPolicy(p Policy) Option {
	return func(e *Executor) { e.policy = p }
}

// WithAttemptTimeout sets the timeout applied to each attempt.
func WithAttemptTimeout(d time.Duration) Option {
	return func(e *Executor) { e.timeout = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithBreaker trips after maxFailures consecutive failed attempts and stays
// open for openFor.
func WithBreaker(name string, maxFailures int, openFor time.Duration) Option {
	return func(e *Executor) {
		e.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: openFor,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(max(maxFailures, 1))
			},
			IsSuccessful: func(err error) bool {
				return err == nil || !IsRetryable(err)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				e.logger.Warn("circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		})
	}
}

// WithRateLimit waits for a token before every attempt.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(e *Executor) { e.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// WithSleep replaces the backoff sleep, for tests.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(e *Executor) {
		if sleep != nil {
			e.sleep = sleep
		}
	}
}

// New returns an executor with the default policy and timeout.
func New(opts ...Option) *Executor {
	e := &Executor{
		policy:  DefaultPolicy(),
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromConfig builds an executor from the remote section; opts are applied
// last.
func FromConfig(cfg config.Remote, logger *zap.Logger, opts ...Option) *Executor {
	base := []Option{
		WithLogger(logger),
		WithAttemptTimeout(time.Duration(cfg.TimeoutMS) * time.Millisecond),
		WithPolicy(Policy{
			MaxAttempts: cfg.MaxAttempts,
			BaseDelay:   time.Duration(cfg.BaseDelayMS) * time.Millisecond,
			Multiplier:  2,
		}),
	}
	if cfg.Breaker.Enabled {
		base = append(base, WithBreaker("remote", cfg.Breaker.MaxFailures, time.Duration(cfg.Breaker.OpenSeconds)*time.Second))
	}
	if cfg.RateLimit.Enabled {
		base = append(base, WithRateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst))
	}
	return New(append(base, opts...)...)
}

var std = New()

// ExecuteWithProtection runs fn through an executor with the default policy
// and a 30s timeout per attempt.
func ExecuteWithProtection[T any](ctx context.Context, label string, fn func(context.Context) (T, error)) (T, error) {
	return Call(ctx, std, label, fn)
}

// Policy returns the executor's retry policy.
func (e *Executor) Policy() Policy {
	return e.policy
}

// Do runs fn under protection, discarding any result.
func (e *Executor) Do(ctx context.Context, label string, fn func(context.Context) error) error {
	_, err := Call(ctx, e, label, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Call runs fn with a fresh timeout per attempt inside the retry loop.
func Call[T any](ctx context.Context, e *Executor, label string, fn func(context.Context) (T, error)) (T, error) {
	logger := e.logger.With(zap.String("call_id", uuid.NewString()))
	start := time.Now()
	v, err := retry(ctx, e.policy, e.sleep, logger, label, func(ctx context.Context, attempt int) (T, error) {
		logger.Debug("attempt", zap.String("op", label), zap.Int("attempt", attempt+1))
		return runAttempt(ctx, e, label, fn)
	})
	if err != nil {
		logger.Debug("call failed", zap.String("op", label), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return v, err
	}
	logger.Debug("call succeeded", zap.String("op", label), zap.Duration("elapsed", time.Since(start)))
	return v, nil
}

// runAttempt is one rate-limited, breaker-guarded, timed attempt.
func runAttempt[T any](ctx context.Context, e *Executor, label string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return zero, errors.Wrapf(err, "%s: rate limiter", label)
		}
	}
	if e.breaker == nil {
		return WithTimeout(ctx, e.timeout, label, fn)
	}
	out, err := e.breaker.Execute(func() (interface{}, error) {
		return WithTimeout(ctx, e.timeout, label, fn)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, errors.WithHint(fmt.Errorf("%s: %w", label, err),
				"the remote service failed repeatedly; wait for the breaker to close")
		}
		return zero, err
	}
	v, _ := out.(T)
	return v, nil
}
