// Package guard wires the redactor, the executor and the result cache
// around calls to the remote service. Inputs are expected to be validated
// before a call reaches the guard.
package guard

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/suryansh-23/txguard/internal/cache"
	"github.com/suryansh-23/txguard/internal/config"
	"github.com/suryansh-23/txguard/internal/redact"
	"github.com/suryansh-23/txguard/internal/resilience"
)

// Guard runs remote operations so that no unredacted error escapes.
type Guard struct {
	exec     *resilience.Executor
	redactor *redact.Redactor
	logger   *zap.Logger
	results  *cache.Cache[any]
}

// Option configures a Guard.
type Option func(*Guard)

func WithRedactor(r *redact.Redactor) Option {
	return func(g *Guard) {
		if r != nil {
			g.redactor = r
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithCache enables result caching for calls made with a non-empty key.
func WithCache(maxEntries int, ttl time.Duration) Option {
	return func(g *Guard) { g.results = cache.New[any](maxEntries, ttl) }
}

// New returns a guard around exec. A nil exec uses resilience defaults.
func New(exec *resilience.Executor, opts ...Option) *Guard {
	if exec == nil {
		exec = resilience.New()
	}
	g := &Guard{
		exec:     exec,
		redactor: redact.New(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FromConfig builds the redactor, executor and cache described by cfg.
func FromConfig(cfg config.Config, logger *zap.Logger) (*Guard, error) {
	r, err := redact.FromConfig(cfg.Redaction)
	if err != nil {
		return nil, fmt.Errorf("build redactor: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []Option{WithRedactor(r), WithLogger(logger)}
	if cfg.Cache.Enabled {
		opts = append(opts, WithCache(cfg.Cache.MaxEntries, time.Duration(cfg.Cache.TTLSeconds)*time.Second))
	}
	return New(resilience.FromConfig(cfg.Remote, logger), opts...), nil
}

// Redactor returns the guard's redactor.
func (g *Guard) Redactor() *redact.Redactor {
	return g.redactor
}

// Policy returns the retry policy of the underlying executor.
func (g *Guard) Policy() resilience.Policy {
	return g.exec.Policy()
}

// Do runs fn with protection and returns a redacted error.
func (g *Guard) Do(ctx context.Context, label string, fn func(context.Context) error) error {
	_, err := Call(ctx, g, label, "", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Call runs fn with timeout and retry. With a non-empty key and caching
// enabled, a fresh cached result is returned without calling fn, and a
// successful result is stored. Any returned error has a redacted message.
func Call[T any](ctx context.Context, g *Guard, label, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if key != "" {
		if cached, ok := g.results.Get(key); ok {
			if v, ok := cached.(T); ok {
				g.logger.Debug("cache hit", zap.String("op", label))
				return v, nil
			}
		}
	}

	v, err := resilience.Call(ctx, g.exec, label, fn)
	if err != nil {
		err = g.redactor.Error(err)
		g.logger.Warn("remote call failed", zap.String("op", label), zap.Error(err))
		return zero, err
	}
	if key != "" {
		g.results.Put(key, v)
	}
	return v, nil
}

// Invalidate drops a cached result, typically after a write that changes it.
func (g *Guard) Invalidate(key string) {
	g.results.Delete(key)
}
