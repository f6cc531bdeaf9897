// Package validate parses untrusted amounts, time points, durations,
// addresses and identifiers into normalized values.
//
// Every parser checks the raw input length before doing anything else, so
// the cost of rejecting oversized input is bounded by the limit, not by the
// input. Parsers never retry, block, or call out to the remote service.
package validate

import (
	"math/big"
	"time"
	"unicode/utf8"

	"github.com/suryansh-23/txguard/internal/config"
)

// Validator holds per-field limits and injected capabilities. The zero value
// is not usable; build one with New or FromConfig.
type Validator struct {
	limits        config.Limits
	minAmount     *big.Int
	now           func() time.Time
	addresses     AddressValidator
	requireFuture bool
	maxHorizon    time.Duration
}

// Option configures a Validator.
type Option func(*Validator)

// WithLimits overrides the per-field length limits.
func WithLimits(limits config.Limits) Option {
	return func(v *Validator) { v.limits = limits }
}

// WithMinAmount sets the smallest accepted amount in minimal units.
func WithMinAmount(units int64) Option {
	return func(v *Validator) { v.minAmount = big.NewInt(units) }
}

// WithClock injects the clock used for relative time points.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// WithAddressValidator replaces the address format capability.
func WithAddressValidator(av AddressValidator) Option {
	return func(v *Validator) {
		if av != nil {
			v.addresses = av
		}
	}
}

// WithDeadlinePolicy enables the optional deadline checks used by
// ParseEscrowTerms. A zero horizon disables the horizon check.
func WithDeadlinePolicy(requireFuture bool, maxHorizon time.Duration) Option {
	return func(v *Validator) {
		v.requireFuture = requireFuture
		v.maxHorizon = maxHorizon
	}
}

// New returns a validator with default limits, the protocol minimum amount,
// the wall clock and EVM address validation.
func New(opts ...Option) *Validator {
	v := &Validator{
		limits: config.Limits{
			Amount:    config.DefaultAmountMaxLength,
			TimePoint: config.DefaultTimePointMaxLength,
			Duration:  config.DefaultDurationMaxLength,
			Address:   config.DefaultAddressMaxLength,
			OpaqueID:  config.DefaultOpaqueIDMaxLength,
		},
		minAmount: big.NewInt(config.DefaultMinAmountUnits),
		now:       time.Now,
		addresses: NewEVMAddressValidator(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// FromConfig builds a validator from configuration; opts are applied last.
func FromConfig(cfg config.Config, opts ...Option) *Validator {
	base := []Option{
		WithLimits(cfg.Limits),
		WithMinAmount(cfg.Amount.MinUnits),
		WithDeadlinePolicy(cfg.Deadline.RequireFuture, time.Duration(cfg.Deadline.MaxHorizonHours)*time.Hour),
	}
	return New(append(base, opts...)...)
}

// checkLength rejects input longer than max characters.
func checkLength(field, input string, max int) error {
	if len(input) <= max {
		return nil
	}
	if n := utf8.RuneCountInString(input); n > max {
		return tooLong(field, n, max)
	}
	return nil
}

var std = New()

// ParseAmount parses with the default validator.
func ParseAmount(input string) (*big.Int, error) { return std.ParseAmount(input) }

// ParseTimePoint parses with the default validator.
func ParseTimePoint(input string) (int64, error) { return std.ParseTimePoint(input) }

// ParseDuration parses with the default validator.
func ParseDuration(input string) (int64, error) { return std.ParseDuration(input) }

// ParseAddress parses with the default validator.
func ParseAddress(input, field string) (string, error) { return std.ParseAddress(input, field) }

// ParseOpaqueID parses with the default validator.
func ParseOpaqueID(input string) (string, error) { return std.ParseOpaqueID(input) }
