// Package logging builds zap loggers whose output passes through the
// redactor before it is encoded.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suryansh-23/txguard/internal/config"
	"github.com/suryansh-23/txguard/internal/redact"
)

// RedactFunc rewrites text before it reaches a log sink.
type RedactFunc func(string) string

type options struct {
	out    zapcore.WriteSyncer
	redact RedactFunc
	debug  bool
}

// Option configures New.
type Option func(*options)

// WithOutput sends log lines to ws instead of stderr.
func WithOutput(ws zapcore.WriteSyncer) Option {
	return func(o *options) { o.out = ws }
}

// WithRedactor replaces redact.Text.
func WithRedactor(fn RedactFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.redact = fn
		}
	}
}

// WithDebug forces the debug level.
func WithDebug(enabled bool) Option {
	return func(o *options) { o.debug = enabled }
}

// New returns a logger for cfg. Every message and every string, byte
// string, stringer and error field is redacted.
func New(cfg config.Logging, opts ...Option) (*zap.Logger, error) {
	o := options{
		out:    zapcore.Lock(os.Stderr),
		redact: redact.Text,
	}
	for _, opt := range opts {
		opt(&o)
	}

	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return nil, fmt.Errorf("logging level: %w", err)
	}
	if o.debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console", "":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("logging format %q: want console or json", cfg.Format)
	}

	core := zapcore.NewCore(enc, o.out, zap.NewAtomicLevelAt(level))
	return zap.New(WrapCore(core, o.redact), zap.ErrorOutput(o.out)), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
