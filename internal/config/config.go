package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"regexp/syntax"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/suryansh-23/txguard/internal/types"
)

const (
	DefaultConfigVersion = 1
	defaultConfigRelPath = "txguard/config.yaml"

	DefaultAmountMaxLength    = 1024
	DefaultTimePointMaxLength = 256
	DefaultDurationMaxLength  = 256
	DefaultAddressMaxLength   = 256
	DefaultOpaqueIDMaxLength  = 256

	DefaultMinAmountUnits   = 50000
	DefaultRedactMaxLength  = 10000
	DefaultSDKTimeoutMS     = 30000
	DefaultMaxRetryAttempts = 3
	DefaultRetryBaseDelayMS = 1000
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level configuration schema.
type Config struct {
	Version int `yaml:"version"`

	Limits    Limits    `yaml:"limits"`
	Amount    Amount    `yaml:"amount"`
	Deadline  Deadline  `yaml:"deadline"`
	Redaction Redaction `yaml:"redaction"`
	Remote    Remote    `yaml:"remote"`
	Cache     Cache     `yaml:"cache"`
	Logging   Logging   `yaml:"logging"`
}

// Limits caps raw input length per field, checked before any parsing.
type Limits struct {
	Amount    int `yaml:"amount"`
	TimePoint int `yaml:"time_point"`
	Duration  int `yaml:"duration"`
	Address   int `yaml:"address"`
	OpaqueID  int `yaml:"opaque_id"`
}

// Amount configures the amount parser.
type Amount struct {
	MinUnits int64 `yaml:"min_units"`
}

// Deadline configures the optional checks applied to escrow deadlines.
type Deadline struct {
	RequireFuture   bool `yaml:"require_future"`
	MaxHorizonHours int  `yaml:"max_horizon_hours"`
}

// Redaction configures the redactor.
type Redaction struct {
	MaxLength int    `yaml:"max_length"`
	Rules     []Rule `yaml:"rules,omitempty"`
}

// Rule is an extra regex redaction rule applied after the built-in table.
type Rule struct {
	Name    string           `yaml:"name"`
	Enabled bool             `yaml:"enabled"`
	Kind    types.SecretKind `yaml:"kind"`
	Pattern string           `yaml:"pattern"`
	Group   int              `yaml:"group"`
}

// Remote configures protected calls to the remote service.
type Remote struct {
	TimeoutMS   int       `yaml:"timeout_ms"`
	MaxAttempts int       `yaml:"max_attempts"`
	BaseDelayMS int       `yaml:"base_delay_ms"`
	Breaker     Breaker   `yaml:"breaker"`
	RateLimit   RateLimit `yaml:"rate_limit"`
}

// Breaker configures the optional circuit breaker.
type Breaker struct {
	Enabled     bool `yaml:"enabled"`
	MaxFailures int  `yaml:"max_failures"`
	OpenSeconds int  `yaml:"open_seconds"`
}

// RateLimit configures the optional client-side limiter.
type RateLimit struct {
	Enabled   bool    `yaml:"enabled"`
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// Cache configures the guard result cache.
type Cache struct {
	Enabled    bool `yaml:"enabled"`
	TTLSeconds int  `yaml:"ttl_seconds"`
	MaxEntries int  `yaml:"max_entries"`
}

// Logging configures the redacting logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the canonical default configuration.
func DefaultConfig() Config {
	return Config{
		Version: DefaultConfigVersion,
		Limits: Limits{
			Amount:    DefaultAmountMaxLength,
			TimePoint: DefaultTimePointMaxLength,
			Duration:  DefaultDurationMaxLength,
			Address:   DefaultAddressMaxLength,
			OpaqueID:  DefaultOpaqueIDMaxLength,
		},
		Amount: Amount{
			MinUnits: DefaultMinAmountUnits,
		},
		Deadline: Deadline{
			RequireFuture:   false,
			MaxHorizonHours: 0,
		},
		Redaction: Redaction{
			MaxLength: DefaultRedactMaxLength,
		},
		Remote: Remote{
			TimeoutMS:   DefaultSDKTimeoutMS,
			MaxAttempts: DefaultMaxRetryAttempts,
			BaseDelayMS: DefaultRetryBaseDelayMS,
			Breaker: Breaker{
				Enabled:     false,
				MaxFailures: 5,
				OpenSeconds: 30,
			},
			RateLimit: RateLimit{
				Enabled:   false,
				PerSecond: 5,
				Burst:     5,
			},
		},
		Cache: Cache{
			Enabled:    false,
			TTLSeconds: 30,
			MaxEntries: 256,
		},
		Logging: Logging{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultPath returns the default config path.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, defaultConfigRelPath), nil
	}
	return filepath.Join(home, ".config", defaultConfigRelPath), nil
}

// Parse parses YAML config content, applying defaults.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads config from disk, applying defaults when missing.
// The boolean return indicates whether a config file was found.
func Load(pathOverride string) (Config, bool, error) {
	path := strings.TrimSpace(pathOverride)
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return Config{}, false, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), false, nil
		}
		return Config{}, false, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

// Validate enforces the supported configuration schema.
func (c Config) Validate() error {
	var errs []string
	if c.Version != DefaultConfigVersion {
		errs = append(errs, fmt.Sprintf("version must be %d", DefaultConfigVersion))
	}
	for _, limit := range []struct {
		name  string
		value int
	}{
		{"amount", c.Limits.Amount},
		{"time_point", c.Limits.TimePoint},
		{"duration", c.Limits.Duration},
		{"address", c.Limits.Address},
		{"opaque_id", c.Limits.OpaqueID},
	} {
		if limit.value <= 0 {
			errs = append(errs, fmt.Sprintf("limits.%s must be > 0", limit.name))
		}
	}
	if c.Amount.MinUnits < 0 {
		errs = append(errs, "amount.min_units must be >= 0")
	}
	if c.Deadline.MaxHorizonHours < 0 {
		errs = append(errs, "deadline.max_horizon_hours must be >= 0")
	}
	if c.Redaction.MaxLength <= len(types.MarkerTruncated) {
		errs = append(errs, fmt.Sprintf("redaction.max_length must be > %d", len(types.MarkerTruncated)))
	}
	for i, rule := range c.Redaction.Rules {
		errs = append(errs, validateRule(i, rule)...)
	}
	if c.Remote.TimeoutMS <= 0 {
		errs = append(errs, "remote.timeout_ms must be > 0")
	}
	if c.Remote.MaxAttempts < 1 {
		errs = append(errs, "remote.max_attempts must be >= 1")
	}
	if c.Remote.BaseDelayMS < 0 {
		errs = append(errs, "remote.base_delay_ms must be >= 0")
	}
	if c.Remote.Breaker.Enabled {
		if c.Remote.Breaker.MaxFailures < 1 {
			errs = append(errs, "remote.breaker.max_failures must be >= 1")
		}
		if c.Remote.Breaker.OpenSeconds < 1 {
			errs = append(errs, "remote.breaker.open_seconds must be >= 1")
		}
	}
	if c.Remote.RateLimit.Enabled {
		if c.Remote.RateLimit.PerSecond <= 0 {
			errs = append(errs, "remote.rate_limit.per_second must be > 0")
		}
		if c.Remote.RateLimit.Burst < 1 {
			errs = append(errs, "remote.rate_limit.burst must be >= 1")
		}
	}
	if c.Cache.TTLSeconds < 0 {
		errs = append(errs, "cache.ttl_seconds must be >= 0")
	}
	if c.Cache.MaxEntries < 0 {
		errs = append(errs, "cache.max_entries must be >= 0")
	}
	if !validLevel(c.Logging.Level) {
		errs = append(errs, "logging.level must be debug|info|warn|error")
	}
	if !validFormat(c.Logging.Format) {
		errs = append(errs, "logging.format must be console|json")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

func validateRule(i int, rule Rule) []string {
	var errs []string
	if rule.Name == "" {
		errs = append(errs, fmt.Sprintf("redaction.rules[%d].name is required", i))
	}
	if !rule.Kind.Valid() {
		errs = append(errs, fmt.Sprintf("redaction.rules[%d].kind must be private_key|mnemonic|api_key", i))
	}
	if rule.Group < 0 {
		errs = append(errs, fmt.Sprintf("redaction.rules[%d].group must be >= 0", i))
	}
	if rule.Pattern == "" {
		return append(errs, fmt.Sprintf("redaction.rules[%d].pattern is required", i))
	}
	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return append(errs, fmt.Sprintf("redaction.rules[%d].pattern is invalid: %v", i, err))
	}
	if rule.Group > re.NumSubexp() {
		errs = append(errs, fmt.Sprintf("redaction.rules[%d].group exceeds pattern groups", i))
	}
	if unbounded, err := HasUnboundedRepeat(rule.Pattern); err != nil || unbounded {
		errs = append(errs, fmt.Sprintf("redaction.rules[%d].pattern must use bounded quantifiers ({m,n})", i))
	}
	for _, marker := range types.Markers() {
		if re.MatchString(marker) {
			errs = append(errs, fmt.Sprintf("redaction.rules[%d].pattern matches marker %s", i, marker))
			break
		}
	}
	return errs
}

// HasUnboundedRepeat reports whether pattern contains *, + or {n,}.
func HasUnboundedRepeat(pattern string) (bool, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return false, err
	}
	return unbounded(re), nil
}

func unbounded(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpStar, syntax.OpPlus:
		return true
	case syntax.OpRepeat:
		if re.Max == -1 {
			return true
		}
	}
	for _, sub := range re.Sub {
		if unbounded(sub) {
			return true
		}
	}
	return false
}

func validLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console", "json":
		return true
	default:
		return false
	}
}
