package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/suryansh-23/txguard/internal/types"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParseCanonicalConfig(t *testing.T) {
	path := filepath.Join("testdata", "canonical.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read canonical config: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("parse canonical config: %v", err)
	}

	if cfg.Version != DefaultConfigVersion {
		t.Fatalf("version = %d, want %d", cfg.Version, DefaultConfigVersion)
	}
	if cfg.Amount.MinUnits != DefaultMinAmountUnits {
		t.Fatalf("min_units = %d", cfg.Amount.MinUnits)
	}
	if !cfg.Deadline.RequireFuture || cfg.Deadline.MaxHorizonHours != 720 {
		t.Fatalf("deadline = %+v", cfg.Deadline)
	}
	if len(cfg.Redaction.Rules) != 1 || cfg.Redaction.Rules[0].Kind != types.SecretAPIKey {
		t.Fatalf("rules = %+v", cfg.Redaction.Rules)
	}
	if !cfg.Remote.Breaker.Enabled {
		t.Fatalf("breaker not enabled")
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("logging.format = %q", cfg.Logging.Format)
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("version: 1\n"))
	if err != nil {
		t.Fatalf("parse minimal config: %v", err)
	}
	if cfg.Limits.Amount != DefaultAmountMaxLength {
		t.Fatalf("limits.amount = %d", cfg.Limits.Amount)
	}
	if cfg.Remote.TimeoutMS != DefaultSDKTimeoutMS {
		t.Fatalf("remote.timeout_ms = %d", cfg.Remote.TimeoutMS)
	}
	if cfg.Remote.BaseDelayMS != DefaultRetryBaseDelayMS {
		t.Fatalf("remote.base_delay_ms = %d", cfg.Remote.BaseDelayMS)
	}
	if cfg.Redaction.MaxLength != DefaultRedactMaxLength {
		t.Fatalf("redaction.max_length = %d", cfg.Redaction.MaxLength)
	}
}

func TestValidationCollectsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = 2
	cfg.Limits.Address = 0
	cfg.Logging.Level = "loud"
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v", err)
	}
	for _, want := range []string{"version must be 1", "limits.address", "logging.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestValidationRejectsUnboundedRule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Redaction.Rules = []Rule{{
		Name:    "greedy",
		Enabled: true,
		Kind:    types.SecretAPIKey,
		Pattern: "tok_[a-z]+",
	}}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "bounded quantifiers") {
		t.Fatalf("err = %v", err)
	}
}

func TestValidationRejectsRuleMatchingMarker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Redaction.Rules = []Rule{{
		Name:    "too_broad",
		Enabled: true,
		Kind:    types.SecretAPIKey,
		Pattern: "[A-Z_]{8,32}",
	}}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "matches marker") {
		t.Fatalf("err = %v", err)
	}
}

func TestValidationRejectsUnknownRuleKind(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Redaction.Rules = []Rule{{Name: "x", Kind: "password", Pattern: "pw=[a-z]{8,16}"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for unknown kind")
	}
}

func TestHasUnboundedRepeat(t *testing.T) {
	cases := []struct {
		pattern string
		want    bool
	}{
		{`[a-f0-9]{64}`, false},
		{`(?:0x)?[a-f0-9]{10,40}`, false},
		{`a*`, true},
		{`(ab)+c`, true},
		{`x{3,}`, true},
		{`(?i:bearer)[ ]{1,8}`, false},
	}
	for _, tc := range cases {
		got, err := HasUnboundedRepeat(tc.pattern)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.pattern, err)
		}
		if got != tc.want {
			t.Fatalf("HasUnboundedRepeat(%q) = %t, want %t", tc.pattern, got, tc.want)
		}
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, found, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("expected found=false")
	}
	if cfg.Remote.MaxAttempts != DefaultMaxRetryAttempts {
		t.Fatalf("max_attempts = %d", cfg.Remote.MaxAttempts)
	}
}
