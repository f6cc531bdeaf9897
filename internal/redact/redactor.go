package redact

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/suryansh-23/txguard/internal/config"
	"github.com/suryansh-23/txguard/internal/detect"
	"github.com/suryansh-23/txguard/internal/types"
)

// DefaultMaxLength bounds the text a redactor will scan, markers included.
const DefaultMaxLength = config.DefaultRedactMaxLength

// Rule is an extra pattern replaced after the built-in API key table.
type Rule struct {
	Name  string
	Kind  types.SecretKind
	Re    *regexp.Regexp
	Group int
}

// Redactor replaces secrets in text with per-kind markers. It holds only
// immutable tables and is safe for concurrent use.
type Redactor struct {
	maxLength int
	rules     []Rule
}

// Option configures a Redactor.
type Option func(*Redactor)

// WithMaxLength sets the scan window. Values not larger than the truncation
// marker are ignored.
func WithMaxLength(n int) Option {
	return func(r *Redactor) {
		if n > len(types.MarkerTruncated) {
			r.maxLength = n
		}
	}
}

// WithRules appends extra rules.
func WithRules(rules ...Rule) Option {
	return func(r *Redactor) {
		r.rules = append(r.rules, rules...)
	}
}

// New returns a redactor with the built-in tables.
func New(opts ...Option) *Redactor {
	r := &Redactor{maxLength: DefaultMaxLength}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromConfig builds a redactor from validated configuration.
func FromConfig(cfg config.Redaction) (*Redactor, error) {
	var rules []Rule
	for _, rule := range cfg.Rules {
		if !rule.Enabled {
			continue
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile rule %s: %w", rule.Name, err)
		}
		rules = append(rules, Rule{Name: rule.Name, Kind: rule.Kind, Re: re, Group: rule.Group})
	}
	return New(WithMaxLength(cfg.MaxLength), WithRules(rules...)), nil
}

var std = New()

// Text redacts s with the default redactor.
func Text(s string) string {
	return std.Text(s)
}

// Text returns s with every detected secret replaced by its marker.
//
// Passes run in a fixed order: truncate, 64-hex keys, API keys, configured
// rules, then quoted and labelled mnemonic spans. Output never exceeds the
// scan window, so Text(Text(s)) == Text(s).
func (r *Redactor) Text(s string) string {
	if s == "" {
		return s
	}
	budget := r.maxLength - len(types.MarkerTruncated)
	truncated := false
	if exceeds(s, r.maxLength) {
		s = keepRunes(s, budget)
		truncated = true
	}

	s = detect.PrivateKeyPattern.ReplaceAllLiteralString(s, types.MarkerPrivateKey)
	for _, rule := range detect.APIKeyRules() {
		s = rule.Re.ReplaceAllLiteralString(s, types.MarkerAPIKey)
	}
	for _, rule := range r.rules {
		s = replaceGroup(s, rule.Re, rule.Group, rule.Kind.Marker())
	}
	s = replaceSpans(s, detect.MnemonicSpans(s))

	// Configured rules may emit markers longer than the text they replace.
	if (truncated && exceeds(s, budget)) || (!truncated && exceeds(s, r.maxLength)) {
		s = keepRunes(s, budget)
		truncated = true
	}
	if truncated {
		s += types.MarkerTruncated
	}
	return s
}

// Window returns the prefix of s that Text scans: at most the configured
// maximum length in runes, never splitting a rune.
func (r *Redactor) Window(s string) string {
	if !exceeds(s, r.maxLength) {
		return s
	}
	return keepRunes(s, r.maxLength)
}

func exceeds(s string, limit int) bool {
	return len(s) > limit && utf8.RuneCountInString(s) > limit
}

// keepRunes returns the longest prefix of s holding at most n runes.
func keepRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func replaceGroup(s string, re *regexp.Regexp, group int, marker string) string {
	indices := re.FindAllStringSubmatchIndex(s, -1)
	if len(indices) == 0 {
		return s
	}
	var out strings.Builder
	cursor := 0
	for _, idx := range indices {
		gi := group * 2
		if gi+1 >= len(idx) {
			continue
		}
		start, end := idx[gi], idx[gi+1]
		if start < cursor || end <= start {
			continue
		}
		out.WriteString(s[cursor:start])
		out.WriteString(marker)
		cursor = end
	}
	out.WriteString(s[cursor:])
	return out.String()
}

func replaceSpans(s string, spans []detect.Finding) string {
	if len(spans) == 0 {
		return s
	}
	var out strings.Builder
	cursor := 0
	for _, span := range spans {
		if span.Start < cursor || span.End > len(s) || span.End <= span.Start {
			continue
		}
		out.WriteString(s[cursor:span.Start])
		out.WriteString(span.Marker())
		cursor = span.End
	}
	out.WriteString(s[cursor:])
	return out.String()
}
