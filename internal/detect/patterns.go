package detect

import (
	"regexp"

	"github.com/suryansh-23/txguard/internal/types"
)

// Every quantifier below is bounded. Go's RE2 engine is linear-time, but the
// bounds also cap how much of an oversized run a single match can swallow.

var (
	privateKeyExact = regexp.MustCompile(`^(?:0x)?[0-9a-fA-F]{64}$`)

	// PrivateKeyPattern finds 64-hex runs anywhere in text.
	PrivateKeyPattern = regexp.MustCompile(`(?:0[xX])?[0-9a-fA-F]{64}`)
)

// APIKeyRule is one provider-prefix rule.
type APIKeyRule struct {
	Name string
	Re   *regexp.Regexp
}

// apiKeyRules require a minimum trailing length so a bare prefix never
// matches. Every minimum match is at least as long as MarkerAPIKey, which
// keeps redacted text from growing.
var apiKeyRules = []APIKeyRule{
	{Name: "stripe", Re: regexp.MustCompile(`[sp]k_(?:live|test)_[0-9A-Za-z]{10,255}`)},
	{Name: "aws_access_key_id", Re: regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{Name: "slack", Re: regexp.MustCompile(`xox[bpas]-[0-9A-Za-z-]{13,255}`)},
	{Name: "github_pat", Re: regexp.MustCompile(`ghp_[0-9A-Za-z]{36,255}`)},
	{Name: "gitlab_pat", Re: regexp.MustCompile(`glpat-[0-9A-Za-z_-]{20,255}`)},
	{Name: "openai", Re: regexp.MustCompile(`\bsk-(?:ant-|proj-)?[0-9A-Za-z_-]{20,255}`)},
	{Name: "bearer", Re: regexp.MustCompile(`(?i:bearer)[ \t]{1,8}[0-9A-Za-z._~+/-]{20,512}={0,2}`)},
}

// APIKeyRules returns the provider table in evaluation order.
func APIKeyRules() []APIKeyRule {
	out := make([]APIKeyRule, len(apiKeyRules))
	copy(out, apiKeyRules)
	return out
}

// Mnemonic candidate spans: 40+ characters of lowercase letters and spaces,
// either quoted or following a recognized label. 300 characters covers 24
// words of the longest wordlist entries.
var (
	// QuotedMnemonicPattern captures the interior in group 1 (double quotes)
	// or group 2 (single quotes).
	QuotedMnemonicPattern = regexp.MustCompile(`"([a-z ]{40,300})"|'([a-z ]{40,300})'`)

	// MnemonicLabelPattern matches a label and its separator. Labels are
	// matched on their own so a rejected candidate never hides a later label.
	MnemonicLabelPattern = regexp.MustCompile(`(?i:mnemonic|seed|phrase|recovery)[ \t]{0,8}[:=][ \t]{0,8}`)

	// labeledRunPattern is the candidate that must directly follow a label.
	labeledRunPattern = regexp.MustCompile(`^[a-z ]{40,300}`)
)

func markerFor(kind types.SecretKind) string {
	return kind.Marker()
}
