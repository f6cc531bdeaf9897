package types

// SecretKind labels a class of secret material.
type SecretKind string

const (
	SecretPrivateKey SecretKind = "private_key"
	SecretMnemonic   SecretKind = "mnemonic"
	SecretAPIKey     SecretKind = "api_key"
)

// Redaction markers. None of them contain hex runs or lowercase words, so
// they never collide with addresses, transaction ids, or mnemonic text.
const (
	MarkerPrivateKey = "[REDACTED_KEY]"
	MarkerMnemonic   = "[REDACTED_MNEMONIC]"
	MarkerAPIKey     = "[REDACTED_API_KEY]"
	MarkerTruncated  = "...[TRUNCATED]"
)

// Marker returns the redaction marker for a kind.
func (k SecretKind) Marker() string {
	switch k {
	case SecretPrivateKey:
		return MarkerPrivateKey
	case SecretMnemonic:
		return MarkerMnemonic
	case SecretAPIKey:
		return MarkerAPIKey
	default:
		return ""
	}
}

// Valid reports whether k is a known kind.
func (k SecretKind) Valid() bool {
	return k.Marker() != ""
}

// Markers lists every marker the redactor can emit.
func Markers() []string {
	return []string{MarkerPrivateKey, MarkerMnemonic, MarkerAPIKey, MarkerTruncated}
}
