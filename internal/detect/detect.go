package detect

import (
	"strings"

	"github.com/tyler-smith/go-bip39/wordlists"
)

const (
	MinMnemonicWords = 11
	MaxMnemonicWords = 24
)

// wordlist is the BIP-39 English list, built once.
var wordlist = func() map[string]struct{} {
	set := make(map[string]struct{}, len(wordlists.English))
	for _, w := range wordlists.English {
		set[w] = struct{}{}
	}
	return set
}()

// IsPrivateKey reports whether s is exactly 64 hex characters, optionally
// prefixed with 0x.
func IsPrivateKey(s string) bool {
	return privateKeyExact.MatchString(s)
}

// IsMnemonicPhrase reports whether s looks like a recovery phrase: 11 to 24
// whitespace-separated words, at least 80% of them in the wordlist.
func IsMnemonicPhrase(s string) bool {
	words := strings.Fields(s)
	if len(words) < MinMnemonicWords || len(words) > MaxMnemonicWords {
		return false
	}
	matches := 0
	for _, w := range words {
		if IsWordlistWord(w) {
			matches++
		}
	}
	// matches/len >= 0.8 without floating point.
	return matches*5 >= len(words)*4
}

// IsWordlistWord reports whether w (case-insensitive) is a BIP-39 word.
func IsWordlistWord(w string) bool {
	_, ok := wordlist[strings.ToLower(w)]
	return ok
}

// IsAPIKeyLike reports whether s carries a known provider token.
func IsAPIKeyLike(s string) bool {
	for _, rule := range apiKeyRules {
		if rule.Re.MatchString(s) {
			return true
		}
	}
	return false
}

// ContainsPrivateKey reports whether any 64-hex run appears in text.
func ContainsPrivateKey(text string) bool {
	return PrivateKeyPattern.MatchString(text)
}

// ContainsAPIKey is IsAPIKeyLike applied to free text.
func ContainsAPIKey(text string) bool {
	return IsAPIKeyLike(text)
}

// ContainsMnemonic reports whether a quoted or labelled mnemonic span is
// present. Unmarked phrases are not found.
func ContainsMnemonic(text string) bool {
	return len(mnemonicSpans(text)) > 0
}
