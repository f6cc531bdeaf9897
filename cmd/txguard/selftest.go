package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"github.com/suryansh-23/txguard/internal/detect"
	"github.com/suryansh-23/txguard/internal/redact"
)

// syntheticKey returns a random 0x-prefixed 32 byte hex key that never
// belonged to a real account.
func syntheticKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate synthetic key: %w", err)
	}
	return "0x" + hex.EncodeToString(buf), nil
}

// syntheticMnemonic returns a fresh 12 word phrase.
func syntheticMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return phrase, nil
}

// keySelfTest redacts a line holding a synthetic key and returns the
// redacted line.
func keySelfTest(r *redact.Redactor) (string, error) {
	key, err := syntheticKey()
	if err != nil {
		return "", err
	}
	out := r.Text("PRIVATE_KEY=" + key)
	if strings.Contains(out, key) || strings.Contains(out, key[2:]) {
		return "", errors.New("self-test failed: private key was not redacted")
	}
	return out, nil
}

func mnemonicSelfTest(r *redact.Redactor) (string, error) {
	phrase, err := syntheticMnemonic()
	if err != nil {
		return "", err
	}
	if !detect.IsMnemonicPhrase(phrase) {
		return "", errors.New("self-test failed: generated phrase not recognized")
	}
	out := r.Text("seed: " + phrase)
	if strings.Contains(out, phrase) {
		return "", errors.New("self-test failed: mnemonic was not redacted")
	}
	return out, nil
}
