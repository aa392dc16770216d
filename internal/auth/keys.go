// Package auth implements API key issuance and verification for the golf
// physics API. Client keys are random 256-bit secrets presented in the
// X-API-Key header and stored only as SHA-256 hex digests; the admin key is
// verified against a bcrypt hash from configuration.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// KeyPrefix marks issued API keys so leaked credentials are recognizable in
// source scans and support tickets.
const KeyPrefix = "gp_live_"

// ClientIDPrefix marks public client identifiers.
const ClientIDPrefix = "client_"

// keyEntropyBytes is the random payload size of a generated key (256 bits).
const keyEntropyBytes = 32

// GenerateAPIKey returns a new plaintext API key and the SHA-256 hex digest
// to store. The plaintext is shown to the caller exactly once at issuance.
func GenerateAPIKey() (plaintext string, hash string, err error) {
	b := make([]byte, keyEntropyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate key entropy: %w", err)
	}
	plaintext = KeyPrefix + hex.EncodeToString(b)
	return plaintext, HashKey(plaintext), nil
}

// GenerateClientID returns a new public client identifier.
func GenerateClientID() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate client id: %w", err)
	}
	return ClientIDPrefix + hex.EncodeToString(b), nil
}

// HashKey returns the SHA-256 hex digest of a plaintext API key. A plain
// digest (no salt) is deliberate: keys carry 256 bits of entropy, so rainbow
// tables do not apply, and the digest must be deterministic for indexed
// lookups on the hot authentication path.
func HashKey(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// WellFormed reports whether a presented key has the issued shape. Used to
// reject garbage before the database lookup.
func WellFormed(key string) bool {
	if !strings.HasPrefix(key, KeyPrefix) {
		return false
	}
	payload := key[len(KeyPrefix):]
	if len(payload) != keyEntropyBytes*2 {
		return false
	}
	_, err := hex.DecodeString(payload)
	return err == nil
}

// HashAdminKey produces a bcrypt hash of the operator key for storage in
// configuration. Used by cmd/ops/keygen, never at request time.
func HashAdminKey(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash admin key: %w", err)
	}
	return string(h), nil
}
