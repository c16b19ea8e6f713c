// Package hash provides password hashing built on bcrypt.
package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost factor used when none is configured.
// 10 rounds balances offline brute-force resistance against interactive latency.
const DefaultCost = 10

// BcryptHasher hashes and verifies passwords with bcrypt.
// Each Hash call embeds a fresh random salt, so equal plaintexts
// yield different digests while Verify still succeeds for both.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the given cost factor.
// A cost of 0 or less falls back to DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash transforms a plaintext password into a storable salted digest.
// It fails only on internal error, never on password content.
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether the plaintext password matches the digest.
// Any mismatch, including a malformed digest, returns false.
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
