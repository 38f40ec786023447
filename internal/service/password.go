package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the SHA-256 hex digest of the plaintext. The
// digest is deliberately unsalted: stored credentials are matched by
// exact digest equality, so identical passwords hash identically.
func HashPassword(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
