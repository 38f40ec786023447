package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordIsDeterministicHexDigest(t *testing.T) {
	// Digest must match what the legacy portal stored for its users.
	assert.Equal(t,
		"10176e7b7b24d317acfcf8d2064cfd2f24e154f7b5a96603077d5ef813d6a6b6",
		HashPassword("staff123"))
	assert.Equal(t, HashPassword("secret123"), HashPassword("secret123"))
	assert.Len(t, HashPassword(""), 64)
}
