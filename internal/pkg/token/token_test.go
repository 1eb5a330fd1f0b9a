package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewShareToken_Length(t *testing.T) {
	tok, err := NewShareToken()
	assert.NoError(t, err)
	// 32 bytes -> 43 chars in raw base64url
	assert.Len(t, tok, 43)
}

func TestNewShareToken_URLSafe(t *testing.T) {
	tok, err := NewShareToken()
	assert.NoError(t, err)
	assert.NotContains(t, tok, "+")
	assert.NotContains(t, tok, "/")
	assert.NotContains(t, tok, "=")
}

func TestNewShareToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := NewShareToken()
		assert.NoError(t, err)
		assert.False(t, seen[tok], "duplicate token generated")
		seen[tok] = true
	}
}
