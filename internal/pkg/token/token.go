// Package token generates the opaque identifiers embedded in share links.
package token

import (
	"crypto/rand"
	"encoding/base64"
)

// ByteLen is the raw entropy of a share token. 32 bytes keeps tokens
// unguessable; the URL-safe encoding yields a 43 character string.
const ByteLen = 32

// NewShareToken returns a URL-safe random token from crypto/rand.
func NewShareToken() (string, error) {
	buf := make([]byte, ByteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
