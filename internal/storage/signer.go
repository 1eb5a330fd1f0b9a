package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	ErrBadSignature  = errors.New("signature mismatch")
	ErrLinkExpired   = errors.New("signed link expired")
	ErrMalformedLink = errors.New("malformed signed link")
)

// URLSigner mints and verifies the time-boxed retrieval URLs handed to
// share-link visitors. A signature covers the storage path and the
// expiry instant; nothing is persisted.
type URLSigner struct {
	secret []byte
	origin string
}

func NewURLSigner(secret, publicOrigin string) *URLSigner {
	return &URLSigner{secret: []byte(secret), origin: publicOrigin}
}

// SignedURL returns a retrieval URL valid for ttl.
func (s *URLSigner) SignedURL(path string, ttl time.Duration) string {
	expires := time.Now().Add(ttl).Unix()
	sig := s.sign(path, expires)
	// Storage paths are generated from URL-safe alphabets, so they are
	// embedded as-is.
	return fmt.Sprintf("%s/storage/%s?expires=%d&sig=%s", s.origin, path, expires, sig)
}

// Verify checks the signature and expiry for a retrieval request.
func (s *URLSigner) Verify(path, expiresStr, sig string) error {
	expires, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return ErrMalformedLink
	}
	expected := s.sign(path, expires)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return ErrBadSignature
	}
	if time.Now().Unix() > expires {
		return ErrLinkExpired
	}
	return nil
}

func (s *URLSigner) sign(path string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(path))
	mac.Write([]byte{'\n'})
	mac.Write([]byte(strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
