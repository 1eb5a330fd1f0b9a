package share

import "errors"

var (
	ErrShareNotFound         = errors.New("share link not found")
	ErrUnauthorized          = errors.New("you do not own this file")
	ErrRevoked               = errors.New("share link has been revoked")
	ErrExpired               = errors.New("share link has expired")
	ErrQuotaExceeded         = errors.New("download limit reached")
	ErrDeviceMismatch        = errors.New("share link is bound to a different device")
	ErrDownloadNotAllowed    = errors.New("this share link does not permit downloads")
	ErrInvalidRole           = errors.New("role must be viewer or editor")
	ErrInvalidExpiration     = errors.New("expiration must be 1, 7, 30, 90 or all-time")
	ErrInvalidDownloadLimit  = errors.New("download limit must be zero or positive")
	ErrDownloadNeedsNoExpiry = errors.New("download shares require all-time expiration")
	ErrFingerprintRequired   = errors.New("device fingerprint is required")
)
