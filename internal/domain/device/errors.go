package device

import "errors"

var (
	ErrDeviceMismatch  = errors.New("device fingerprint does not match the bound device")
	ErrBindingNotFound = errors.New("no device binding for this share")
)
