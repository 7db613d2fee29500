package domain

import "errors"

// Sentinel errors for OTP validation outcomes.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrMissingField       = errors.New("email and otp are required")
	ErrInvalidOTPFormat   = errors.New("otp has invalid length")
	ErrCredentialMismatch = errors.New("credentials do not match")
	ErrStoreUnavailable   = errors.New("store unavailable")
)
