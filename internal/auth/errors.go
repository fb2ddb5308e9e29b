package auth

import "errors"

var (
	// ErrMissingToken is returned when no Authorization header or token is present.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken is returned when the identity provider rejects or
	// cannot validate the token (expired, malformed, revoked).
	ErrInvalidToken = errors.New("invalid or expired token")
)
