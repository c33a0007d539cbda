package apperr

import "errors"

// Sentinel errors shared by the service and handler layers. Handlers map these
// to HTTP status codes; services wrap them with detail via fmt.Errorf("%w: ...").
var (
	// ErrUnauthenticated means no credential was presented at all.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidSession means the presented session token failed verification
	// (bad signature, tampered, expired).
	ErrInvalidSession = errors.New("invalid or expired session")

	// ErrInvalidIdentityToken means the Google ID token failed verification.
	ErrInvalidIdentityToken = errors.New("invalid identity token")

	// ErrNotFound covers both a missing resource and a resource owned by
	// another user, so existence is never leaked across accounts.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation means the request payload was malformed or inconsistent.
	ErrValidation = errors.New("validation failed")
)
