package domain

import "errors"

// Sentinel errors used throughout the application.
// Handlers translate these to HTTP status codes via a single mapError function.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict: item changed concurrently")
	ErrMissingItemID = errors.New("item id must not be empty")
	ErrInvalidKind   = errors.New("invalid transition kind: must be publish_now or bump")
	ErrMissingToken  = errors.New("authorization token must not be empty")

	ErrTokenInvalid  = errors.New("authorization token is invalid")
	ErrTokenExpired  = errors.New("authorization token has expired")
	ErrTokenConsumed = errors.New("authorization token was already used")
)
