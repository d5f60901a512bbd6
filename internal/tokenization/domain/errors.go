package domain

import (
	"github.com/allisson/tokenvault/internal/errors"
)

var (
	// ErrTokenNotFound indicates the token does not exist within the calling
	// tenant's scope. Tokens owned by other tenants surface this same error so
	// callers cannot probe for their existence.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrTokenExpired indicates the token exists but has passed its expiry.
	// Wraps ErrNotFound: an expired token is indistinguishable from a missing
	// one to callers.
	ErrTokenExpired = errors.Wrap(errors.ErrNotFound, "token expired")
)
