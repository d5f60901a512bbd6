package domain

import (
	"github.com/allisson/tokenvault/internal/errors"
)

var (
	// ErrTenantNotFound indicates the tenant does not exist or is not visible
	// to the caller.
	ErrTenantNotFound = errors.Wrap(errors.ErrNotFound, "tenant not found")

	// ErrTenantConflict indicates a tenant with the same ID already exists.
	ErrTenantConflict = errors.Wrap(errors.ErrConflict, "tenant already exists")

	// ErrTenantDeactivated indicates the tenant exists but has been deactivated
	// and may not perform vault operations.
	ErrTenantDeactivated = errors.Wrap(errors.ErrForbidden, "tenant is deactivated")

	// ErrInvalidCredential indicates the presented API credential did not match
	// any active tenant.
	ErrInvalidCredential = errors.Wrap(errors.ErrUnauthorized, "invalid credential")
)
