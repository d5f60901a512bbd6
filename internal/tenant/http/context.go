// Package http provides HTTP middleware and handlers for tenant management
// and credential-based authentication.
package http

import (
	"context"

	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
)

// tenantKey is a context key type for storing authenticated tenants.
type tenantKey struct{}

// WithTenant stores an authenticated tenant in the context.
// This is typically called by the authentication middleware after successful credential resolution.
func WithTenant(ctx context.Context, tenant *tenantDomain.Tenant) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenant)
}

// GetTenant retrieves an authenticated tenant from the context.
// Returns (tenant, true) if a tenant is present, or (nil, false) if no tenant was set.
// This is typically called by handlers that need the authenticated tenant.
func GetTenant(ctx context.Context) (*tenantDomain.Tenant, bool) {
	tenant, ok := ctx.Value(tenantKey{}).(*tenantDomain.Tenant)
	return tenant, ok
}
