// Package usecase defines business logic interfaces for tenant management.
package usecase

import (
	"context"

	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
)

// TenantRepository defines persistence operations for tenants.
// Implementations must support transaction-aware operations via context propagation.
type TenantRepository interface {
	// Create stores a new tenant. Returns ErrTenantConflict if the ID is taken.
	Create(ctx context.Context, tenant *tenantDomain.Tenant) error

	// Update modifies an existing tenant.
	Update(ctx context.Context, tenant *tenantDomain.Tenant) error

	// Get retrieves a tenant by ID regardless of status.
	// Returns ErrTenantNotFound if not found.
	Get(ctx context.Context, tenantID string) (*tenantDomain.Tenant, error)

	// GetByCredentialDigest retrieves an active tenant by credential digest.
	// Returns ErrTenantNotFound if not found.
	GetByCredentialDigest(ctx context.Context, digest string) (*tenantDomain.Tenant, error)

	// List retrieves active tenants ordered by ID ascending with pagination
	// support.
	List(ctx context.Context, offset, limit int) ([]*tenantDomain.Tenant, error)
}

// TenantUseCase defines business logic operations for the tenant registry.
// It orchestrates tenant lifecycle including credential generation, encryption
// settings validation, and soft deactivation preserving audit history.
type TenantUseCase interface {
	// Create registers a new tenant with a generated API credential.
	//
	// Returns the tenant and plain text credential. The plain credential is only
	// returned once and should be securely transmitted to the tenant
	// administrator; only derived values are stored.
	//
	// Returns ErrTenantConflict if a tenant with the same ID already exists,
	// regardless of status: deactivated tenant IDs stay reserved so their audit
	// history remains unambiguous.
	Create(ctx context.Context, input *tenantDomain.CreateTenantInput) (*tenantDomain.CreateTenantOutput, error)

	// Get retrieves a tenant by ID including deactivated tenants.
	// Returns ErrTenantNotFound if the tenant doesn't exist.
	Get(ctx context.Context, tenantID string) (*tenantDomain.Tenant, error)

	// Update modifies a tenant's name, encryption settings, and compliance
	// defaults, and optionally rotates its API credential. The ID and master
	// key reference are immutable.
	//
	// When the input requests rotation, the output carries the new plain
	// credential exactly once; the old credential stops working immediately.
	// Returns ErrTenantNotFound if the tenant doesn't exist and
	// ErrTenantConflict if the rotated credential digest collides with another
	// tenant's.
	Update(ctx context.Context, tenantID string, input *tenantDomain.UpdateTenantInput) (*tenantDomain.UpdateTenantOutput, error)

	// Deactivate performs a soft delete by setting the status to deactivated,
	// blocking vault operations while preserving records for audit purposes.
	// Deactivating an already-deactivated tenant is a no-op.
	//
	// Returns ErrTenantNotFound if the tenant doesn't exist.
	Deactivate(ctx context.Context, tenantID, modifiedBy string) error

	// List retrieves active tenants ordered by ID ascending with pagination
	// support. Deactivated tenants are reachable through Get only.
	List(ctx context.Context, offset, limit int) ([]*tenantDomain.Tenant, error)

	// Resolve authenticates a plain API credential and returns the owning
	// active tenant. Returns ErrInvalidCredential on any mismatch without
	// revealing whether the credential, tenant, or status was at fault.
	Resolve(ctx context.Context, plainCredential string) (*tenantDomain.Tenant, error)
}
