package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/tokenvault/internal/errors"
	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
	"github.com/allisson/tokenvault/internal/testutil"
)

func newTestTenant(id string) *tenantDomain.Tenant {
	now := time.Now().UTC()
	return &tenantDomain.Tenant{
		ID:                 id,
		Name:               id + " name",
		CredentialHash:     "test-credential-hash",
		CredentialDigest:   "test-credential-digest-" + id,
		Status:             tenantDomain.StatusActive,
		IsAdmin:            false,
		EncryptionSettings: tenantDomain.DefaultEncryptionSettings(id),
		ComplianceDefaults: tenantDomain.ComplianceDefaults{
			PCIScope:   true,
			HIPAAScope: false,
		},
		CreatedAt:      now,
		CreatedBy:      "test-user",
		LastModifiedAt: now,
		LastModifiedBy: "test-user",
	}
}

func TestNewPostgreSQLTenantRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLTenantRepository{}, repo)
}

func TestPostgreSQLTenantRepository_Create(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	tenant := newTestTenant("acme-corp")

	err := repo.Create(ctx, tenant)
	require.NoError(t, err)

	// Verify the tenant was created by retrieving it
	retrieved, err := repo.Get(ctx, tenant.ID)
	require.NoError(t, err)

	assert.Equal(t, tenant.ID, retrieved.ID)
	assert.Equal(t, tenant.Name, retrieved.Name)
	assert.Equal(t, tenant.CredentialHash, retrieved.CredentialHash)
	assert.Equal(t, tenant.CredentialDigest, retrieved.CredentialDigest)
	assert.Equal(t, tenantDomain.StatusActive, retrieved.Status)
	assert.False(t, retrieved.IsAdmin)
	assert.Equal(t, tenant.EncryptionSettings, retrieved.EncryptionSettings)
	assert.Equal(t, tenant.ComplianceDefaults, retrieved.ComplianceDefaults)
	assert.WithinDuration(t, tenant.CreatedAt, retrieved.CreatedAt, time.Second)
}

func TestPostgreSQLTenantRepository_Create_DuplicateID(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	tenant := newTestTenant("acme-corp")
	err := repo.Create(ctx, tenant)
	require.NoError(t, err)

	// A second create with the same ID must conflict, even with different fields
	duplicate := newTestTenant("acme-corp")
	duplicate.Name = "another name"
	duplicate.CredentialDigest = "another-digest"

	err = repo.Create(ctx, duplicate)
	assert.ErrorIs(t, err, tenantDomain.ErrTenantConflict)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Verify only one row exists and the original fields survived
	retrieved, err := repo.Get(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, tenant.Name, retrieved.Name)
}

func TestPostgreSQLTenantRepository_Create_DeactivatedIDStillConflicts(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	tenant := newTestTenant("retired-tenant")
	tenant.Status = tenantDomain.StatusDeactivated
	err := repo.Create(ctx, tenant)
	require.NoError(t, err)

	// Deactivated tenants keep their ID reserved
	err = repo.Create(ctx, newTestTenant("retired-tenant"))
	assert.ErrorIs(t, err, tenantDomain.ErrTenantConflict)
}

func TestPostgreSQLTenantRepository_Update(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	tenant := newTestTenant("acme-corp")
	err := repo.Create(ctx, tenant)
	require.NoError(t, err)

	tenant.Name = "updated name"
	tenant.Status = tenantDomain.StatusDeactivated
	tenant.EncryptionSettings.KeyRotationPolicy = "none"
	tenant.ComplianceDefaults.HIPAAScope = true
	tenant.LastModifiedAt = time.Now().UTC()
	tenant.LastModifiedBy = "admin-user"

	err = repo.Update(ctx, tenant)
	require.NoError(t, err)

	retrieved, err := repo.Get(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated name", retrieved.Name)
	assert.Equal(t, tenantDomain.StatusDeactivated, retrieved.Status)
	assert.Equal(t, "none", retrieved.EncryptionSettings.KeyRotationPolicy)
	assert.True(t, retrieved.ComplianceDefaults.HIPAAScope)
	assert.Equal(t, "admin-user", retrieved.LastModifiedBy)
}

func TestPostgreSQLTenantRepository_Update_RotatesCredentialColumns(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	tenant := newTestTenant("acme-corp")
	err := repo.Create(ctx, tenant)
	require.NoError(t, err)

	tenant.CredentialHash = "rotated-credential-hash"
	tenant.CredentialDigest = "rotated-credential-digest"
	tenant.LastModifiedAt = time.Now().UTC()

	err = repo.Update(ctx, tenant)
	require.NoError(t, err)

	retrieved, err := repo.Get(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "rotated-credential-hash", retrieved.CredentialHash)
	assert.Equal(t, "rotated-credential-digest", retrieved.CredentialDigest)

	// The old digest no longer resolves, the new one does
	_, err = repo.GetByCredentialDigest(ctx, "test-credential-digest-acme-corp")
	assert.ErrorIs(t, err, tenantDomain.ErrTenantNotFound)
	resolved, err := repo.GetByCredentialDigest(ctx, "rotated-credential-digest")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, resolved.ID)
}

func TestPostgreSQLTenantRepository_Update_DigestCollisionConflicts(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	first := newTestTenant("tenant-a")
	require.NoError(t, repo.Create(ctx, first))
	second := newTestTenant("tenant-b")
	require.NoError(t, repo.Create(ctx, second))

	// Rotating onto another tenant's digest trips the unique index
	second.CredentialDigest = first.CredentialDigest
	err := repo.Update(ctx, second)
	assert.ErrorIs(t, err, tenantDomain.ErrTenantConflict)
}

func TestPostgreSQLTenantRepository_Update_NotFound(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	err := repo.Update(ctx, newTestTenant("nonexistent"))
	assert.ErrorIs(t, err, tenantDomain.ErrTenantNotFound)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostgreSQLTenantRepository_Get_NotFound(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	tenant, err := repo.Get(ctx, "nonexistent")
	assert.ErrorIs(t, err, tenantDomain.ErrTenantNotFound)
	assert.Nil(t, tenant)
}

func TestPostgreSQLTenantRepository_Get_DeactivatedTenant(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	tenant := newTestTenant("retired-tenant")
	tenant.Status = tenantDomain.StatusDeactivated
	err := repo.Create(ctx, tenant)
	require.NoError(t, err)

	// Get returns tenants regardless of status so admins can inspect them
	retrieved, err := repo.Get(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, tenantDomain.StatusDeactivated, retrieved.Status)
}

func TestPostgreSQLTenantRepository_GetByCredentialDigest(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	tenant := newTestTenant("acme-corp")
	err := repo.Create(ctx, tenant)
	require.NoError(t, err)

	retrieved, err := repo.GetByCredentialDigest(ctx, tenant.CredentialDigest)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, retrieved.ID)
}

func TestPostgreSQLTenantRepository_GetByCredentialDigest_DeactivatedTenant(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	tenant := newTestTenant("retired-tenant")
	tenant.Status = tenantDomain.StatusDeactivated
	err := repo.Create(ctx, tenant)
	require.NoError(t, err)

	// Deactivated tenants cannot authenticate
	retrieved, err := repo.GetByCredentialDigest(ctx, tenant.CredentialDigest)
	assert.ErrorIs(t, err, tenantDomain.ErrTenantNotFound)
	assert.Nil(t, retrieved)
}

func TestPostgreSQLTenantRepository_GetByCredentialDigest_NotFound(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	tenant, err := repo.GetByCredentialDigest(ctx, "unknown-digest")
	assert.ErrorIs(t, err, tenantDomain.ErrTenantNotFound)
	assert.Nil(t, tenant)
}

func TestPostgreSQLTenantRepository_List(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	for _, id := range []string{"tenant-c", "tenant-a", "tenant-b"} {
		err := repo.Create(ctx, newTestTenant(id))
		require.NoError(t, err)
	}

	// Deactivated tenants are excluded from listings
	retired := newTestTenant("tenant-0-retired")
	retired.Status = tenantDomain.StatusDeactivated
	require.NoError(t, repo.Create(ctx, retired))

	// Ordered by ID ascending, active only
	tenants, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, tenants, 3)
	assert.Equal(t, "tenant-a", tenants[0].ID)
	assert.Equal(t, "tenant-b", tenants[1].ID)
	assert.Equal(t, "tenant-c", tenants[2].ID)

	// Pagination
	tenants, err = repo.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "tenant-b", tenants[0].ID)
}

func TestPostgreSQLTenantRepository_List_Empty(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTenantRepository(db)
	ctx := context.Background()

	tenants, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, tenants)
}
