package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/tokenvault/internal/testutil"
	tokenizationDomain "github.com/allisson/tokenvault/internal/tokenization/domain"
)

func newTestAuditLog(tenantID string, tokenID uuid.UUID, action tokenizationDomain.Action) *tokenizationDomain.AuditLog {
	return &tokenizationDomain.AuditLog{
		ID:        uuid.Must(uuid.NewV7()),
		TokenID:   tokenID,
		TenantID:  tenantID,
		Action:    action,
		UserID:    "test-user",
		CreatedAt: time.Now().UTC(),
	}
}

func TestNewPostgreSQLAuditLogRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLAuditLogRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLAuditLogRepository{}, repo)
}

func TestPostgreSQLAuditLogRepository_Create(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLAuditLogRepository(db)
	ctx := context.Background()

	tenantID := testutil.CreateTestTenant(t, db, "postgres", "acme-corp")
	auditLog := newTestAuditLog(tenantID, uuid.Must(uuid.NewV7()), tokenizationDomain.ActionCreated)

	err := repo.Create(ctx, auditLog)
	require.NoError(t, err)

	// Verify the entry was written
	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_logs WHERE id = $1", auditLog.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPostgreSQLAuditLogRepository_ListByToken(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLAuditLogRepository(db)
	ctx := context.Background()

	tenantID := testutil.CreateTestTenant(t, db, "postgres", "acme-corp")
	tokenID := uuid.Must(uuid.NewV7())

	base := time.Now().UTC().Add(-time.Hour)
	actions := []tokenizationDomain.Action{
		tokenizationDomain.ActionCreated,
		tokenizationDomain.ActionDataAccessed,
		tokenizationDomain.ActionMetadataAccessed,
	}
	for i, action := range actions {
		auditLog := newTestAuditLog(tenantID, tokenID, action)
		auditLog.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		err := repo.Create(ctx, auditLog)
		require.NoError(t, err)
	}

	auditLogs, err := repo.ListByToken(ctx, tenantID, tokenID)
	require.NoError(t, err)
	require.Len(t, auditLogs, 3)

	// Newest first
	assert.Equal(t, tokenizationDomain.ActionMetadataAccessed, auditLogs[0].Action)
	assert.Equal(t, tokenizationDomain.ActionDataAccessed, auditLogs[1].Action)
	assert.Equal(t, tokenizationDomain.ActionCreated, auditLogs[2].Action)
	for _, auditLog := range auditLogs {
		assert.Equal(t, tokenID, auditLog.TokenID)
		assert.Equal(t, tenantID, auditLog.TenantID)
		assert.Equal(t, "test-user", auditLog.UserID)
	}
}

func TestPostgreSQLAuditLogRepository_ListByToken_SameTimestampOrdering(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLAuditLogRepository(db)
	ctx := context.Background()

	tenantID := testutil.CreateTestTenant(t, db, "postgres", "acme-corp")
	tokenID := uuid.Must(uuid.NewV7())

	// Identical timestamps: the time-ordered UUIDv7 ID breaks the tie, so
	// insertion order is preserved
	createdAt := time.Now().UTC()
	first := newTestAuditLog(tenantID, tokenID, tokenizationDomain.ActionCreated)
	first.CreatedAt = createdAt
	require.NoError(t, repo.Create(ctx, first))

	time.Sleep(time.Millisecond)

	second := newTestAuditLog(tenantID, tokenID, tokenizationDomain.ActionDataAccessed)
	second.CreatedAt = createdAt
	require.NoError(t, repo.Create(ctx, second))

	auditLogs, err := repo.ListByToken(ctx, tenantID, tokenID)
	require.NoError(t, err)
	require.Len(t, auditLogs, 2)
	assert.Equal(t, second.ID, auditLogs[0].ID)
	assert.Equal(t, first.ID, auditLogs[1].ID)
}

func TestPostgreSQLAuditLogRepository_ListByToken_Empty(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLAuditLogRepository(db)
	ctx := context.Background()

	tenantID := testutil.CreateTestTenant(t, db, "postgres", "acme-corp")

	auditLogs, err := repo.ListByToken(ctx, tenantID, uuid.Must(uuid.NewV7()))
	require.NoError(t, err)
	assert.Empty(t, auditLogs)
}

func TestPostgreSQLAuditLogRepository_ListByToken_CrossTenant(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLAuditLogRepository(db)
	ctx := context.Background()

	ownerID := testutil.CreateTestTenant(t, db, "postgres", "acme-corp")
	otherID := testutil.CreateTestTenant(t, db, "postgres", "globex")
	tokenID := uuid.Must(uuid.NewV7())

	err := repo.Create(ctx, newTestAuditLog(ownerID, tokenID, tokenizationDomain.ActionCreated))
	require.NoError(t, err)

	// Another tenant sees an empty trail, not the owner's entries
	auditLogs, err := repo.ListByToken(ctx, otherID, tokenID)
	require.NoError(t, err)
	assert.Empty(t, auditLogs)
}

func TestPostgreSQLAuditLogRepository_EntriesSurviveTokenDeletion(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	auditRepo := NewPostgreSQLAuditLogRepository(db)
	tokenRepo := NewPostgreSQLTokenRepository(db)
	ctx := context.Background()

	tenantID := testutil.CreateTestTenant(t, db, "postgres", "acme-corp")
	token := newTestToken(tenantID)
	require.NoError(t, tokenRepo.Create(ctx, token))
	require.NoError(t, auditRepo.Create(ctx, newTestAuditLog(tenantID, token.ID, tokenizationDomain.ActionCreated)))

	deleted, err := tokenRepo.Delete(ctx, tenantID, token.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	// The trail outlives the token
	auditLogs, err := auditRepo.ListByToken(ctx, tenantID, token.ID)
	require.NoError(t, err)
	require.Len(t, auditLogs, 1)
	assert.Equal(t, tokenizationDomain.ActionCreated, auditLogs[0].Action)
}
