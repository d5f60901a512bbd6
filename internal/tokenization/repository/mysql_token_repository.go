package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/tokenvault/internal/database"
	apperrors "github.com/allisson/tokenvault/internal/errors"
	tokenizationDomain "github.com/allisson/tokenvault/internal/tokenization/domain"
)

// MySQLTokenRepository implements token persistence for MySQL.
type MySQLTokenRepository struct {
	db *sql.DB
}

const mysqlTokenColumns = `id, tenant_id, type, ciphertext, nonce, algorithm, encryption_key_id, fingerprint, metadata,
		pci_scope, hipaa_scope, soc2_scope, iso27001_scope,
		created_at, created_by, expires_at, last_accessed_at, last_accessed_by`

// Create inserts a new token into the MySQL database.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *tokenizationDomain.Token) error {
	querier := database.GetTx(ctx, m.db)

	metadataJSON, err := marshalTokenMetadata(token.Metadata)
	if err != nil {
		return err
	}

	query := `INSERT INTO tokens (` + mysqlTokenColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		token.ID.String(),
		token.TenantID,
		token.Type,
		token.Ciphertext,
		token.Nonce,
		token.Algorithm,
		token.EncryptionKeyID,
		token.Fingerprint,
		metadataJSON,
		token.Compliance.PCIScope,
		token.Compliance.HIPAAScope,
		token.Compliance.SOC2Scope,
		token.Compliance.ISO27001Scope,
		token.CreatedAt,
		token.CreatedBy,
		token.ExpiresAt,
		token.LastAccessedAt,
		token.LastAccessedBy,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// Get retrieves a token by ID within the tenant's scope. Tokens owned by other
// tenants yield ErrTokenNotFound, never a permission error.
func (m *MySQLTokenRepository) Get(
	ctx context.Context,
	tenantID string,
	tokenID uuid.UUID,
) (*tokenizationDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlTokenColumns + ` FROM tokens WHERE tenant_id = ? AND id = ?`

	return scanToken(querier.QueryRowContext(ctx, query, tenantID, tokenID.String()))
}

// UpdateAccess records the time and caller of the latest data access.
func (m *MySQLTokenRepository) UpdateAccess(
	ctx context.Context,
	tenantID string,
	tokenID uuid.UUID,
	accessedAt time.Time,
	accessedBy string,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE tokens SET last_accessed_at = ?, last_accessed_by = ? WHERE tenant_id = ? AND id = ?`

	_, err := querier.ExecContext(ctx, query, accessedAt, accessedBy, tenantID, tokenID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to update token access")
	}

	return nil
}

// Delete removes a token within the tenant's scope. Returns true if a row was
// deleted and false if the token was already gone, making deletion idempotent.
func (m *MySQLTokenRepository) Delete(
	ctx context.Context,
	tenantID string,
	tokenID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM tokens WHERE tenant_id = ? AND id = ?`

	result, err := querier.ExecContext(ctx, query, tenantID, tokenID.String())
	if err != nil {
		return false, apperrors.Wrap(err, "failed to delete token")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get rows affected")
	}

	return rowsAffected > 0, nil
}

// GetByFingerprint retrieves a token by its plaintext fingerprint within the
// tenant's scope.
func (m *MySQLTokenRepository) GetByFingerprint(
	ctx context.Context,
	tenantID string,
	fingerprint string,
) (*tokenizationDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlTokenColumns + ` FROM tokens
			  WHERE tenant_id = ? AND fingerprint = ?
			  ORDER BY created_at DESC
			  LIMIT 1`

	return scanToken(querier.QueryRowContext(ctx, query, tenantID, fingerprint))
}

// NewMySQLTokenRepository creates a new MySQL token repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}
