// Package repository implements data persistence for tokens and their audit
// trail. Supports tenant-scoped lookups and dual database support (PostgreSQL
// and MySQL) with transaction support via database.GetTx().
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/tokenvault/internal/database"
	apperrors "github.com/allisson/tokenvault/internal/errors"
	tokenizationDomain "github.com/allisson/tokenvault/internal/tokenization/domain"
)

// PostgreSQLTokenRepository implements token persistence for PostgreSQL.
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

const pgTokenColumns = `id, tenant_id, type, ciphertext, nonce, algorithm, encryption_key_id, fingerprint, metadata,
		pci_scope, hipaa_scope, soc2_scope, iso27001_scope,
		created_at, created_by, expires_at, last_accessed_at, last_accessed_by`

// Create inserts a new token into the PostgreSQL database.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *tokenizationDomain.Token) error {
	querier := database.GetTx(ctx, p.db)

	metadataJSON, err := marshalTokenMetadata(token.Metadata)
	if err != nil {
		return err
	}

	query := `INSERT INTO tokens (` + pgTokenColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err = querier.ExecContext(
		ctx,
		query,
		token.ID,
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
func (p *PostgreSQLTokenRepository) Get(
	ctx context.Context,
	tenantID string,
	tokenID uuid.UUID,
) (*tokenizationDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + pgTokenColumns + ` FROM tokens WHERE tenant_id = $1 AND id = $2`

	return scanToken(querier.QueryRowContext(ctx, query, tenantID, tokenID))
}

// UpdateAccess records the time and caller of the latest data access.
func (p *PostgreSQLTokenRepository) UpdateAccess(
	ctx context.Context,
	tenantID string,
	tokenID uuid.UUID,
	accessedAt time.Time,
	accessedBy string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tokens SET last_accessed_at = $1, last_accessed_by = $2 WHERE tenant_id = $3 AND id = $4`

	result, err := querier.ExecContext(ctx, query, accessedAt, accessedBy, tenantID, tokenID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update token access")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return tokenizationDomain.ErrTokenNotFound
	}

	return nil
}

// Delete removes a token within the tenant's scope. Returns true if a row was
// deleted and false if the token was already gone, making deletion idempotent.
func (p *PostgreSQLTokenRepository) Delete(
	ctx context.Context,
	tenantID string,
	tokenID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM tokens WHERE tenant_id = $1 AND id = $2`

	result, err := querier.ExecContext(ctx, query, tenantID, tokenID)
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
// tenant's scope. Used to detect values that have already been tokenized.
func (p *PostgreSQLTokenRepository) GetByFingerprint(
	ctx context.Context,
	tenantID string,
	fingerprint string,
) (*tokenizationDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + pgTokenColumns + ` FROM tokens
			  WHERE tenant_id = $1 AND fingerprint = $2
			  ORDER BY created_at DESC
			  LIMIT 1`

	return scanToken(querier.QueryRowContext(ctx, query, tenantID, fingerprint))
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL token repository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func marshalTokenMetadata(metadata map[string]string) ([]byte, error) {
	if metadata == nil {
		return nil, nil
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal metadata")
	}
	return metadataJSON, nil
}

func scanToken(row rowScanner) (*tokenizationDomain.Token, error) {
	var token tokenizationDomain.Token
	var metadataJSON []byte
	var lastAccessedBy sql.NullString

	err := row.Scan(
		&token.ID,
		&token.TenantID,
		&token.Type,
		&token.Ciphertext,
		&token.Nonce,
		&token.Algorithm,
		&token.EncryptionKeyID,
		&token.Fingerprint,
		&metadataJSON,
		&token.Compliance.PCIScope,
		&token.Compliance.HIPAAScope,
		&token.Compliance.SOC2Scope,
		&token.Compliance.ISO27001Scope,
		&token.CreatedAt,
		&token.CreatedBy,
		&token.ExpiresAt,
		&token.LastAccessedAt,
		&lastAccessedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tokenizationDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan token")
	}

	token.LastAccessedBy = lastAccessedBy.String

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &token.Metadata); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal metadata")
		}
	}

	return &token, nil
}
