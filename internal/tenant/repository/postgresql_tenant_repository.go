// Package repository implements data persistence for tenant records.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). Encryption settings and compliance defaults are stored as
// JSON columns.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/allisson/tokenvault/internal/database"
	apperrors "github.com/allisson/tokenvault/internal/errors"
	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
)

// PostgreSQLTenantRepository implements tenant persistence for PostgreSQL.
type PostgreSQLTenantRepository struct {
	db *sql.DB
}

const pgTenantColumns = `id, name, credential_hash, credential_digest, status, is_admin,
		encryption_settings, compliance_defaults, created_at, created_by, last_modified_at, last_modified_by`

// Create inserts a new tenant into the PostgreSQL database.
// Returns ErrTenantConflict if a tenant with the same ID already exists.
func (p *PostgreSQLTenantRepository) Create(ctx context.Context, tenant *tenantDomain.Tenant) error {
	querier := database.GetTx(ctx, p.db)

	encryptionJSON, complianceJSON, err := marshalTenantSettings(tenant)
	if err != nil {
		return err
	}

	query := `INSERT INTO tenants (` + pgTenantColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  ON CONFLICT (id) DO NOTHING`

	result, err := querier.ExecContext(
		ctx,
		query,
		tenant.ID,
		tenant.Name,
		tenant.CredentialHash,
		tenant.CredentialDigest,
		tenant.Status,
		tenant.IsAdmin,
		encryptionJSON,
		complianceJSON,
		tenant.CreatedAt,
		tenant.CreatedBy,
		tenant.LastModifiedAt,
		tenant.LastModifiedBy,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create tenant")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return tenantDomain.ErrTenantConflict
	}

	return nil
}

// Update modifies an existing tenant in the PostgreSQL database. The
// credential columns are written too so rotations persist; the digest unique
// index surfaces collisions as ErrTenantConflict.
func (p *PostgreSQLTenantRepository) Update(ctx context.Context, tenant *tenantDomain.Tenant) error {
	querier := database.GetTx(ctx, p.db)

	encryptionJSON, complianceJSON, err := marshalTenantSettings(tenant)
	if err != nil {
		return err
	}

	query := `UPDATE tenants
			  SET name = $1,
				  credential_hash = $2,
				  credential_digest = $3,
				  status = $4,
				  encryption_settings = $5,
				  compliance_defaults = $6,
				  last_modified_at = $7,
				  last_modified_by = $8
			  WHERE id = $9`

	result, err := querier.ExecContext(
		ctx,
		query,
		tenant.Name,
		tenant.CredentialHash,
		tenant.CredentialDigest,
		tenant.Status,
		encryptionJSON,
		complianceJSON,
		tenant.LastModifiedAt,
		tenant.LastModifiedBy,
		tenant.ID,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return tenantDomain.ErrTenantConflict
		}
		return apperrors.Wrap(err, "failed to update tenant")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return tenantDomain.ErrTenantNotFound
	}

	return nil
}

// Get retrieves a tenant by ID from the PostgreSQL database regardless of status.
func (p *PostgreSQLTenantRepository) Get(ctx context.Context, tenantID string) (*tenantDomain.Tenant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + pgTenantColumns + ` FROM tenants WHERE id = $1`

	return scanTenant(querier.QueryRowContext(ctx, query, tenantID))
}

// GetByCredentialDigest retrieves an active tenant by its credential digest.
// Deactivated tenants cannot authenticate, so they are excluded here.
func (p *PostgreSQLTenantRepository) GetByCredentialDigest(
	ctx context.Context,
	digest string,
) (*tenantDomain.Tenant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + pgTenantColumns + ` FROM tenants WHERE credential_digest = $1 AND status = $2`

	return scanTenant(querier.QueryRowContext(ctx, query, digest, tenantDomain.StatusActive))
}

// List retrieves active tenants ordered by ID ascending with pagination
// support. Deactivated tenants stay reachable through Get only.
func (p *PostgreSQLTenantRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*tenantDomain.Tenant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + pgTenantColumns + ` FROM tenants WHERE status = $1 ORDER BY id ASC LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, tenantDomain.StatusActive, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tenants")
	}
	defer func() {
		_ = rows.Close()
	}()

	tenants := make([]*tenantDomain.Tenant, 0)
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating tenants")
	}

	return tenants, nil
}

// NewPostgreSQLTenantRepository creates a new PostgreSQL tenant repository.
func NewPostgreSQLTenantRepository(db *sql.DB) *PostgreSQLTenantRepository {
	return &PostgreSQLTenantRepository{db: db}
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func marshalTenantSettings(tenant *tenantDomain.Tenant) (encryptionJSON, complianceJSON []byte, err error) {
	encryptionJSON, err = json.Marshal(tenant.EncryptionSettings)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal encryption settings")
	}
	complianceJSON, err = json.Marshal(tenant.ComplianceDefaults)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal compliance defaults")
	}
	return encryptionJSON, complianceJSON, nil
}

func scanTenant(row rowScanner) (*tenantDomain.Tenant, error) {
	var tenant tenantDomain.Tenant
	var status string
	var encryptionJSON, complianceJSON []byte

	err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.CredentialHash,
		&tenant.CredentialDigest,
		&status,
		&tenant.IsAdmin,
		&encryptionJSON,
		&complianceJSON,
		&tenant.CreatedAt,
		&tenant.CreatedBy,
		&tenant.LastModifiedAt,
		&tenant.LastModifiedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tenantDomain.ErrTenantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan tenant")
	}

	tenant.Status = tenantDomain.Status(status)

	if err := json.Unmarshal(encryptionJSON, &tenant.EncryptionSettings); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal encryption settings")
	}
	if err := json.Unmarshal(complianceJSON, &tenant.ComplianceDefaults); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal compliance defaults")
	}

	return &tenant, nil
}
