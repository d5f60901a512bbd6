package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/allisson/tokenvault/internal/database"
	apperrors "github.com/allisson/tokenvault/internal/errors"
	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
)

// MySQLTenantRepository implements tenant persistence for MySQL.
type MySQLTenantRepository struct {
	db *sql.DB
}

const mysqlTenantColumns = `id, name, credential_hash, credential_digest, status, is_admin,
		encryption_settings, compliance_defaults, created_at, created_by, last_modified_at, last_modified_by`

// Create inserts a new tenant into the MySQL database.
// Returns ErrTenantConflict if a tenant with the same ID already exists.
func (m *MySQLTenantRepository) Create(ctx context.Context, tenant *tenantDomain.Tenant) error {
	querier := database.GetTx(ctx, m.db)

	encryptionJSON, complianceJSON, err := marshalTenantSettings(tenant)
	if err != nil {
		return err
	}

	query := `INSERT IGNORE INTO tenants (` + mysqlTenantColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

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

// Update modifies an existing tenant in the MySQL database. Missing rows are
// not reported here because MySQL returns zero rows affected for no-op updates
// too; the usecase loads the tenant first, so existence is already established.
// The credential columns are written too so rotations persist; the digest
// unique index surfaces collisions as ErrTenantConflict.
func (m *MySQLTenantRepository) Update(ctx context.Context, tenant *tenantDomain.Tenant) error {
	querier := database.GetTx(ctx, m.db)

	encryptionJSON, complianceJSON, err := marshalTenantSettings(tenant)
	if err != nil {
		return err
	}

	query := `UPDATE tenants
			  SET name = ?,
				  credential_hash = ?,
				  credential_digest = ?,
				  status = ?,
				  encryption_settings = ?,
				  compliance_defaults = ?,
				  last_modified_at = ?,
				  last_modified_by = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(
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
		if isMySQLUniqueViolation(err) {
			return tenantDomain.ErrTenantConflict
		}
		return apperrors.Wrap(err, "failed to update tenant")
	}

	return nil
}

// Get retrieves a tenant by ID from the MySQL database regardless of status.
func (m *MySQLTenantRepository) Get(ctx context.Context, tenantID string) (*tenantDomain.Tenant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlTenantColumns + ` FROM tenants WHERE id = ?`

	return scanTenant(querier.QueryRowContext(ctx, query, tenantID))
}

// GetByCredentialDigest retrieves an active tenant by its credential digest.
func (m *MySQLTenantRepository) GetByCredentialDigest(
	ctx context.Context,
	digest string,
) (*tenantDomain.Tenant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlTenantColumns + ` FROM tenants WHERE credential_digest = ? AND status = ?`

	return scanTenant(querier.QueryRowContext(ctx, query, digest, tenantDomain.StatusActive))
}

// List retrieves active tenants ordered by ID ascending with pagination
// support. Deactivated tenants stay reachable through Get only.
func (m *MySQLTenantRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*tenantDomain.Tenant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlTenantColumns + ` FROM tenants WHERE status = ? ORDER BY id ASC LIMIT ? OFFSET ?`

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

// NewMySQLTenantRepository creates a new MySQL tenant repository.
func NewMySQLTenantRepository(db *sql.DB) *MySQLTenantRepository {
	return &MySQLTenantRepository{db: db}
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint
// violation (error 1062).
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
