package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/tokenvault/internal/database"
	apperrors "github.com/allisson/tokenvault/internal/errors"
	tokenizationDomain "github.com/allisson/tokenvault/internal/tokenization/domain"
)

// PostgreSQLAuditLogRepository implements audit log persistence for PostgreSQL.
// The table is append-only: no update or delete operations exist.
type PostgreSQLAuditLogRepository struct {
	db *sql.DB
}

// Create inserts a new audit log entry into the PostgreSQL database.
func (p *PostgreSQLAuditLogRepository) Create(
	ctx context.Context,
	auditLog *tokenizationDomain.AuditLog,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO audit_logs (id, token_id, tenant_id, action, user_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		auditLog.ID,
		auditLog.TokenID,
		auditLog.TenantID,
		auditLog.Action,
		auditLog.UserID,
		auditLog.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}
	return nil
}

// ListByToken retrieves the audit entries for a token within the tenant's
// scope, newest first. UUIDv7 IDs are time-ordered, so the ID tie-breaker
// keeps entries created in the same transaction in insertion order.
func (p *PostgreSQLAuditLogRepository) ListByToken(
	ctx context.Context,
	tenantID string,
	tokenID uuid.UUID,
) ([]*tokenizationDomain.AuditLog, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token_id, tenant_id, action, user_id, created_at
			  FROM audit_logs
			  WHERE tenant_id = $1 AND token_id = $2
			  ORDER BY created_at DESC, id DESC`

	rows, err := querier.QueryContext(ctx, query, tenantID, tokenID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	defer func() {
		_ = rows.Close()
	}()

	auditLogs := make([]*tokenizationDomain.AuditLog, 0)
	for rows.Next() {
		var auditLog tokenizationDomain.AuditLog
		var action string

		err := rows.Scan(
			&auditLog.ID,
			&auditLog.TokenID,
			&auditLog.TenantID,
			&action,
			&auditLog.UserID,
			&auditLog.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit log")
		}

		auditLog.Action = tokenizationDomain.Action(action)
		auditLogs = append(auditLogs, &auditLog)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating audit logs")
	}

	return auditLogs, nil
}

// NewPostgreSQLAuditLogRepository creates a new PostgreSQL audit log repository.
func NewPostgreSQLAuditLogRepository(db *sql.DB) *PostgreSQLAuditLogRepository {
	return &PostgreSQLAuditLogRepository{db: db}
}
