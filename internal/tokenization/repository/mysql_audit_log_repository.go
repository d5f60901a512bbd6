package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/tokenvault/internal/database"
	apperrors "github.com/allisson/tokenvault/internal/errors"
	tokenizationDomain "github.com/allisson/tokenvault/internal/tokenization/domain"
)

// MySQLAuditLogRepository implements audit log persistence for MySQL.
// The table is append-only: no update or delete operations exist.
type MySQLAuditLogRepository struct {
	db *sql.DB
}

// Create inserts a new audit log entry into the MySQL database.
func (m *MySQLAuditLogRepository) Create(
	ctx context.Context,
	auditLog *tokenizationDomain.AuditLog,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO audit_logs (id, token_id, tenant_id, action, user_id, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		auditLog.ID.String(),
		auditLog.TokenID.String(),
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
// scope, newest first.
func (m *MySQLAuditLogRepository) ListByToken(
	ctx context.Context,
	tenantID string,
	tokenID uuid.UUID,
) ([]*tokenizationDomain.AuditLog, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token_id, tenant_id, action, user_id, created_at
			  FROM audit_logs
			  WHERE tenant_id = ? AND token_id = ?
			  ORDER BY created_at DESC, id DESC`

	rows, err := querier.QueryContext(ctx, query, tenantID, tokenID.String())
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

// NewMySQLAuditLogRepository creates a new MySQL audit log repository.
func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{db: db}
}
