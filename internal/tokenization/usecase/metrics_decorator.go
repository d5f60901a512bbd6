package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/tokenvault/internal/metrics"
	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
	tokenizationDomain "github.com/allisson/tokenvault/internal/tokenization/domain"
)

// tokenizationUseCaseWithMetrics decorates TokenizationUseCase with metrics instrumentation.
type tokenizationUseCaseWithMetrics struct {
	next    TokenizationUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenizationUseCaseWithMetrics wraps a TokenizationUseCase with metrics recording.
func NewTokenizationUseCaseWithMetrics(useCase TokenizationUseCase, m metrics.BusinessMetrics) TokenizationUseCase {
	return &tokenizationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tokenizationUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "tokenization", operation, status)
	t.metrics.RecordDuration(ctx, "tokenization", operation, time.Since(start), status)
}

// Tokenize records metrics for tokenize operations.
func (t *tokenizationUseCaseWithMetrics) Tokenize(
	ctx context.Context,
	tenant *tenantDomain.Tenant,
	input *tokenizationDomain.TokenizeInput,
) (*tokenizationDomain.Token, error) {
	start := time.Now()
	token, err := t.next.Tokenize(ctx, tenant, input)
	t.record(ctx, "tokenize", start, err)
	return token, err
}

// Detokenize records metrics for detokenize operations.
func (t *tokenizationUseCaseWithMetrics) Detokenize(
	ctx context.Context,
	tenant *tenantDomain.Tenant,
	tokenID uuid.UUID,
	userID string,
) ([]byte, *tokenizationDomain.Token, error) {
	start := time.Now()
	plaintext, token, err := t.next.Detokenize(ctx, tenant, tokenID, userID)
	t.record(ctx, "detokenize", start, err)
	return plaintext, token, err
}

// GetToken records metrics for token metadata retrieval operations.
func (t *tokenizationUseCaseWithMetrics) GetToken(
	ctx context.Context,
	tenant *tenantDomain.Tenant,
	tokenID uuid.UUID,
	userID string,
) (*tokenizationDomain.Token, error) {
	start := time.Now()
	token, err := t.next.GetToken(ctx, tenant, tokenID, userID)
	t.record(ctx, "get_token", start, err)
	return token, err
}

// FindTokenByFingerprint records metrics for fingerprint lookup operations.
func (t *tokenizationUseCaseWithMetrics) FindTokenByFingerprint(
	ctx context.Context,
	tenant *tenantDomain.Tenant,
	fingerprint string,
	userID string,
) (*tokenizationDomain.Token, error) {
	start := time.Now()
	token, err := t.next.FindTokenByFingerprint(ctx, tenant, fingerprint, userID)
	t.record(ctx, "find_token_by_fingerprint", start, err)
	return token, err
}

// DeleteToken records metrics for token deletion operations.
func (t *tokenizationUseCaseWithMetrics) DeleteToken(
	ctx context.Context,
	tenant *tenantDomain.Tenant,
	tokenID uuid.UUID,
	userID string,
) (bool, error) {
	start := time.Now()
	deleted, err := t.next.DeleteToken(ctx, tenant, tokenID, userID)
	t.record(ctx, "delete_token", start, err)
	return deleted, err
}

// ListAuditLogs records metrics for audit trail retrieval operations.
func (t *tokenizationUseCaseWithMetrics) ListAuditLogs(
	ctx context.Context,
	tenant *tenantDomain.Tenant,
	tokenID uuid.UUID,
	userID string,
) ([]*tokenizationDomain.AuditLog, error) {
	start := time.Now()
	auditLogs, err := t.next.ListAuditLogs(ctx, tenant, tokenID, userID)
	t.record(ctx, "list_audit_logs", start, err)
	return auditLogs, err
}
