package usecase

import (
	"context"
	"time"

	"github.com/allisson/tokenvault/internal/metrics"
	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
)

// tenantUseCaseWithMetrics decorates TenantUseCase with metrics instrumentation.
type tenantUseCaseWithMetrics struct {
	next    TenantUseCase
	metrics metrics.BusinessMetrics
}

// NewTenantUseCaseWithMetrics wraps a TenantUseCase with metrics recording.
func NewTenantUseCaseWithMetrics(useCase TenantUseCase, m metrics.BusinessMetrics) TenantUseCase {
	return &tenantUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tenantUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "tenant", operation, status)
	t.metrics.RecordDuration(ctx, "tenant", operation, time.Since(start), status)
}

// Create records metrics for tenant creation operations.
func (t *tenantUseCaseWithMetrics) Create(
	ctx context.Context,
	input *tenantDomain.CreateTenantInput,
) (*tenantDomain.CreateTenantOutput, error) {
	start := time.Now()
	output, err := t.next.Create(ctx, input)
	t.record(ctx, "create", start, err)
	return output, err
}

// Get records metrics for tenant retrieval operations.
func (t *tenantUseCaseWithMetrics) Get(ctx context.Context, tenantID string) (*tenantDomain.Tenant, error) {
	start := time.Now()
	tenant, err := t.next.Get(ctx, tenantID)
	t.record(ctx, "get", start, err)
	return tenant, err
}

// Update records metrics for tenant update operations.
func (t *tenantUseCaseWithMetrics) Update(
	ctx context.Context,
	tenantID string,
	input *tenantDomain.UpdateTenantInput,
) (*tenantDomain.UpdateTenantOutput, error) {
	start := time.Now()
	output, err := t.next.Update(ctx, tenantID, input)
	t.record(ctx, "update", start, err)
	return output, err
}

// Deactivate records metrics for tenant deactivation operations.
func (t *tenantUseCaseWithMetrics) Deactivate(ctx context.Context, tenantID, modifiedBy string) error {
	start := time.Now()
	err := t.next.Deactivate(ctx, tenantID, modifiedBy)
	t.record(ctx, "deactivate", start, err)
	return err
}

// List records metrics for tenant list operations.
func (t *tenantUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*tenantDomain.Tenant, error) {
	start := time.Now()
	tenants, err := t.next.List(ctx, offset, limit)
	t.record(ctx, "list", start, err)
	return tenants, err
}

// Resolve records metrics for credential resolution operations.
func (t *tenantUseCaseWithMetrics) Resolve(
	ctx context.Context,
	plainCredential string,
) (*tenantDomain.Tenant, error) {
	start := time.Now()
	tenant, err := t.next.Resolve(ctx, plainCredential)
	t.record(ctx, "resolve", start, err)
	return tenant, err
}
