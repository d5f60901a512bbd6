package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	tenantUseCase "github.com/allisson/tokenvault/internal/tenant/usecase"
)

// RunDeactivateTenant soft deletes a tenant, blocking its vault operations
// while preserving its records and audit history. Deactivating an
// already-deactivated tenant is a no-op.
//
// Requirements: Database must be migrated and the tenant must exist.
func RunDeactivateTenant(
	ctx context.Context,
	tenantUC tenantUseCase.TenantUseCase,
	logger *slog.Logger,
	writer io.Writer,
	tenantID string,
	format string,
) error {
	logger.Info("deactivating tenant", slog.String("tenant_id", tenantID))

	if err := tenantUC.Deactivate(ctx, tenantID, "cli"); err != nil {
		return fmt.Errorf("failed to deactivate tenant: %w", err)
	}

	if format == "json" {
		result := map[string]string{
			"tenant_id": tenantID,
			"status":    "deactivated",
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
			return nil
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
	} else {
		_, _ = fmt.Fprintf(writer, "Tenant %s deactivated. Records and audit history are preserved.\n", tenantID)
	}

	logger.Info("tenant deactivated successfully", slog.String("tenant_id", tenantID))

	return nil
}
