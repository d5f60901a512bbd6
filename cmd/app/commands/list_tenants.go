package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
	tenantUseCase "github.com/allisson/tokenvault/internal/tenant/usecase"
)

// RunListTenants lists active tenants ordered by ID with pagination. Outputs
// one line per tenant in text format, or the full records in JSON format.
// Credential material is never included.
func RunListTenants(
	ctx context.Context,
	tenantUC tenantUseCase.TenantUseCase,
	logger *slog.Logger,
	writer io.Writer,
	offset int,
	limit int,
	format string,
) error {
	tenants, err := tenantUC.List(ctx, offset, limit)
	if err != nil {
		return fmt.Errorf("failed to list tenants: %w", err)
	}

	if format == "json" {
		outputListTenantsJSON(writer, tenants)
	} else {
		outputListTenantsText(writer, tenants)
	}

	logger.Info("tenants listed", slog.Int("count", len(tenants)))

	return nil
}

// outputListTenantsText outputs one line per tenant.
func outputListTenantsText(writer io.Writer, tenants []*tenantDomain.Tenant) {
	if len(tenants) == 0 {
		_, _ = fmt.Fprintln(writer, "No tenants found.")
		return
	}

	for _, tenant := range tenants {
		admin := ""
		if tenant.IsAdmin {
			admin = " [admin]"
		}
		_, _ = fmt.Fprintf(writer, "%s\t%s\t%s%s\n", tenant.ID, tenant.Name, tenant.Status, admin)
	}
}

// outputListTenantsJSON outputs the tenant records in JSON format.
func outputListTenantsJSON(writer io.Writer, tenants []*tenantDomain.Tenant) {
	type tenantRecord struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Status  string `json:"status"`
		IsAdmin bool   `json:"is_admin"`
	}

	records := make([]tenantRecord, 0, len(tenants))
	for _, tenant := range tenants {
		records = append(records, tenantRecord{
			ID:      tenant.ID,
			Name:    tenant.Name,
			Status:  string(tenant.Status),
			IsAdmin: tenant.IsAdmin,
		})
	}

	jsonBytes, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
