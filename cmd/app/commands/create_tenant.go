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

// RunCreateTenant registers a new tenant and prints its API credential.
// Encryption settings fall back to the platform defaults when flags are
// omitted. Outputs the tenant ID and plain credential in either text or JSON
// format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateTenant(
	ctx context.Context,
	tenantUC tenantUseCase.TenantUseCase,
	logger *slog.Logger,
	writer io.Writer,
	tenantID string,
	name string,
	isAdmin bool,
	algorithm string,
	rotationPolicy string,
	masterKeyReference string,
	complianceJSON string,
	format string,
) error {
	logger.Info("creating new tenant", slog.String("tenant_id", tenantID))

	var compliance tenantDomain.ComplianceDefaults
	if complianceJSON != "" {
		if err := json.Unmarshal([]byte(complianceJSON), &compliance); err != nil {
			return fmt.Errorf("failed to parse compliance JSON: %w", err)
		}
	}

	input := &tenantDomain.CreateTenantInput{
		ID:      tenantID,
		Name:    name,
		IsAdmin: isAdmin,
		EncryptionSettings: tenantDomain.EncryptionSettings{
			Algorithm:          algorithm,
			KeyRotationPolicy:  rotationPolicy,
			MasterKeyReference: masterKeyReference,
		},
		ComplianceDefaults: compliance,
		CreatedBy:          "cli",
	}

	output, err := tenantUC.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	if format == "json" {
		outputCreateTenantJSON(writer, output)
	} else {
		outputCreateTenantText(writer, output)
	}

	logger.Info("tenant created successfully",
		slog.String("tenant_id", output.Tenant.ID),
		slog.String("name", name),
		slog.Bool("is_admin", isAdmin),
	)

	return nil
}

// outputCreateTenantText outputs the result in human-readable text format.
func outputCreateTenantText(writer io.Writer, output *tenantDomain.CreateTenantOutput) {
	_, _ = fmt.Fprintln(writer, "\nTenant created successfully!")
	_, _ = fmt.Fprintf(writer, "Tenant ID: %s\n", output.Tenant.ID)
	_, _ = fmt.Fprintf(writer, "Credential: %s\n", output.PlainCredential)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The credential is shown only once. Store it securely.")
}

// outputCreateTenantJSON outputs the result in JSON format for machine consumption.
func outputCreateTenantJSON(writer io.Writer, output *tenantDomain.CreateTenantOutput) {
	result := map[string]string{
		"tenant_id":  output.Tenant.ID,
		"credential": output.PlainCredential,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
