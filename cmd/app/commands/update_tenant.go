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

// RunUpdateTenant updates an existing tenant's configuration. The name,
// encryption settings, and compliance defaults can be changed, and the API
// credential can be rotated; the tenant ID and master key reference remain
// unchanged. Flags that are omitted keep the tenant's current values. When
// rotating, the new credential is printed once and the old one stops working
// immediately.
//
// Requirements: Database must be migrated and the tenant must exist.
func RunUpdateTenant(
	ctx context.Context,
	tenantUC tenantUseCase.TenantUseCase,
	logger *slog.Logger,
	writer io.Writer,
	tenantID string,
	name string,
	algorithm string,
	rotationPolicy string,
	complianceJSON string,
	rotateCredential bool,
	format string,
) error {
	logger.Info("updating tenant", slog.String("tenant_id", tenantID))

	// Get existing tenant so omitted flags keep their current values
	existing, err := tenantUC.Get(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to get existing tenant: %w", err)
	}

	if name == "" {
		name = existing.Name
	}
	if algorithm == "" {
		algorithm = existing.EncryptionSettings.Algorithm
	}
	if rotationPolicy == "" {
		rotationPolicy = existing.EncryptionSettings.KeyRotationPolicy
	}

	compliance := existing.ComplianceDefaults
	if complianceJSON != "" {
		if err := json.Unmarshal([]byte(complianceJSON), &compliance); err != nil {
			return fmt.Errorf("failed to parse compliance JSON: %w", err)
		}
	}

	input := &tenantDomain.UpdateTenantInput{
		Name: name,
		EncryptionSettings: tenantDomain.EncryptionSettings{
			Algorithm:         algorithm,
			KeyRotationPolicy: rotationPolicy,
		},
		ComplianceDefaults: compliance,
		RotateCredential:   rotateCredential,
		ModifiedBy:         "cli",
	}

	output, err := tenantUC.Update(ctx, tenantID, input)
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}

	if format == "json" {
		outputUpdateTenantJSON(writer, tenantID, name, output.PlainCredential)
	} else {
		outputUpdateTenantText(writer, tenantID, name, output.PlainCredential)
	}

	logger.Info("tenant updated successfully",
		slog.String("tenant_id", tenantID),
		slog.String("name", name),
		slog.Bool("credential_rotated", rotateCredential),
	)

	return nil
}

// outputUpdateTenantText outputs the result in human-readable text format.
func outputUpdateTenantText(writer io.Writer, tenantID, name, plainCredential string) {
	_, _ = fmt.Fprintln(writer, "\nTenant updated successfully!")
	_, _ = fmt.Fprintf(writer, "Tenant ID: %s\n", tenantID)
	_, _ = fmt.Fprintf(writer, "Name: %s\n", name)
	if plainCredential != "" {
		_, _ = fmt.Fprintf(writer, "Credential: %s\n", plainCredential)
		_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The credential is shown only once. Store it securely.")
	}
}

// outputUpdateTenantJSON outputs the result in JSON format for machine consumption.
func outputUpdateTenantJSON(writer io.Writer, tenantID, name, plainCredential string) {
	result := map[string]string{
		"tenant_id": tenantID,
		"name":      name,
		"status":    "updated",
	}
	if plainCredential != "" {
		result["credential"] = plainCredential
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
