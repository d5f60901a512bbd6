package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
)

func TestRunUpdateTenant(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	existing := &tenantDomain.Tenant{
		ID:     "acme-corp",
		Name:   "Acme Corp",
		Status: tenantDomain.StatusActive,
		EncryptionSettings: tenantDomain.EncryptionSettings{
			Algorithm:          "aes-gcm",
			KeyRotationPolicy:  "90d",
			MasterKeyReference: "master-key-1",
		},
		ComplianceDefaults: tenantDomain.ComplianceDefaults{PCIScope: true},
	}

	t.Run("rename-keeps-existing-settings", func(t *testing.T) {
		mockUseCase := &MockTenantUseCase{}
		mockUseCase.On("Get", ctx, "acme-corp").Return(existing, nil)

		expectedInput := &tenantDomain.UpdateTenantInput{
			Name: "Acme Corporation",
			EncryptionSettings: tenantDomain.EncryptionSettings{
				Algorithm:         "aes-gcm",
				KeyRotationPolicy: "90d",
			},
			ComplianceDefaults: tenantDomain.ComplianceDefaults{PCIScope: true},
			ModifiedBy:         "cli",
		}
		mockUseCase.On("Update", ctx, "acme-corp", expectedInput).
			Return(&tenantDomain.UpdateTenantOutput{Tenant: existing}, nil)

		var out bytes.Buffer
		err := RunUpdateTenant(ctx, mockUseCase, logger, &out, "acme-corp", "Acme Corporation", "", "", "", false, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Acme Corporation")
		require.NotContains(t, out.String(), "Credential:")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("change-rotation-policy", func(t *testing.T) {
		mockUseCase := &MockTenantUseCase{}
		mockUseCase.On("Get", ctx, "acme-corp").Return(existing, nil)

		expectedInput := &tenantDomain.UpdateTenantInput{
			Name: "Acme Corp",
			EncryptionSettings: tenantDomain.EncryptionSettings{
				Algorithm:         "aes-gcm",
				KeyRotationPolicy: "30d",
			},
			ComplianceDefaults: tenantDomain.ComplianceDefaults{PCIScope: true},
			ModifiedBy:         "cli",
		}
		mockUseCase.On("Update", ctx, "acme-corp", expectedInput).
			Return(&tenantDomain.UpdateTenantOutput{Tenant: existing}, nil)

		err := RunUpdateTenant(ctx, mockUseCase, logger, &bytes.Buffer{}, "acme-corp", "", "", "30d", "", false, "json")

		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("rotate-credential-prints-it-once", func(t *testing.T) {
		mockUseCase := &MockTenantUseCase{}
		mockUseCase.On("Get", ctx, "acme-corp").Return(existing, nil)

		expectedInput := &tenantDomain.UpdateTenantInput{
			Name: "Acme Corp",
			EncryptionSettings: tenantDomain.EncryptionSettings{
				Algorithm:         "aes-gcm",
				KeyRotationPolicy: "90d",
			},
			ComplianceDefaults: tenantDomain.ComplianceDefaults{PCIScope: true},
			RotateCredential:   true,
			ModifiedBy:         "cli",
		}
		mockUseCase.On("Update", ctx, "acme-corp", expectedInput).
			Return(&tenantDomain.UpdateTenantOutput{
				Tenant:          existing,
				PlainCredential: "tvk_rotated_credential",
			}, nil)

		var out bytes.Buffer
		err := RunUpdateTenant(ctx, mockUseCase, logger, &out, "acme-corp", "", "", "", "", true, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "tvk_rotated_credential")
		require.Contains(t, out.String(), "shown only once")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("tenant-not-found", func(t *testing.T) {
		mockUseCase := &MockTenantUseCase{}
		mockUseCase.On("Get", ctx, "missing").Return(nil, tenantDomain.ErrTenantNotFound)

		err := RunUpdateTenant(ctx, mockUseCase, logger, &bytes.Buffer{}, "missing", "New Name", "", "", "", false, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to get existing tenant")
		mockUseCase.AssertNotCalled(t, "Update")
	})

	t.Run("invalid-compliance-json", func(t *testing.T) {
		mockUseCase := &MockTenantUseCase{}
		mockUseCase.On("Get", ctx, "acme-corp").Return(existing, nil)

		err := RunUpdateTenant(ctx, mockUseCase, logger, &bytes.Buffer{}, "acme-corp", "", "", "", "not-json", false, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse compliance JSON")
		mockUseCase.AssertNotCalled(t, "Update")
	})
}
