package dto

import (
	"time"

	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
)

// EncryptionSettingsResponse represents a tenant's encryption configuration in API responses.
type EncryptionSettingsResponse struct {
	Algorithm          string `json:"algorithm"`
	KeyRotationPolicy  string `json:"key_rotation_policy"`
	MasterKeyReference string `json:"master_key_reference"`
}

// ComplianceDefaultsResponse represents a tenant's default compliance flags in API responses.
type ComplianceDefaultsResponse struct {
	PCIScope      bool `json:"pci_scope"`
	HIPAAScope    bool `json:"hipaa_scope"`
	SOC2Scope     bool `json:"soc2_scope"`
	ISO27001Scope bool `json:"iso27001_scope"`
}

// TenantResponse represents a tenant in API responses.
// The credential hash and digest are never exposed.
type TenantResponse struct {
	ID                 string                     `json:"id"`
	Name               string                     `json:"name"`
	Status             string                     `json:"status"`
	IsAdmin            bool                       `json:"is_admin"`
	EncryptionSettings EncryptionSettingsResponse `json:"encryption_settings"`
	ComplianceDefaults ComplianceDefaultsResponse `json:"compliance_defaults"`
	CreatedAt          time.Time                  `json:"created_at"`
	CreatedBy          string                     `json:"created_by"`
	LastModifiedAt     time.Time                  `json:"last_modified_at"`
	LastModifiedBy     string                     `json:"last_modified_by"`
}

// MapTenantToResponse converts a domain tenant to an API response.
func MapTenantToResponse(tenant *tenantDomain.Tenant) TenantResponse {
	return TenantResponse{
		ID:      tenant.ID,
		Name:    tenant.Name,
		Status:  string(tenant.Status),
		IsAdmin: tenant.IsAdmin,
		EncryptionSettings: EncryptionSettingsResponse{
			Algorithm:          tenant.EncryptionSettings.Algorithm,
			KeyRotationPolicy:  tenant.EncryptionSettings.KeyRotationPolicy,
			MasterKeyReference: tenant.EncryptionSettings.MasterKeyReference,
		},
		ComplianceDefaults: ComplianceDefaultsResponse{
			PCIScope:      tenant.ComplianceDefaults.PCIScope,
			HIPAAScope:    tenant.ComplianceDefaults.HIPAAScope,
			SOC2Scope:     tenant.ComplianceDefaults.SOC2Scope,
			ISO27001Scope: tenant.ComplianceDefaults.ISO27001Scope,
		},
		CreatedAt:      tenant.CreatedAt,
		CreatedBy:      tenant.CreatedBy,
		LastModifiedAt: tenant.LastModifiedAt,
		LastModifiedBy: tenant.LastModifiedBy,
	}
}

// CreateTenantResponse represents the result of registering a tenant.
// SECURITY: Credential is only returned once at creation time and is never
// retrievable again.
type CreateTenantResponse struct {
	Tenant     TenantResponse `json:"tenant"`
	Credential string         `json:"credential"`
}

// MapTenantToCreateResponse converts a create output to an API response.
func MapTenantToCreateResponse(output *tenantDomain.CreateTenantOutput) CreateTenantResponse {
	return CreateTenantResponse{
		Tenant:     MapTenantToResponse(output.Tenant),
		Credential: output.PlainCredential,
	}
}

// UpdateTenantResponse represents the result of updating a tenant.
// SECURITY: Credential is set only when the update rotated the credential and
// is never retrievable again.
type UpdateTenantResponse struct {
	Tenant     TenantResponse `json:"tenant"`
	Credential string         `json:"credential,omitempty"`
}

// MapTenantToUpdateResponse converts an update output to an API response.
func MapTenantToUpdateResponse(output *tenantDomain.UpdateTenantOutput) UpdateTenantResponse {
	return UpdateTenantResponse{
		Tenant:     MapTenantToResponse(output.Tenant),
		Credential: output.PlainCredential,
	}
}

// ListTenantsResponse represents a paginated list of tenants.
type ListTenantsResponse struct {
	Tenants []TenantResponse `json:"tenants"`
}

// MapTenantsToListResponse converts domain tenants to a list API response.
func MapTenantsToListResponse(tenants []*tenantDomain.Tenant) ListTenantsResponse {
	responses := make([]TenantResponse, 0, len(tenants))
	for _, tenant := range tenants {
		responses = append(responses, MapTenantToResponse(tenant))
	}
	return ListTenantsResponse{Tenants: responses}
}
