// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
	customValidation "github.com/allisson/tokenvault/internal/validation"
)

// EncryptionSettingsRequest carries a tenant's encryption configuration.
// Zero-valued fields fall back to the platform defaults.
type EncryptionSettingsRequest struct {
	Algorithm          string `json:"algorithm"`            // "aes-gcm" or "chacha20-poly1305"
	KeyRotationPolicy  string `json:"key_rotation_policy"`  // "90d" or "none"
	MasterKeyReference string `json:"master_key_reference"` // Reference to the master key, immutable after creation
}

// ComplianceDefaultsRequest carries a tenant's default compliance flags.
type ComplianceDefaultsRequest struct {
	PCIScope      bool `json:"pci_scope"`
	HIPAAScope    bool `json:"hipaa_scope"`
	SOC2Scope     bool `json:"soc2_scope"`
	ISO27001Scope bool `json:"iso27001_scope"`
}

// CreateTenantRequest contains the parameters for registering a new tenant.
type CreateTenantRequest struct {
	ID                 string                     `json:"id"`
	Name               string                     `json:"name"`
	IsAdmin            bool                       `json:"is_admin"`
	EncryptionSettings *EncryptionSettingsRequest `json:"encryption_settings,omitempty"`
	ComplianceDefaults *ComplianceDefaultsRequest `json:"compliance_defaults,omitempty"`
}

// Validate checks if the create tenant request is valid.
func (r *CreateTenantRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// MapCreateTenantRequestToInput converts a create request to a domain input.
func MapCreateTenantRequestToInput(r *CreateTenantRequest, createdBy string) *tenantDomain.CreateTenantInput {
	input := &tenantDomain.CreateTenantInput{
		ID:        r.ID,
		Name:      r.Name,
		IsAdmin:   r.IsAdmin,
		CreatedBy: createdBy,
	}
	if r.EncryptionSettings != nil {
		input.EncryptionSettings = tenantDomain.EncryptionSettings{
			Algorithm:          r.EncryptionSettings.Algorithm,
			KeyRotationPolicy:  r.EncryptionSettings.KeyRotationPolicy,
			MasterKeyReference: r.EncryptionSettings.MasterKeyReference,
		}
	}
	if r.ComplianceDefaults != nil {
		input.ComplianceDefaults = tenantDomain.ComplianceDefaults{
			PCIScope:      r.ComplianceDefaults.PCIScope,
			HIPAAScope:    r.ComplianceDefaults.HIPAAScope,
			SOC2Scope:     r.ComplianceDefaults.SOC2Scope,
			ISO27001Scope: r.ComplianceDefaults.ISO27001Scope,
		}
	}
	return input
}

// UpdateTenantRequest contains the mutable fields of a tenant. Setting
// rotate_credential replaces the tenant's API credential; the new credential
// is returned once in the response and the old one stops working immediately.
type UpdateTenantRequest struct {
	Name               string                     `json:"name"`
	EncryptionSettings *EncryptionSettingsRequest `json:"encryption_settings,omitempty"`
	ComplianceDefaults *ComplianceDefaultsRequest `json:"compliance_defaults,omitempty"`
	RotateCredential   bool                       `json:"rotate_credential,omitempty"`
}

// Validate checks if the update tenant request is valid.
func (r *UpdateTenantRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// MapUpdateTenantRequestToInput converts an update request to a domain input.
func MapUpdateTenantRequestToInput(r *UpdateTenantRequest, modifiedBy string) *tenantDomain.UpdateTenantInput {
	input := &tenantDomain.UpdateTenantInput{
		Name:             r.Name,
		RotateCredential: r.RotateCredential,
		ModifiedBy:       modifiedBy,
	}
	if r.EncryptionSettings != nil {
		input.EncryptionSettings = tenantDomain.EncryptionSettings{
			Algorithm:          r.EncryptionSettings.Algorithm,
			KeyRotationPolicy:  r.EncryptionSettings.KeyRotationPolicy,
			MasterKeyReference: r.EncryptionSettings.MasterKeyReference,
		}
	}
	if r.ComplianceDefaults != nil {
		input.ComplianceDefaults = tenantDomain.ComplianceDefaults{
			PCIScope:      r.ComplianceDefaults.PCIScope,
			HIPAAScope:    r.ComplianceDefaults.HIPAAScope,
			SOC2Scope:     r.ComplianceDefaults.SOC2Scope,
			ISO27001Scope: r.ComplianceDefaults.ISO27001Scope,
		}
	}
	return input
}
