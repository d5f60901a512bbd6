// Package domain defines tenant domain models for the multi-tenant vault.
//
// Tenants are the isolation boundary of the system: every token, key and audit
// entry belongs to exactly one tenant, and tenant records carry the encryption
// settings and compliance defaults applied to the data they tokenize.
package domain

import (
	"fmt"
	"time"
)

// Status represents the lifecycle state of a tenant.
type Status string

const (
	// StatusActive allows the tenant to tokenize and detokenize data.
	StatusActive Status = "active"

	// StatusDeactivated blocks all vault operations for the tenant while
	// preserving its records for audit purposes.
	StatusDeactivated Status = "deactivated"
)

// EncryptionSettings holds the per-tenant cryptographic configuration.
type EncryptionSettings struct {
	Algorithm          string `json:"algorithm"`            // AEAD algorithm for new tokens
	KeyRotationPolicy  string `json:"key_rotation_policy"`  // e.g. "90d", "none"
	MasterKeyReference string `json:"master_key_reference"` // selects the master key used for derivation
}

// ComplianceDefaults holds the compliance scopes applied to tokens created
// without explicit flags.
type ComplianceDefaults struct {
	PCIScope      bool `json:"pci_scope"`
	HIPAAScope    bool `json:"hipaa_scope"`
	SOC2Scope     bool `json:"soc2_scope"`
	ISO27001Scope bool `json:"iso27001_scope"`
}

// Tenant represents an isolated vault namespace. The ID is chosen by the
// operator at creation time and is immutable afterwards: it is baked into
// encryption key IDs and AAD, so renaming a tenant would orphan its tokens.
type Tenant struct {
	ID                 string
	Name               string
	CredentialHash     string //nolint:gosec // Argon2id hash of the API credential (not plaintext)
	CredentialDigest   string // SHA-256 hex digest of the credential, used for lookups
	Status             Status
	IsAdmin            bool // admins may manage other tenants
	EncryptionSettings EncryptionSettings
	ComplianceDefaults ComplianceDefaults
	CreatedAt          time.Time
	CreatedBy          string
	LastModifiedAt     time.Time
	LastModifiedBy     string
}

// IsActive reports whether the tenant may perform vault operations.
func (t *Tenant) IsActive() bool {
	return t.Status == StatusActive
}

// DefaultEncryptionSettings returns the encryption settings applied when a
// tenant is created without explicit configuration.
func DefaultEncryptionSettings(tenantID string) EncryptionSettings {
	return EncryptionSettings{
		Algorithm:          "aes-gcm",
		KeyRotationPolicy:  "90d",
		MasterKeyReference: fmt.Sprintf("%s-master-key", tenantID),
	}
}

// CreateTenantInput contains the parameters for registering a new tenant.
// Zero-valued EncryptionSettings fields fall back to DefaultEncryptionSettings.
type CreateTenantInput struct {
	ID                 string
	Name               string
	IsAdmin            bool
	EncryptionSettings EncryptionSettings
	ComplianceDefaults ComplianceDefaults
	CreatedBy          string
}

// CreateTenantOutput contains the result of registering a tenant.
// SECURITY: PlainCredential is only returned once and must be securely
// transmitted to the tenant. It is never retrievable again.
type CreateTenantOutput struct {
	Tenant          *Tenant
	PlainCredential string
}

// UpdateTenantInput contains the mutable fields of a tenant. The ID and master
// key reference cannot be changed through updates. RotateCredential replaces
// the tenant's API credential with a freshly generated one, invalidating the
// old credential immediately.
type UpdateTenantInput struct {
	Name               string
	EncryptionSettings EncryptionSettings
	ComplianceDefaults ComplianceDefaults
	RotateCredential   bool
	ModifiedBy         string
}

// UpdateTenantOutput contains the result of updating a tenant.
// SECURITY: PlainCredential is set only when the credential was rotated, is
// returned once, and is never retrievable again.
type UpdateTenantOutput struct {
	Tenant          *Tenant
	PlainCredential string
}
