// Package domain defines tokenization domain models.
//
// A token is an opaque reference to an encrypted sensitive value. Tokens are
// tenant-scoped: the tenant ID is part of every lookup, part of the encryption
// key ID, and bound into the ciphertext as associated data, so a token can
// never be read across a tenant boundary.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ComplianceFlags marks which compliance regimes a token's underlying data
// falls under. Flags are stored unencrypted so compliance reporting never
// needs to touch ciphertext.
type ComplianceFlags struct {
	PCIScope      bool `json:"pci_scope"`
	HIPAAScope    bool `json:"hipaa_scope"`
	SOC2Scope     bool `json:"soc2_scope"`
	ISO27001Scope bool `json:"iso27001_scope"`
}

// Token represents a tokenized sensitive value. The plaintext exists only as
// ciphertext sealed with a tenant- and epoch-specific derived key.
type Token struct {
	ID              uuid.UUID // Unique identifier (UUIDv7), returned to callers as the token
	TenantID        string    // Owning tenant, immutable
	Type            string    // Caller-declared data type (e.g. "card", "ssn")
	Ciphertext      []byte
	Nonce           []byte
	Algorithm       string            // AEAD algorithm that sealed the ciphertext
	EncryptionKeyID string            // Identifies the derived key that sealed the ciphertext
	Fingerprint     *string           // SHA-256 hex of the plaintext for equality lookups (nil if disabled)
	Metadata        map[string]string // Optional display data stored unencrypted (e.g. last 4 digits)
	Compliance      ComplianceFlags
	CreatedAt       time.Time
	CreatedBy       string
	ExpiresAt       *time.Time // nil means the token never expires
	LastAccessedAt  *time.Time
	LastAccessedBy  string
}

// IsExpired reports whether the token has passed its expiry time.
func (t *Token) IsExpired() bool {
	return t.ExpiresAt != nil && time.Now().UTC().After(*t.ExpiresAt)
}

// TokenizeInput contains the parameters for tokenizing a sensitive value.
// A nil Compliance falls back to the tenant's compliance defaults.
type TokenizeInput struct {
	Value               []byte
	Type                string
	Metadata            map[string]string
	Compliance          *ComplianceFlags
	ExpiresAt           *time.Time
	GenerateFingerprint bool // opt-in: store a SHA-256 fingerprint of the value for equality lookups
	UserID              string
}
