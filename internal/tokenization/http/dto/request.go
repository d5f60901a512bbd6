// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	tokenizationDomain "github.com/allisson/tokenvault/internal/tokenization/domain"
	customValidation "github.com/allisson/tokenvault/internal/validation"
)

// ComplianceFlagsRequest carries per-token compliance flags. When omitted, the
// tenant's compliance defaults apply.
type ComplianceFlagsRequest struct {
	PCIScope      bool `json:"pci_scope"`
	HIPAAScope    bool `json:"hipaa_scope"`
	SOC2Scope     bool `json:"soc2_scope"`
	ISO27001Scope bool `json:"iso27001_scope"`
}

// MapComplianceFlagsRequestToDomain converts request compliance flags to domain flags.
func MapComplianceFlagsRequestToDomain(r *ComplianceFlagsRequest) *tokenizationDomain.ComplianceFlags {
	if r == nil {
		return nil
	}
	return &tokenizationDomain.ComplianceFlags{
		PCIScope:      r.PCIScope,
		HIPAAScope:    r.HIPAAScope,
		SOC2Scope:     r.SOC2Scope,
		ISO27001Scope: r.ISO27001Scope,
	}
}

// TokenizeRequest contains the parameters for tokenizing a sensitive value.
type TokenizeRequest struct {
	Value               string                  `json:"value"` // Base64-encoded sensitive value
	Type                string                  `json:"type"`  // Data classification, e.g. "card", "ssn"
	Metadata            map[string]string       `json:"metadata,omitempty"`
	Compliance          *ComplianceFlagsRequest `json:"compliance,omitempty"`
	TTL                 *int                    `json:"ttl,omitempty"`                  // Time-to-live in seconds (optional)
	GenerateFingerprint bool                    `json:"generate_fingerprint,omitempty"` // Store a plaintext fingerprint for equality lookups
}

// Validate checks if the tokenize request is valid.
func (r *TokenizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
		validation.Field(&r.Type,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.TTL,
			validation.When(r.TTL != nil, validation.Min(1)),
		),
	)
}
