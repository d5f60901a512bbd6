package dto

import (
	"time"

	tokenizationDomain "github.com/allisson/tokenvault/internal/tokenization/domain"
)

// ComplianceFlagsResponse represents per-token compliance flags in API responses.
type ComplianceFlagsResponse struct {
	PCIScope      bool `json:"pci_scope"`
	HIPAAScope    bool `json:"hipaa_scope"`
	SOC2Scope     bool `json:"soc2_scope"`
	ISO27001Scope bool `json:"iso27001_scope"`
}

// TokenResponse represents token metadata in API responses. The ciphertext,
// nonce, and key identifiers are never exposed.
type TokenResponse struct {
	Token          string                  `json:"token"`
	Type           string                  `json:"type"`
	Fingerprint    *string                 `json:"fingerprint,omitempty"`
	Metadata       map[string]string       `json:"metadata,omitempty"`
	Compliance     ComplianceFlagsResponse `json:"compliance"`
	CreatedAt      time.Time               `json:"created_at"`
	CreatedBy      string                  `json:"created_by"`
	ExpiresAt      *time.Time              `json:"expires_at,omitempty"`
	LastAccessedAt *time.Time              `json:"last_accessed_at,omitempty"`
	LastAccessedBy string                  `json:"last_accessed_by,omitempty"`
}

// MapTokenToResponse converts a domain token to an API response.
func MapTokenToResponse(token *tokenizationDomain.Token) TokenResponse {
	return TokenResponse{
		Token:       token.ID.String(),
		Type:        token.Type,
		Fingerprint: token.Fingerprint,
		Metadata:    token.Metadata,
		Compliance: ComplianceFlagsResponse{
			PCIScope:      token.Compliance.PCIScope,
			HIPAAScope:    token.Compliance.HIPAAScope,
			SOC2Scope:     token.Compliance.SOC2Scope,
			ISO27001Scope: token.Compliance.ISO27001Scope,
		},
		CreatedAt:      token.CreatedAt,
		CreatedBy:      token.CreatedBy,
		ExpiresAt:      token.ExpiresAt,
		LastAccessedAt: token.LastAccessedAt,
		LastAccessedBy: token.LastAccessedBy,
	}
}

// DetokenizeResponse represents the result of detokenizing a token.
type DetokenizeResponse struct {
	Value string        `json:"value"` // Base64-encoded original value
	Token TokenResponse `json:"token"`
}

// AuditLogResponse represents an audit trail entry in API responses.
type AuditLogResponse struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Action    string    `json:"action"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ListAuditLogsResponse represents a token's audit trail, newest first.
type ListAuditLogsResponse struct {
	AuditLogs []AuditLogResponse `json:"audit_logs"`
}

// MapAuditLogsToListResponse converts domain audit logs to a list API response.
func MapAuditLogsToListResponse(auditLogs []*tokenizationDomain.AuditLog) ListAuditLogsResponse {
	responses := make([]AuditLogResponse, 0, len(auditLogs))
	for _, auditLog := range auditLogs {
		responses = append(responses, AuditLogResponse{
			ID:        auditLog.ID.String(),
			Token:     auditLog.TokenID.String(),
			Action:    string(auditLog.Action),
			UserID:    auditLog.UserID,
			CreatedAt: auditLog.CreatedAt,
		})
	}
	return ListAuditLogsResponse{AuditLogs: responses}
}
