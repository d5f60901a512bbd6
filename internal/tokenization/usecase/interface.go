// Package usecase defines business logic interfaces for tokenization operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
	tokenizationDomain "github.com/allisson/tokenvault/internal/tokenization/domain"
)

// TokenRepository defines persistence operations for tokens. All reads and
// mutations are tenant-scoped: a token ID belonging to another tenant behaves
// exactly like a missing token. Implementations must support
// transaction-aware operations via context propagation.
type TokenRepository interface {
	// Create stores a new token in the repository.
	Create(ctx context.Context, token *tokenizationDomain.Token) error

	// Get retrieves a token by ID within the tenant's scope.
	// Returns ErrTokenNotFound if not found.
	Get(ctx context.Context, tenantID string, tokenID uuid.UUID) (*tokenizationDomain.Token, error)

	// UpdateAccess records the time and caller of the latest data access.
	UpdateAccess(ctx context.Context, tenantID string, tokenID uuid.UUID, accessedAt time.Time, accessedBy string) error

	// Delete removes a token within the tenant's scope. Returns true if a row
	// was deleted, false if the token was already gone.
	Delete(ctx context.Context, tenantID string, tokenID uuid.UUID) (bool, error)

	// GetByFingerprint retrieves a token by its plaintext fingerprint within
	// the tenant's scope. Returns ErrTokenNotFound if not found.
	GetByFingerprint(ctx context.Context, tenantID string, fingerprint string) (*tokenizationDomain.Token, error)
}

// AuditLogRepository defines persistence operations for the append-only audit
// trail. Implementations must support transaction-aware operations via context
// propagation so entries commit atomically with the operations they record.
type AuditLogRepository interface {
	// Create stores a new audit log entry.
	Create(ctx context.Context, auditLog *tokenizationDomain.AuditLog) error

	// ListByToken retrieves the audit entries for a token within the tenant's
	// scope, newest first.
	ListByToken(ctx context.Context, tenantID string, tokenID uuid.UUID) ([]*tokenizationDomain.AuditLog, error)
}

// TokenizationUseCase defines the core vault operations. Every operation runs
// on behalf of a resolved tenant and records exactly one audit entry committed
// atomically with any data mutation.
type TokenizationUseCase interface {
	// Tokenize encrypts a sensitive value and stores it as a new token.
	// Compliance flags default to the tenant's compliance defaults when the
	// input carries none. Returns ErrTenantDeactivated for inactive tenants.
	Tokenize(
		ctx context.Context,
		tenant *tenantDomain.Tenant,
		input *tokenizationDomain.TokenizeInput,
	) (*tokenizationDomain.Token, error)

	// Detokenize decrypts and returns the original sensitive value.
	//
	// Returns ErrTokenNotFound for missing, expired, and cross-tenant tokens
	// alike. A ciphertext that fails authentication yields ErrDecryptionFailed
	// and writes no access entry: the data was never disclosed.
	//
	// Security Note: Callers MUST zero the returned plaintext after use:
	// cryptoDomain.Zero(plaintext).
	Detokenize(
		ctx context.Context,
		tenant *tenantDomain.Tenant,
		tokenID uuid.UUID,
		userID string,
	) ([]byte, *tokenizationDomain.Token, error)

	// GetToken retrieves a token's metadata without decrypting its value. The
	// read updates the token's access bookkeeping and records a metadata-access
	// entry. Returns ErrTokenNotFound for missing and cross-tenant tokens.
	GetToken(
		ctx context.Context,
		tenant *tenantDomain.Tenant,
		tokenID uuid.UUID,
		userID string,
	) (*tokenizationDomain.Token, error)

	// FindTokenByFingerprint retrieves a token's metadata by the fingerprint of
	// its plaintext. Only tokens created with fingerprinting enabled can be
	// found this way; everything else is ErrTokenNotFound. The read updates the
	// token's access bookkeeping and records a metadata-access entry.
	FindTokenByFingerprint(
		ctx context.Context,
		tenant *tenantDomain.Tenant,
		fingerprint string,
		userID string,
	) (*tokenizationDomain.Token, error)

	// DeleteToken removes a token and its ciphertext. Deletion is idempotent:
	// the first call returns true, repeated calls return false without error.
	// Audit entries for the token are preserved.
	DeleteToken(
		ctx context.Context,
		tenant *tenantDomain.Tenant,
		tokenID uuid.UUID,
		userID string,
	) (bool, error)

	// ListAuditLogs retrieves a token's audit trail, newest first. The access
	// itself is recorded, but the returned list reflects the trail as it was
	// before this call.
	ListAuditLogs(
		ctx context.Context,
		tenant *tenantDomain.Tenant,
		tokenID uuid.UUID,
		userID string,
	) ([]*tokenizationDomain.AuditLog, error)
}
