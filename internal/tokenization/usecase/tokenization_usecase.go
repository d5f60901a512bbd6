// Package usecase implements the tokenization engine.
//
// Coordinates per-tenant key derivation, AEAD encryption, token persistence,
// and the append-only audit trail. Uses TxManager so every data mutation and
// its audit entry commit in one transaction.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/tokenvault/internal/crypto/domain"
	cryptoService "github.com/allisson/tokenvault/internal/crypto/service"
	"github.com/allisson/tokenvault/internal/database"
	apperrors "github.com/allisson/tokenvault/internal/errors"
	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
	tokenizationDomain "github.com/allisson/tokenvault/internal/tokenization/domain"
)

// tokenizationUseCase implements TokenizationUseCase.
type tokenizationUseCase struct {
	txManager   database.TxManager
	tokenRepo   TokenRepository
	auditRepo   AuditLogRepository
	aeadManager cryptoService.AEADManager
	keyManager  cryptoService.KeyManager
	hashService cryptoService.HashService
}

// keySpec builds the key derivation spec from a tenant's encryption settings.
func keySpec(tenant *tenantDomain.Tenant) cryptoService.KeySpec {
	return cryptoService.KeySpec{
		TenantID:           tenant.ID,
		MasterKeyReference: tenant.EncryptionSettings.MasterKeyReference,
		RotationPolicy:     tenant.EncryptionSettings.KeyRotationPolicy,
	}
}

// newAuditLog builds an audit entry for a token operation.
func newAuditLog(
	tenantID string,
	tokenID uuid.UUID,
	action tokenizationDomain.Action,
	userID string,
) *tokenizationDomain.AuditLog {
	return &tokenizationDomain.AuditLog{
		ID:        uuid.Must(uuid.NewV7()),
		TokenID:   tokenID,
		TenantID:  tenantID,
		Action:    action,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}

// Tokenize encrypts a sensitive value and stores it as a new token.
func (t *tokenizationUseCase) Tokenize(
	ctx context.Context,
	tenant *tenantDomain.Tenant,
	input *tokenizationDomain.TokenizeInput,
) (*tokenizationDomain.Token, error) {
	if !tenant.IsActive() {
		return nil, tenantDomain.ErrTenantDeactivated
	}

	alg, err := cryptoDomain.ParseAlgorithm(tenant.EncryptionSettings.Algorithm)
	if err != nil {
		return nil, err
	}

	// Derive the key for the tenant's current rotation epoch
	key, keyID, err := t.keyManager.KeyForCurrentEpoch(ctx, keySpec(tenant))
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	cipher, err := t.aeadManager.CreateCipher(key, alg)
	if err != nil {
		return nil, err
	}

	// The tenant ID as AAD binds the ciphertext to its owner: even with the
	// right key, it cannot be opened under another tenant's identity.
	ciphertext, nonce, err := cipher.Encrypt(input.Value, []byte(tenant.ID))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encrypt value")
	}

	// Fingerprinting is opt-in: storing a stable hash of the plaintext is a
	// correlation surface the caller must ask for.
	var fingerprint *string
	if input.GenerateFingerprint {
		fp := t.hashService.Fingerprint(input.Value)
		fingerprint = &fp
	}

	compliance := tokenizationDomain.ComplianceFlags(tenant.ComplianceDefaults)
	if input.Compliance != nil {
		compliance = *input.Compliance
	}

	token := &tokenizationDomain.Token{
		ID:              uuid.Must(uuid.NewV7()),
		TenantID:        tenant.ID,
		Type:            input.Type,
		Ciphertext:      ciphertext,
		Nonce:           nonce,
		Algorithm:       string(alg),
		EncryptionKeyID: keyID,
		Fingerprint:     fingerprint,
		Metadata:        input.Metadata,
		Compliance:      compliance,
		CreatedAt:       time.Now().UTC(),
		CreatedBy:       input.UserID,
		ExpiresAt:       input.ExpiresAt,
	}

	// Persist the token and its creation entry atomically
	err = t.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := t.tokenRepo.Create(ctx, token); err != nil {
			return err
		}
		return t.auditRepo.Create(ctx, newAuditLog(tenant.ID, token.ID, tokenizationDomain.ActionCreated, input.UserID))
	})
	if err != nil {
		return nil, err
	}

	return token, nil
}

// Detokenize decrypts and returns the original sensitive value.
func (t *tokenizationUseCase) Detokenize(
	ctx context.Context,
	tenant *tenantDomain.Tenant,
	tokenID uuid.UUID,
	userID string,
) ([]byte, *tokenizationDomain.Token, error) {
	token, err := t.tokenRepo.Get(ctx, tenant.ID, tokenID)
	if err != nil {
		return nil, nil, err
	}

	if token.IsExpired() {
		return nil, nil, tokenizationDomain.ErrTokenExpired
	}

	alg, err := cryptoDomain.ParseAlgorithm(token.Algorithm)
	if err != nil {
		return nil, nil, err
	}

	// Re-derive the key that sealed this ciphertext, which may belong to an
	// epoch older than the tenant's current one
	key, err := t.keyManager.KeyForID(ctx, keySpec(tenant), token.EncryptionKeyID)
	if err != nil {
		return nil, nil, err
	}
	defer cryptoDomain.Zero(key)

	cipher, err := t.aeadManager.CreateCipher(key, alg)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := cipher.Decrypt(token.Ciphertext, token.Nonce, []byte(tenant.ID))
	if err != nil {
		// Authentication failure before any bookkeeping: no data was
		// disclosed, so no access entry is written.
		return nil, nil, cryptoDomain.ErrDecryptionFailed
	}

	// Record the access and its audit entry atomically
	now := time.Now().UTC()
	err = t.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := t.tokenRepo.UpdateAccess(ctx, tenant.ID, tokenID, now, userID); err != nil {
			return err
		}
		return t.auditRepo.Create(ctx, newAuditLog(tenant.ID, tokenID, tokenizationDomain.ActionDataAccessed, userID))
	})
	if err != nil {
		cryptoDomain.Zero(plaintext)
		return nil, nil, err
	}

	token.LastAccessedAt = &now
	token.LastAccessedBy = userID

	return plaintext, token, nil
}

// GetToken retrieves a token's metadata without decrypting its value. The
// read still counts as an access: bookkeeping and the audit entry commit
// together, just like a data access.
func (t *tokenizationUseCase) GetToken(
	ctx context.Context,
	tenant *tenantDomain.Tenant,
	tokenID uuid.UUID,
	userID string,
) (*tokenizationDomain.Token, error) {
	token, err := t.tokenRepo.Get(ctx, tenant.ID, tokenID)
	if err != nil {
		return nil, err
	}

	if err := t.recordMetadataAccess(ctx, tenant.ID, token, userID); err != nil {
		return nil, err
	}

	return token, nil
}

// FindTokenByFingerprint retrieves a token's metadata by the fingerprint of
// its plaintext. Only tokens created with fingerprinting enabled can be found
// this way.
func (t *tokenizationUseCase) FindTokenByFingerprint(
	ctx context.Context,
	tenant *tenantDomain.Tenant,
	fingerprint string,
	userID string,
) (*tokenizationDomain.Token, error) {
	token, err := t.tokenRepo.GetByFingerprint(ctx, tenant.ID, fingerprint)
	if err != nil {
		return nil, err
	}

	if err := t.recordMetadataAccess(ctx, tenant.ID, token, userID); err != nil {
		return nil, err
	}

	return token, nil
}

// recordMetadataAccess updates the token's access bookkeeping and appends a
// MetadataAccessed entry in one transaction, mutating the token in place so
// callers return the state they just committed.
func (t *tokenizationUseCase) recordMetadataAccess(
	ctx context.Context,
	tenantID string,
	token *tokenizationDomain.Token,
	userID string,
) error {
	now := time.Now().UTC()
	err := t.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := t.tokenRepo.UpdateAccess(ctx, tenantID, token.ID, now, userID); err != nil {
			return err
		}
		return t.auditRepo.Create(ctx, newAuditLog(tenantID, token.ID, tokenizationDomain.ActionMetadataAccessed, userID))
	})
	if err != nil {
		return err
	}

	token.LastAccessedAt = &now
	token.LastAccessedBy = userID
	return nil
}

// DeleteToken removes a token and its ciphertext.
func (t *tokenizationUseCase) DeleteToken(
	ctx context.Context,
	tenant *tenantDomain.Tenant,
	tokenID uuid.UUID,
	userID string,
) (bool, error) {
	var deleted bool

	err := t.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = t.tokenRepo.Delete(ctx, tenant.ID, tokenID)
		if err != nil {
			return err
		}
		if !deleted {
			// Already gone: idempotent no-op, nothing to audit.
			return nil
		}
		return t.auditRepo.Create(ctx, newAuditLog(tenant.ID, tokenID, tokenizationDomain.ActionDeleted, userID))
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

// ListAuditLogs retrieves a token's audit trail, newest first.
func (t *tokenizationUseCase) ListAuditLogs(
	ctx context.Context,
	tenant *tenantDomain.Tenant,
	tokenID uuid.UUID,
	userID string,
) ([]*tokenizationDomain.AuditLog, error) {
	// Scope check first so cross-tenant probes fail as not-found without
	// leaving a trace in the other tenant's trail
	if _, err := t.tokenRepo.Get(ctx, tenant.ID, tokenID); err != nil {
		return nil, err
	}

	// Read before recording the access, so the returned trail excludes the
	// entry for this call
	auditLogs, err := t.auditRepo.ListByToken(ctx, tenant.ID, tokenID)
	if err != nil {
		return nil, err
	}

	err = t.txManager.WithTx(ctx, func(ctx context.Context) error {
		return t.auditRepo.Create(ctx, newAuditLog(tenant.ID, tokenID, tokenizationDomain.ActionAuditAccessed, userID))
	})
	if err != nil {
		return nil, err
	}

	return auditLogs, nil
}

// NewTokenizationUseCase creates a new TokenizationUseCase with injected dependencies.
func NewTokenizationUseCase(
	txManager database.TxManager,
	tokenRepo TokenRepository,
	auditRepo AuditLogRepository,
	aeadManager cryptoService.AEADManager,
	keyManager cryptoService.KeyManager,
	hashService cryptoService.HashService,
) TokenizationUseCase {
	return &tokenizationUseCase{
		txManager:   txManager,
		tokenRepo:   tokenRepo,
		auditRepo:   auditRepo,
		aeadManager: aeadManager,
		keyManager:  keyManager,
		hashService: hashService,
	}
}
