// Package usecase implements business logic orchestration for tenant management.
package usecase

import (
	"context"
	"fmt"
	"time"

	cryptoDomain "github.com/allisson/tokenvault/internal/crypto/domain"
	tenantDomain "github.com/allisson/tokenvault/internal/tenant/domain"
	tenantService "github.com/allisson/tokenvault/internal/tenant/service"
)

// tenantUseCase implements TenantUseCase for managing the tenant registry.
type tenantUseCase struct {
	tenantRepo        TenantRepository
	credentialService tenantService.CredentialService
}

// Create registers a new tenant with a generated API credential.
func (t *tenantUseCase) Create(
	ctx context.Context,
	input *tenantDomain.CreateTenantInput,
) (*tenantDomain.CreateTenantOutput, error) {
	settings, err := normalizeEncryptionSettings(input.ID, input.EncryptionSettings)
	if err != nil {
		return nil, err
	}

	plainCredential, hashedCredential, digest, err := t.credentialService.GenerateCredential()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tenant := &tenantDomain.Tenant{
		ID:                 input.ID,
		Name:               input.Name,
		CredentialHash:     hashedCredential,
		CredentialDigest:   digest,
		Status:             tenantDomain.StatusActive,
		IsAdmin:            input.IsAdmin,
		EncryptionSettings: settings,
		ComplianceDefaults: input.ComplianceDefaults,
		CreatedAt:          now,
		CreatedBy:          input.CreatedBy,
		LastModifiedAt:     now,
		LastModifiedBy:     input.CreatedBy,
	}

	if err := t.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	return &tenantDomain.CreateTenantOutput{
		Tenant:          tenant,
		PlainCredential: plainCredential,
	}, nil
}

// Get retrieves a tenant by ID including deactivated tenants.
func (t *tenantUseCase) Get(ctx context.Context, tenantID string) (*tenantDomain.Tenant, error) {
	return t.tenantRepo.Get(ctx, tenantID)
}

// Update modifies a tenant's name, encryption settings, and compliance defaults,
// and optionally rotates its API credential. The master key reference is
// immutable: changing it would make every existing token for the tenant
// undecryptable.
func (t *tenantUseCase) Update(
	ctx context.Context,
	tenantID string,
	input *tenantDomain.UpdateTenantInput,
) (*tenantDomain.UpdateTenantOutput, error) {
	tenant, err := t.tenantRepo.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	settings := input.EncryptionSettings
	settings.MasterKeyReference = tenant.EncryptionSettings.MasterKeyReference
	settings, err = normalizeEncryptionSettings(tenantID, settings)
	if err != nil {
		return nil, err
	}

	var plainCredential string
	if input.RotateCredential {
		var hashedCredential, digest string
		plainCredential, hashedCredential, digest, err = t.credentialService.GenerateCredential()
		if err != nil {
			return nil, err
		}
		tenant.CredentialHash = hashedCredential
		tenant.CredentialDigest = digest
	}

	tenant.Name = input.Name
	tenant.EncryptionSettings = settings
	tenant.ComplianceDefaults = input.ComplianceDefaults
	tenant.LastModifiedAt = time.Now().UTC()
	tenant.LastModifiedBy = input.ModifiedBy

	if err := t.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	return &tenantDomain.UpdateTenantOutput{
		Tenant:          tenant,
		PlainCredential: plainCredential,
	}, nil
}

// Deactivate performs a soft delete by setting the status to deactivated.
func (t *tenantUseCase) Deactivate(ctx context.Context, tenantID, modifiedBy string) error {
	tenant, err := t.tenantRepo.Get(ctx, tenantID)
	if err != nil {
		return err
	}

	if tenant.Status == tenantDomain.StatusDeactivated {
		return nil
	}

	tenant.Status = tenantDomain.StatusDeactivated
	tenant.LastModifiedAt = time.Now().UTC()
	tenant.LastModifiedBy = modifiedBy

	return t.tenantRepo.Update(ctx, tenant)
}

// List retrieves active tenants ordered by ID ascending with pagination support.
func (t *tenantUseCase) List(ctx context.Context, offset, limit int) ([]*tenantDomain.Tenant, error) {
	return t.tenantRepo.List(ctx, offset, limit)
}

// Resolve authenticates a plain API credential and returns the owning active
// tenant. The digest lookup narrows the search to one row; the Argon2id hash
// comparison then proves possession of the credential.
func (t *tenantUseCase) Resolve(ctx context.Context, plainCredential string) (*tenantDomain.Tenant, error) {
	digest := t.credentialService.Digest(plainCredential)

	tenant, err := t.tenantRepo.GetByCredentialDigest(ctx, digest)
	if err != nil {
		// Collapse not-found into invalid-credential so callers cannot probe
		// for tenant existence.
		return nil, tenantDomain.ErrInvalidCredential
	}

	if !t.credentialService.CompareCredential(plainCredential, tenant.CredentialHash) {
		return nil, tenantDomain.ErrInvalidCredential
	}

	return tenant, nil
}

// normalizeEncryptionSettings fills zero-valued fields with defaults and
// validates that the algorithm and rotation policy are usable before they are
// persisted, so tokenization never trips over a bad tenant record later.
func normalizeEncryptionSettings(
	tenantID string,
	settings tenantDomain.EncryptionSettings,
) (tenantDomain.EncryptionSettings, error) {
	defaults := tenantDomain.DefaultEncryptionSettings(tenantID)

	if settings.Algorithm == "" {
		settings.Algorithm = defaults.Algorithm
	}
	if settings.KeyRotationPolicy == "" {
		settings.KeyRotationPolicy = defaults.KeyRotationPolicy
	}
	if settings.MasterKeyReference == "" {
		settings.MasterKeyReference = defaults.MasterKeyReference
	}

	alg, err := cryptoDomain.ParseAlgorithm(settings.Algorithm)
	if err != nil {
		return settings, fmt.Errorf("%w: %q", err, settings.Algorithm)
	}
	settings.Algorithm = string(alg)

	if _, err := cryptoDomain.ParseRotationPolicy(settings.KeyRotationPolicy); err != nil {
		return settings, err
	}

	return settings, nil
}

// NewTenantUseCase creates a new TenantUseCase with the provided dependencies.
func NewTenantUseCase(
	tenantRepo TenantRepository,
	credentialService tenantService.CredentialService,
) TenantUseCase {
	return &tenantUseCase{
		tenantRepo:        tenantRepo,
		credentialService: credentialService,
	}
}
