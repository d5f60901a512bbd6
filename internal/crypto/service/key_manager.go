package service

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/tokenvault/internal/crypto/domain"
	"github.com/allisson/tokenvault/internal/errors"
)

// DerivedKeyManager implements the KeyManager interface with deterministic
// per-tenant key derivation.
//
// Data encryption keys are derived from the tenant's master key using
// HKDF-SHA256 with the tenant ID as salt and the rotation epoch in the info
// string. Two properties follow from the construction:
//   - Isolation: tenants sharing a master key reference still get distinct
//     data keys, because the tenant ID is mixed into the derivation.
//   - Non-breaking rotation: a new epoch yields a new key for new tokens,
//     while keys for any past epoch remain recomputable from the same master
//     key, so old ciphertext always stays readable.
//
// No derived key is ever persisted. The only stored artifact is the key ID
// ("<tenantID>:<epoch>") written alongside each ciphertext.
type DerivedKeyManager struct {
	resolver MasterKeyResolver
	now      func() time.Time
}

// NewDerivedKeyManager creates a DerivedKeyManager using resolver to
// materialize master key references.
func NewDerivedKeyManager(resolver MasterKeyResolver) *DerivedKeyManager {
	return &DerivedKeyManager{
		resolver: resolver,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// KeyForCurrentEpoch derives the data key for the tenant's current rotation
// epoch. Returns the key together with the key ID to store with new ciphertext.
func (km *DerivedKeyManager) KeyForCurrentEpoch(ctx context.Context, spec KeySpec) ([]byte, string, error) {
	epoch, err := cryptoDomain.EpochAt(spec.RotationPolicy, km.now())
	if err != nil {
		return nil, "", err
	}

	key, err := km.derive(ctx, spec, epoch)
	if err != nil {
		return nil, "", err
	}

	return key, cryptoDomain.FormatKeyID(spec.TenantID, epoch), nil
}

// KeyForID re-derives the data key identified by a stored encryption key ID.
// The key ID must belong to spec's tenant; a mismatch means the stored row was
// corrupted or crossed a tenant boundary and yields ErrInvalidKeyID.
func (km *DerivedKeyManager) KeyForID(ctx context.Context, spec KeySpec, keyID string) ([]byte, error) {
	tenantID, epoch, err := cryptoDomain.ParseKeyID(keyID)
	if err != nil {
		return nil, err
	}
	if tenantID != spec.TenantID {
		return nil, errors.Wrap(cryptoDomain.ErrInvalidKeyID, fmt.Sprintf("key id does not belong to tenant %q", spec.TenantID))
	}

	return km.derive(ctx, spec, epoch)
}

// derive runs HKDF-SHA256 over the resolved master key. The master key bytes
// are zeroed before returning.
func (km *DerivedKeyManager) derive(ctx context.Context, spec KeySpec, epoch uint64) ([]byte, error) {
	masterKey, err := km.resolver.Resolve(ctx, spec.MasterKeyReference)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(masterKey)

	salt := []byte(spec.TenantID)
	info := fmt.Appendf(nil, "tokenvault:epoch:%d", epoch)

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, masterKey, salt, info), key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}
