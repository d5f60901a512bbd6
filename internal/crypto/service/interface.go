// Package service provides the cryptographic services behind tokenization.
// Implements AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305), deterministic
// per-tenant key derivation with rotation epochs, and master key resolution.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/tokenvault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeySpec carries the per-tenant encryption settings the key manager needs to
// derive data keys. All fields come from the owning tenant's record.
type KeySpec struct {
	TenantID           string
	MasterKeyReference string
	RotationPolicy     string
}

// KeyManager derives per-tenant, per-epoch data encryption keys. Derivation is
// deterministic, so a key for any past epoch can always be recomputed from the
// tenant's master key reference: rotation changes which key new tokens use but
// never invalidates old ones.
//
// Callers MUST zero returned key material after use: cryptoDomain.Zero(key).
type KeyManager interface {
	// KeyForCurrentEpoch derives the key for the tenant's current rotation
	// epoch and returns it with the key ID to store alongside new ciphertext.
	KeyForCurrentEpoch(ctx context.Context, spec KeySpec) (key []byte, keyID string, err error)

	// KeyForID re-derives the key identified by a stored encryption key ID.
	// Returns ErrInvalidKeyID if the key ID does not belong to spec's tenant.
	KeyForID(ctx context.Context, spec KeySpec, keyID string) ([]byte, error)
}

// MasterKeyResolver materializes a tenant's master key reference into raw key
// bytes. Implementations must bound external calls and surface
// ErrKeyUnavailable on failure or expiry rather than hanging.
type MasterKeyResolver interface {
	Resolve(ctx context.Context, reference string) ([]byte, error)
}

// HashService provides deterministic fingerprinting of plaintext for equality
// lookups without decryption. Never used as key material.
type HashService interface {
	Fingerprint(value []byte) string
}
