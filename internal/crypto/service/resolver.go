package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	cryptoDomain "github.com/allisson/tokenvault/internal/crypto/domain"
	"github.com/allisson/tokenvault/internal/errors"
)

// EnvResolver resolves master key references against raw key material loaded
// from the MASTER_KEYS environment variable. Intended for development and
// single-node deployments where no KMS is available.
type EnvResolver struct {
	store *cryptoDomain.MasterKeyStore
}

// NewEnvResolver creates a resolver backed by the given master key store.
func NewEnvResolver(store *cryptoDomain.MasterKeyStore) *EnvResolver {
	return &EnvResolver{store: store}
}

// Resolve returns a copy of the raw key material for the reference.
// Returns ErrKeyUnavailable if the reference is unknown and ErrInvalidKeySize
// if the material is not 32 bytes.
func (r *EnvResolver) Resolve(_ context.Context, reference string) ([]byte, error) {
	material, ok := r.store.Get(reference)
	if !ok {
		return nil, errors.Wrap(cryptoDomain.ErrKeyUnavailable, fmt.Sprintf("unknown master key reference %q", reference))
	}
	if len(material) != 32 {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	// Copy so callers can zero their slice without clearing the store.
	key := make([]byte, len(material))
	copy(key, material)
	return key, nil
}

// KeeperResolver resolves master key references by unwrapping KMS-wrapped
// blobs through a gocloud.dev secrets keeper. The store holds wrapped
// ciphertext per reference; the keeper holds the key-encryption key.
//
// KMS calls are bounded by timeout so a slow or unreachable provider surfaces
// as a retryable ErrKeyUnavailable instead of stalling tokenization requests.
type KeeperResolver struct {
	store   *cryptoDomain.MasterKeyStore
	keeper  cryptoDomain.KMSKeeper
	timeout time.Duration
}

// NewKeeperResolver creates a resolver that unwraps stored blobs with keeper.
// A zero timeout defaults to 5 seconds.
func NewKeeperResolver(store *cryptoDomain.MasterKeyStore, keeper cryptoDomain.KMSKeeper, timeout time.Duration) *KeeperResolver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KeeperResolver{store: store, keeper: keeper, timeout: timeout}
}

// Resolve unwraps the stored blob for the reference and returns the raw key.
func (r *KeeperResolver) Resolve(ctx context.Context, reference string) ([]byte, error) {
	wrapped, ok := r.store.Get(reference)
	if !ok {
		return nil, errors.Wrap(cryptoDomain.ErrKeyUnavailable, fmt.Sprintf("unknown master key reference %q", reference))
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	key, err := r.keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrKeyUnavailable, fmt.Sprintf("failed to unwrap master key %q: %v", reference, err))
	}
	if len(key) != 32 {
		cryptoDomain.Zero(key)
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	return key, nil
}

// Warm unwraps every stored master key reference once, so misconfigured or
// unreachable keys surface at startup instead of on the first tokenization
// request. Unwrapped material is zeroed immediately.
func (r *KeeperResolver) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, reference := range r.store.References() {
		g.Go(func() error {
			key, err := r.Resolve(ctx, reference)
			if err != nil {
				return err
			}
			cryptoDomain.Zero(key)
			return nil
		})
	}

	return g.Wait()
}
