package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"sync"

	apperrors "github.com/allisson/tokenvault/internal/errors"
)

// KMSKeeper abstracts the subset of gocloud.dev/secrets.Keeper used to unwrap
// master key material. Defined here so the service layer can be tested without
// a real KMS backend.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// MasterKeyStore holds master key material indexed by reference. Each tenant's
// MasterKeyReference selects one entry; the stored bytes are either raw key
// material (env mode) or a KMS-wrapped blob that must be unwrapped through a
// keeper before use.
//
// Thread safety: backed by sync.Map, safe for concurrent reads.
type MasterKeyStore struct {
	keys sync.Map
}

// Get retrieves the stored bytes for a master key reference.
func (s *MasterKeyStore) Get(reference string) ([]byte, bool) {
	if v, ok := s.keys.Load(reference); ok {
		return v.([]byte), true
	}
	return nil, false
}

// Put stores bytes under a master key reference. Used by tests and by the
// loader below.
func (s *MasterKeyStore) Put(reference string, material []byte) {
	s.keys.Store(reference, material)
}

// References returns all stored master key references.
func (s *MasterKeyStore) References() []string {
	var refs []string
	s.keys.Range(func(k, _ any) bool {
		refs = append(refs, k.(string))
		return true
	})
	return refs
}

// Close clears all entries, zeroing the stored material.
func (s *MasterKeyStore) Close() {
	s.keys.Range(func(k, v any) bool {
		Zero(v.([]byte))
		s.keys.Delete(k)
		return true
	})
}

var (
	// ErrMasterKeysNotSet indicates the MASTER_KEYS environment variable is missing.
	ErrMasterKeysNotSet = apperrors.New("MASTER_KEYS environment variable is not set")

	// ErrInvalidMasterKeysFormat indicates a malformed MASTER_KEYS entry.
	ErrInvalidMasterKeysFormat = apperrors.New("MASTER_KEYS must use format \"reference:base64,...\"")

	// ErrInvalidMasterKeyBase64 indicates a master key entry is not valid base64.
	ErrInvalidMasterKeyBase64 = apperrors.New("master key is not valid base64")
)

// LoadMasterKeyStoreFromEnv loads master keys from the MASTER_KEYS environment
// variable, a comma-separated list of "reference:base64" entries:
//
//	MASTER_KEYS="tenant1-master-key:YWJjZGVm...,shared-master-key:MTIzNDU2..."
//
// In env resolver mode each base64 value decodes to the raw 32-byte key; in
// keeper mode it decodes to the KMS-wrapped ciphertext of the key. Size is
// validated at resolution time, not here, because wrapped blobs are larger
// than the key they protect.
func LoadMasterKeyStoreFromEnv() (*MasterKeyStore, error) {
	raw := os.Getenv("MASTER_KEYS")
	if raw == "" {
		return nil, ErrMasterKeysNotSet
	}

	store := &MasterKeyStore{}

	for part := range strings.SplitSeq(raw, ",") {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 || p[0] == "" {
			store.Close()
			return nil, fmt.Errorf("%w: %q", ErrInvalidMasterKeysFormat, part)
		}
		material, err := base64.StdEncoding.DecodeString(p[1])
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidMasterKeyBase64, p[0], err)
		}
		store.Put(p[0], material)
	}

	return store, nil
}
