package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/tokenvault/internal/errors"
)

// credentialService implements CredentialService using Argon2id for hashing.
type credentialService struct {
	hasher *pwdhash.PasswordHasher
}

// GenerateCredential creates a new cryptographically secure 32-byte random
// credential. The credential is base64-encoded for easy transmission.
func (s *credentialService) GenerateCredential() (plainCredential, hashedCredential, digest string, err error) {
	// Generate 32 random bytes (256 bits)
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", "", apperrors.Wrap(err, "failed to generate random credential")
	}

	plainCredential = base64.URLEncoding.EncodeToString(randomBytes)

	hashedCredential, err = s.hasher.Hash([]byte(plainCredential))
	if err != nil {
		return "", "", "", apperrors.Wrap(err, "failed to hash credential")
	}

	return plainCredential, hashedCredential, s.Digest(plainCredential), nil
}

// CompareCredential performs a constant-time comparison between a plain
// credential and its Argon2id hash.
func (s *credentialService) CompareCredential(plainCredential, hashedCredential string) bool {
	ok, err := s.hasher.Verify([]byte(plainCredential), hashedCredential)
	if err != nil {
		return false
	}
	return ok
}

// Digest computes the SHA-256 hex digest of a plain credential. The digest is
// stored under a unique index so the owning tenant can be found in one lookup
// before the Argon2id hash is verified.
func (s *credentialService) Digest(plainCredential string) string {
	sum := sha256.Sum256([]byte(plainCredential))
	return hex.EncodeToString(sum[:])
}

// NewCredentialService creates a new CredentialService instance using Argon2id hashing.
// Uses the Moderate policy for a balance between security and performance.
func NewCredentialService() CredentialService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &credentialService{
		hasher: hasher,
	}
}
