// Package service provides tenant credential services.
// Implements secure random credential generation with Argon2id hashing for
// verification and SHA-256 digests for indexed lookups.
package service

// CredentialService manages tenant API credentials. Credentials are stored as
// two derived values: an Argon2id hash for verification and a SHA-256 digest
// for unique-index lookups. The plaintext credential is never persisted.
type CredentialService interface {
	// GenerateCredential creates a new cryptographically secure credential.
	// Returns the plaintext (shown once), its Argon2id hash, and its digest.
	GenerateCredential() (plainCredential, hashedCredential, digest string, err error)

	// CompareCredential performs a constant-time comparison between a plain
	// credential and its Argon2id hash.
	CompareCredential(plainCredential, hashedCredential string) bool

	// Digest computes the SHA-256 hex digest of a plain credential.
	Digest(plainCredential string) string
}
