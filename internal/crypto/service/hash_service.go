package service

import (
	"crypto/sha256"
	"encoding/hex"
)

type sha256HashService struct{}

// NewSHA256HashService creates a new SHA-256 fingerprint service.
func NewSHA256HashService() HashService {
	return &sha256HashService{}
}

// Fingerprint computes the SHA-256 hash of the input value and returns it as a hex string.
func (s *sha256HashService) Fingerprint(value []byte) string {
	hash := sha256.Sum256(value)
	return hex.EncodeToString(hash[:])
}
