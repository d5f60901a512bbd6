package domain

import (
	"errors"

	apperrors "github.com/allisson/tokenvault/internal/errors"
)

var (
	// ErrInvalidKeySize indicates a key is not exactly 32 bytes.
	ErrInvalidKeySize = apperrors.Wrap(apperrors.ErrInvalidInput, "key must be exactly 32 bytes")

	// ErrUnsupportedAlgorithm indicates an unknown encryption algorithm.
	ErrUnsupportedAlgorithm = apperrors.Wrap(apperrors.ErrInvalidInput, "unsupported algorithm")

	// ErrDecryptionFailed indicates ciphertext authentication failed. This is
	// non-retryable and treated as a data-integrity incident: it is surfaced
	// distinctly in logs while callers receive a generic failure.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrKeyUnavailable indicates the master key reference could not be
	// resolved. Transient; safe to retry with backoff.
	ErrKeyUnavailable = apperrors.Wrap(apperrors.ErrUnavailable, "encryption key unavailable")

	// ErrInvalidKeyID indicates a stored encryption key ID could not be parsed
	// or does not belong to the expected tenant.
	ErrInvalidKeyID = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid encryption key id")

	// ErrInvalidRotationPolicy indicates a key rotation policy string could not be parsed.
	ErrInvalidRotationPolicy = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid key rotation policy")
)
