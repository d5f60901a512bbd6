package domain

// Algorithm identifies an authenticated encryption algorithm for token payloads.
type Algorithm string

const (
	// AESGCM is AES-256-GCM authenticated encryption.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305 authenticated encryption.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// ParseAlgorithm converts a string to an Algorithm. The legacy "AES-256" name
// used by older tenant records maps to AESGCM.
func ParseAlgorithm(alg string) (Algorithm, error) {
	switch alg {
	case "aes-gcm", "AES-256", "":
		return AESGCM, nil
	case "chacha20-poly1305":
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
