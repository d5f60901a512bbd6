package domain

// Zero overwrites the given byte slice with zeros to remove sensitive data
// from memory. Callers should defer Zero on any plaintext key material as
// soon as it is derived or decrypted.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
