package hash

// Hash hashes secrets and verifies plaintext against stored hashes.
type Hash interface {
	// Hash hashes plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify returns true when plaintext matches the hashed value.
	Verify(hashed, plaintext string) bool
}
