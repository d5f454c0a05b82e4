// Package service defines domain service interfaces whose implementations
// live in the infrastructure layer.
package service

// PasswordHasher defines the interface for hashing and verifying passwords.
type PasswordHasher interface {
	// Hash generates a salted hash of the given plaintext password.
	Hash(password string) (string, error)

	// Compare checks whether the plaintext password matches the stored hash.
	// It returns nil on match and an error on mismatch.
	Compare(hashedPassword, password string) error
}
