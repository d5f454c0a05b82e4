package service

// TOTPService defines the interface for time-based one-time password
// generation and validation (RFC 6238).
type TOTPService interface {
	// GenerateSecret produces a new random base32-encoded shared secret.
	GenerateSecret() (string, error)

	// ProvisioningURI builds the otpauth:// URI an authenticator app scans to
	// import the secret for the given account label.
	ProvisioningURI(secret, accountName string) string

	// Validate checks a submitted code against the secret, accepting adjacent
	// time steps to absorb clock drift.
	Validate(secret, code string) bool
}
