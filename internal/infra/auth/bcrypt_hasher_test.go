package auth

import (
	"testing"

	"bountyhub/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher() *bcryptHasher {
	// Cost 4 is the bcrypt minimum; it keeps the test fast without
	// changing correctness.
	return &bcryptHasher{cost: 4}
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("Password123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123!", hash)

	assert.NoError(t, hasher.Compare(hash, "Password123!"))
	assert.Error(t, hasher.Compare(hash, "password123!"))
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("Password123!")
	require.NoError(t, err)
	second, err := hasher.Hash("Password123!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_MalformedHashIsMismatch(t *testing.T) {
	hasher := newTestHasher()

	assert.Error(t, hasher.Compare("not-a-bcrypt-hash", "Password123!"))
	assert.Error(t, hasher.Compare("", "Password123!"))
}

func TestNewBcryptHasher_CostFromConfig(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 4}})

	hash, err := hasher.Hash("Password123!")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "Password123!"))
}
