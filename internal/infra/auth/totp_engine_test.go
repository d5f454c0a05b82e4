package auth

import (
	"encoding/base32"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTOTPSecret = "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"

func newTestTOTPEngine(now *time.Time) *totpEngine {
	return &totpEngine{
		issuer: "BountyHub",
		digits: 6,
		period: 30 * time.Second,
		skew:   2,
		now:    func() time.Time { return *now },
	}
}

func codeAt(t *testing.T, at time.Time) string {
	t.Helper()
	code, err := totp.GenerateCodeCustom(testTOTPSecret, at, totp.ValidateOpts{
		Period:    30,
		Skew:      2,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)

	return code
}

func TestTOTPEngine_ValidateWithinWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine := newTestTOTPEngine(&now)

	assert.True(t, engine.Validate(testTOTPSecret, codeAt(t, now)))

	// Codes from adjacent steps absorb clock drift in both directions.
	assert.True(t, engine.Validate(testTOTPSecret, codeAt(t, now.Add(-60*time.Second))))
	assert.True(t, engine.Validate(testTOTPSecret, codeAt(t, now.Add(60*time.Second))))
}

func TestTOTPEngine_RejectOutsideWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine := newTestTOTPEngine(&now)

	assert.False(t, engine.Validate(testTOTPSecret, codeAt(t, now.Add(-120*time.Second))))
	assert.False(t, engine.Validate(testTOTPSecret, codeAt(t, now.Add(120*time.Second))))
}

func TestTOTPEngine_RejectMalformedCode(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine := newTestTOTPEngine(&now)

	for _, code := range []string{"", "12345", "1234567", "12345a", "abcdef"} {
		assert.False(t, engine.Validate(testTOTPSecret, code), "code %q", code)
	}
}

func TestTOTPEngine_GenerateSecret(t *testing.T) {
	now := time.Now()
	engine := newTestTOTPEngine(&now)

	secret, err := engine.GenerateSecret()
	require.NoError(t, err)

	assert.NotContains(t, secret, "=")
	decoded, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	require.NoError(t, err)
	assert.Len(t, decoded, totpSecretSize)

	// Two calls never hand out the same secret.
	other, err := engine.GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestTOTPEngine_ProvisioningURI(t *testing.T) {
	now := time.Now()
	engine := newTestTOTPEngine(&now)

	uri := engine.ProvisioningURI(testTOTPSecret, "alice@example.com")

	assert.True(t, strings.HasPrefix(uri, "otpauth://totp/BountyHub:alice@example.com?"), uri)
	assert.Contains(t, uri, "secret="+testTOTPSecret)
	assert.Contains(t, uri, "issuer=BountyHub")
	assert.Contains(t, uri, "digits=6")
	assert.Contains(t, uri, "period=30")
	assert.Contains(t, uri, "algorithm=SHA1")
}
