package auth

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"net/url"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"bountyhub/config"
	"bountyhub/internal/domain/service"
)

const totpSecretSize = 32

// totpEngine is a concrete implementation of the TOTPService interface.
type totpEngine struct {
	issuer string
	digits int
	period time.Duration
	skew   int
	now    func() time.Time
}

// NewTOTPEngine is the constructor for totpEngine.
func NewTOTPEngine(cfg *config.Config) service.TOTPService {
	issuer := "BountyHub"
	digits := 6
	period := 30 * time.Second
	skew := 2
	if cfg != nil && cfg.TOTP != nil {
		issuer = cfg.TOTP.Issuer
		digits = cfg.TOTP.Digits
		period = cfg.TOTP.Period
		skew = cfg.TOTP.Skew
	}

	return &totpEngine{
		issuer: issuer,
		digits: digits,
		period: period,
		skew:   skew,
		now:    time.Now,
	}
}

// GenerateSecret produces a fresh random shared secret, base32 without padding
// as authenticator apps expect.
func (e *totpEngine) GenerateSecret() (string, error) {
	raw := make([]byte, totpSecretSize)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw), nil
}

// ProvisioningURI builds the otpauth:// URI for authenticator app enrollment.
func (e *totpEngine) ProvisioningURI(secret, accountName string) string {
	params := url.Values{}
	params.Set("secret", secret)
	params.Set("issuer", e.issuer)
	params.Set("period", fmt.Sprintf("%d", int(e.period.Seconds())))
	params.Set("digits", fmt.Sprintf("%d", e.digits))
	params.Set("algorithm", "SHA1")

	label := url.PathEscape(e.issuer + ":" + accountName)

	return fmt.Sprintf("otpauth://totp/%s?%s", label, params.Encode())
}

// Validate checks a submitted code against the secret within the configured
// drift window. Anything that is not exactly the right number of digits is
// rejected before any cryptographic work.
func (e *totpEngine) Validate(secret, code string) bool {
	if len(code) != e.digits {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}

	ok, err := totp.ValidateCustom(code, secret, e.now(), totp.ValidateOpts{
		Period:    uint(e.period.Seconds()),
		Skew:      uint(e.skew),
		Digits:    otp.Digits(e.digits),
		Algorithm: otp.AlgorithmSHA1,
	})

	return err == nil && ok
}
