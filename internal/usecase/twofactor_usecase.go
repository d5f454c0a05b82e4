package usecase

import (
	"context"

	"github.com/google/uuid"
)

// TwoFactorSetupOutput returns the material a user needs to enroll an
// authenticator app. The secret is not active yet: it must be confirmed with
// a valid code before login starts requiring it.
type TwoFactorSetupOutput struct {
	Secret          string
	ProvisioningURI string
	QRCodePNG       []byte
}

// TwoFactorUsecase defines the interface for two-factor enrollment operations.
type TwoFactorUsecase interface {
	// Setup generates a fresh secret, stores it as pending with an expiry and
	// returns the provisioning material. Calling it again replaces any
	// previous pending secret.
	Setup(ctx context.Context, userID uuid.UUID) (*TwoFactorSetupOutput, error)

	// Confirm verifies the code against the pending secret and, on success,
	// activates two-factor authentication for the account.
	Confirm(ctx context.Context, userID uuid.UUID, code, ipAddress, userAgent string) error

	// Disable turns two-factor authentication off. It requires a valid code
	// from the currently active secret.
	Disable(ctx context.Context, userID uuid.UUID, code, ipAddress, userAgent string) error
}
