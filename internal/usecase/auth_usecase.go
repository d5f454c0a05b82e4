// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"bountyhub/internal/domain/entity"
	"bountyhub/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Role      entity.Role
	IPAddress string
	UserAgent string
}

// LoginInput defines the data required for a user to log in.
// TwoFactorCode is empty on the first submission; callers resubmit with the
// code when the first attempt reports that two-factor is required.
type LoginInput struct {
	Email         string
	Password      string
	TwoFactorCode string
	RememberMe    bool
	IPAddress     string
	UserAgent     string
}

// LogoutInput carries whatever tokens the client still holds. Either may be
// empty; logout succeeds regardless.
type LogoutInput struct {
	AccessToken  string
	RefreshToken string
	IPAddress    string
	UserAgent    string
}

// RefreshInput defines the data required to mint a new access token.
type RefreshInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user and their first token pair.
type RegisterOutput struct {
	User   *entity.User
	Tokens *service.TokenPair
}

// LoginOutput is the result of a login attempt. When RequiresTwoFactor is
// set, User and Tokens are nil: the password checked out but the caller must
// resubmit with a one-time code before anything is issued.
type LoginOutput struct {
	RequiresTwoFactor bool
	User              *entity.User
	Tokens            *service.TokenPair
}

// RefreshOutput returns the replacement access token.
type RefreshOutput struct {
	AccessToken     string
	AccessExpiresAt time.Time
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
