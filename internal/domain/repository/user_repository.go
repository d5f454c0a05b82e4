// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"bountyhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// LoginFailureResult is what the store reports after atomically recording a
// failed password check.
type LoginFailureResult struct {
	Attempts    int        // The attempt count after the increment.
	LockedUntil *time.Time // Non-nil when this failure triggered (or extended) a lockout.
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their lowercased email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// RecordLoginFailure increments the user's failed-login counter and, when
	// the incremented count reaches maxAttempts, sets the lockout deadline —
	// all in a single atomic statement. Concurrent failures against the same
	// account must each observe a distinct counter value.
	RecordLoginFailure(ctx context.Context, id uuid.UUID, maxAttempts int, lockFor time.Duration) (*LoginFailureResult, error)

	// ResetLoginState clears the failure counter and lockout deadline and
	// stamps the successful login time.
	ResetLoginState(ctx context.Context, id uuid.UUID, loginAt time.Time) error

	// SetPendingTwoFactorSecret stores a secret awaiting confirmation without
	// touching the active secret or the enabled flag.
	SetPendingTwoFactorSecret(ctx context.Context, id uuid.UUID, secret string, expiresAt time.Time) error

	// PromotePendingTwoFactorSecret moves the pending secret into the active
	// slot and enables two-factor authentication.
	PromotePendingTwoFactorSecret(ctx context.Context, id uuid.UUID) error

	// DisableTwoFactor clears both the active and any pending secret and
	// disables two-factor authentication.
	DisableTwoFactor(ctx context.Context, id uuid.UUID) error

	// AddXP credits reputation points to a user.
	AddXP(ctx context.Context, id uuid.UUID, points int) error
}
