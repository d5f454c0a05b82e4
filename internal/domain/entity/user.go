// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single platform account.
// It carries the credential and lockout state the login flow operates on.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email        string    // The user's login identifier. Always stored lowercased.
	Name         string    // The user's display name.
	PasswordHash string    // The bcrypt hash of the user's password. Never the plaintext.
	Role         Role      // The account role, fixed at registration.

	// Two-factor state. TwoFactorEnabled implies TwoFactorSecret is non-nil.
	// A pending secret exists only between setup and confirmation; it is kept
	// in a separate field so an abandoned setup never shadows an active secret.
	TwoFactorEnabled        bool
	TwoFactorSecret         *string    // Active base32 TOTP secret, nil unless 2FA is enabled.
	PendingTwoFactorSecret  *string    // Secret awaiting confirmation, nil otherwise.
	PendingTwoFactorExpires *time.Time // When the pending secret stops being confirmable.

	// Lockout state. LockedUntil is set exactly when LoginAttempts has reached
	// the lockout threshold since the last reset.
	LoginAttempts int
	LockedUntil   *time.Time
	LastLoginAt   *time.Time

	XP        int       // Reputation points earned from accepted reports.
	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification.
}

// IsLocked reports whether the account is currently refused login.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// LockoutRemaining returns how long until the account unlocks, zero when not locked.
func (u *User) LockoutRemaining(now time.Time) time.Duration {
	if !u.IsLocked(now) {
		return 0
	}

	return u.LockedUntil.Sub(now)
}
