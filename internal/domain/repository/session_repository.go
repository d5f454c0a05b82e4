package repository

import (
	"context"
	"errors"

	"bountyhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session record is not found.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the interface for session bookkeeping.
// Sessions record issued token pairs; tokens stay self-verifying, so deleting
// a record only affects logout accounting, never token validity.
type SessionRepository interface {
	// Create persists a new session record.
	Create(ctx context.Context, session *entity.Session) error

	// FindByUserID retrieves all non-expired sessions for a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Session, error)

	// FindByRefreshTokenHash retrieves the non-expired session holding the
	// given refresh token hash.
	FindByRefreshTokenHash(ctx context.Context, refreshHash string) (*entity.Session, error)

	// UpdateAccessTokenHash swaps the recorded access token hash after a
	// refresh. The session expiry is unchanged.
	UpdateAccessTokenHash(ctx context.Context, id uuid.UUID, accessHash string) error

	// DeleteByTokenHashes removes any session whose access or refresh hash
	// matches either argument. Deleting zero rows is not an error: logout is
	// idempotent.
	DeleteByTokenHashes(ctx context.Context, accessHash, refreshHash string) error

	// DeleteByUserID removes all sessions for a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes all sessions whose expiry has passed.
	DeleteExpired(ctx context.Context) error
}
