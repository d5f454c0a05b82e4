package service

import (
	"time"

	"bountyhub/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenClaims is the identity a verified token asserts.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
	Role   entity.Role
}

// TokenPair bundles the two tokens issued on successful authentication
// together with the access token's expiry, which drives cookie lifetimes.
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}

// TokenService defines the interface for issuing and verifying the signed
// tokens that carry a user's identity between requests.
type TokenService interface {
	// IssueTokens creates an access/refresh token pair for the user.
	// rememberMe extends the access token lifetime.
	IssueTokens(user *entity.User, rememberMe bool) (*TokenPair, error)

	// IssueAccessToken creates a standalone access token, used when refreshing
	// an existing session.
	IssueAccessToken(user *entity.User, rememberMe bool) (string, time.Time, error)

	// VerifyAccessToken validates an access token's signature and expiry and
	// returns the claims it carries.
	VerifyAccessToken(token string) (*TokenClaims, error)

	// VerifyRefreshToken validates a refresh token's signature and expiry and
	// returns the claims it carries. Refresh tokens are signed with a secret
	// distinct from the access secret, so neither kind verifies as the other.
	VerifyRefreshToken(token string) (*TokenClaims, error)
}
