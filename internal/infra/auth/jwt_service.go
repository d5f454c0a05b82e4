package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"bountyhub/config"
	"bountyhub/internal/domain/entity"
	"bountyhub/internal/domain/service"
)

// jwtClaims is the wire shape of both token kinds. Access and refresh tokens
// carry the same claims but are signed with different secrets.
type jwtClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	rememberTTL   time.Duration // Extended access TTL when the user opts to stay signed in.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	now           func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.SecretKey.Access == cfg.SecretKey.Refresh {
		return nil, errors.New("access and refresh secrets must differ")
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     cfg.Auth.AccessTokenTTL,
		rememberTTL:   cfg.Auth.RememberMeTTL,
		refreshTTL:    cfg.Auth.RefreshTokenTTL,
		now:           time.Now,
	}, nil
}

// IssueTokens creates a new access token and refresh token for a given user.
func (s *jwtService) IssueTokens(user *entity.User, rememberMe bool) (*service.TokenPair, error) {
	accessToken, expiresAt, err := s.IssueAccessToken(user, rememberMe)
	if err != nil {
		return nil, err
	}

	refreshToken, _, err := s.generateToken(user, s.refreshTTL, s.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &service.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresAt: expiresAt,
	}, nil
}

// IssueAccessToken creates a standalone access token.
func (s *jwtService) IssueAccessToken(user *entity.User, rememberMe bool) (string, time.Time, error) {
	ttl := s.accessTTL
	if rememberMe {
		ttl = s.rememberTTL
	}

	return s.generateToken(user, ttl, s.accessSecret)
}

// VerifyAccessToken validates an access token and extracts its claims.
func (s *jwtService) VerifyAccessToken(token string) (*service.TokenClaims, error) {
	return s.verify(token, s.accessSecret)
}

// VerifyRefreshToken validates a refresh token and extracts its claims.
func (s *jwtService) VerifyRefreshToken(token string) (*service.TokenClaims, error) {
	return s.verify(token, s.refreshSecret)
}

func (s *jwtService) generateToken(user *entity.User, ttl time.Duration, secret string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)
	claims := &jwtClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign token")
	}

	return signed, expiresAt, nil
}

// verify parses and validates a token. Every failure mode (expired, malformed,
// wrong key, wrong algorithm) comes back as the same opaque error so callers
// cannot leak the distinction.
func (s *jwtService) verify(tokenString, secret string) (*service.TokenClaims, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.New("invalid token")
	}

	return &service.TokenClaims{
		UserID: userID,
		Email:  claims.Email,
		Role:   entity.Role(claims.Role),
	}, nil
}
