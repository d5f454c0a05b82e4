// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"math"
	"strings"
	"time"

	"bountyhub/config"
	deliverycontext "bountyhub/internal/delivery/context"
	"bountyhub/internal/domain/entity"
	domainerrors "bountyhub/internal/domain/errors"
	"bountyhub/internal/domain/repository"
	"bountyhub/internal/domain/service"
	"bountyhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	sessionRepo      repository.SessionRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	totpService      service.TOTPService
	auditSink        service.AuditSink
	maxLoginAttempts int
	lockoutDuration  time.Duration
	sessionTTL       time.Duration
	logger           *slog.Logger
	now              func() time.Time
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	TOTPService  service.TOTPService
	AuditSink    service.AuditSink
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	maxLoginAttempts := 5
	lockoutDuration := 30 * time.Minute
	sessionTTL := 7 * 24 * time.Hour
	if params.Config != nil && params.Config.Auth != nil {
		maxLoginAttempts = params.Config.Auth.MaxLoginAttempts
		lockoutDuration = params.Config.Auth.LockoutDuration
		sessionTTL = params.Config.Auth.RefreshTokenTTL
	}

	return &authService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		sessionRepo:      params.SessionRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		totpService:      params.TOTPService,
		auditSink:        params.AuditSink,
		maxLoginAttempts: maxLoginAttempts,
		lockoutDuration:  lockoutDuration,
		sessionTTL:       sessionTTL,
		logger:           params.Logger,
		now:              time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// hashToken derives the storage digest of a token. Session records never hold
// raw tokens.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and signs it in immediately.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.Any("role", input.Role), slog.String("email", email))

	if input.Role != entity.RoleResearcher && input.Role != entity.RoleCompany {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("role must be Researcher or Company")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password")
	}

	var registeredUser *entity.User
	var tokens *service.TokenPair
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return domainerrors.ErrEmailAlreadyRegistered
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email uniqueness")
		}

		newUser := &entity.User{
			ID:           uuid.New(),
			Email:        email,
			Name:         input.Name,
			PasswordHash: hashedPassword,
			Role:         input.Role,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		pair, err := srv.tokenService.IssueTokens(newUser, false)
		if err != nil {
			return errors.Wrap(err, "failed to issue tokens")
		}

		if err := srv.createSession(ctx, repoFactory.SessionRepo(), newUser.ID, pair, input.IPAddress, input.UserAgent); err != nil {
			return err
		}

		registeredUser = newUser
		tokens = pair

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	srv.auditSink.Record(ctx, &registeredUser.ID, entity.AuditActionRegister,
		map[string]any{"email": email, "role": string(registeredUser.Role)},
		input.IPAddress, input.UserAgent)

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{User: registeredUser, Tokens: tokens}, nil
}

// Login runs the credential checks in a fixed order: account lookup, lockout,
// password, then two-factor. Each stage only runs once every earlier stage has
// passed, so a locked account never gets its password checked and a wrong
// password never reveals whether two-factor is on.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		// Same message as a wrong password: the response must not reveal
		// whether the address is registered.
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	now := srv.now()
	if user.IsLocked(now) {
		remaining := int(math.Ceil(user.LockoutRemaining(now).Minutes()))
		srv.log(ctx).Warn("Login rejected, account locked", slog.Any("userID", user.ID), slog.Int("remainingMinutes", remaining))

		return nil, domainerrors.NewAccountLockedError(remaining)
	}

	if err := srv.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, srv.handleFailedPassword(ctx, user, input)
	}

	if user.TwoFactorEnabled {
		if input.TwoFactorCode == "" {
			// Password was correct but nothing is issued until a code arrives.
			return &usecase.LoginOutput{RequiresTwoFactor: true}, nil
		}

		secret := ""
		if user.TwoFactorSecret != nil {
			secret = *user.TwoFactorSecret
		}
		if !srv.totpService.Validate(secret, input.TwoFactorCode) {
			srv.auditSink.Record(ctx, &user.ID, entity.AuditActionLoginFailed,
				map[string]any{"reason": "invalid_2fa_code"}, input.IPAddress, input.UserAgent)

			// A bad one-time code does not touch the failed-login counter.
			return nil, domainerrors.ErrInvalidTwoFactorCode
		}
	}

	return srv.completeLogin(ctx, user, input, now)
}

// handleFailedPassword records the failure atomically and reports the generic
// rejection. The caller's response is identical whether or not this failure
// tripped the lockout; the lock only shows on the next attempt.
func (srv *authService) handleFailedPassword(ctx context.Context, user *entity.User, input *usecase.LoginInput) error {
	result, err := srv.userRepo.RecordLoginFailure(ctx, user.ID, srv.maxLoginAttempts, srv.lockoutDuration)
	if err != nil {
		srv.log(ctx).Error("Failed to record login failure", slog.Any("userID", user.ID), slog.Any("error", err))

		return domainerrors.ErrInvalidCredentials
	}

	details := map[string]any{"reason": "invalid_password", "attempts": result.Attempts}
	if result.LockedUntil != nil {
		details["lockedUntil"] = result.LockedUntil.UTC().Format(time.RFC3339)
		srv.log(ctx).Warn("Account locked after repeated failures",
			slog.Any("userID", user.ID), slog.Int("attempts", result.Attempts))
	}
	srv.auditSink.Record(ctx, &user.ID, entity.AuditActionLoginFailed, details, input.IPAddress, input.UserAgent)

	return domainerrors.ErrInvalidCredentials
}

func (srv *authService) completeLogin(ctx context.Context, user *entity.User, input *usecase.LoginInput, now time.Time) (*usecase.LoginOutput, error) {
	tokens, err := srv.tokenService.IssueTokens(user, input.RememberMe)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens")
	}

	if err := srv.userRepo.ResetLoginState(ctx, user.ID, now); err != nil {
		return nil, errors.Wrap(err, "failed to reset login state")
	}

	if err := srv.createSession(ctx, srv.sessionRepo, user.ID, tokens, input.IPAddress, input.UserAgent); err != nil {
		return nil, err
	}

	srv.auditSink.Record(ctx, &user.ID, entity.AuditActionLoginSuccess,
		map[string]any{"rememberMe": input.RememberMe}, input.IPAddress, input.UserAgent)

	user.LoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{User: user, Tokens: tokens}, nil
}

func (srv *authService) createSession(ctx context.Context, sessionRepo repository.SessionRepository, userID uuid.UUID, tokens *service.TokenPair, ipAddress, userAgent string) error {
	session := &entity.Session{
		ID:               uuid.New(),
		UserID:           userID,
		TokenHash:        hashToken(tokens.AccessToken),
		RefreshTokenHash: hashToken(tokens.RefreshToken),
		UserAgent:        userAgent,
		IPAddress:        ipAddress,
		ExpiresAt:        srv.now().Add(srv.sessionTTL),
	}
	if err := sessionRepo.Create(ctx, session); err != nil {
		return errors.Wrap(err, "failed to create session")
	}

	return nil
}

// Logout deletes the matching session record and always succeeds: logging out
// twice, or with tokens that never had a session, is not an error.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	accessHash := ""
	if input.AccessToken != "" {
		accessHash = hashToken(input.AccessToken)
	}
	refreshHash := ""
	if input.RefreshToken != "" {
		refreshHash = hashToken(input.RefreshToken)
	}

	if accessHash != "" || refreshHash != "" {
		if err := srv.sessionRepo.DeleteByTokenHashes(ctx, accessHash, refreshHash); err != nil {
			// Logout still succeeds; the expired-session sweep will catch it.
			srv.log(ctx).Error("Failed to delete session on logout", slog.Any("error", err))
		}
	}

	if input.AccessToken != "" {
		if claims, err := srv.tokenService.VerifyAccessToken(input.AccessToken); err == nil {
			srv.auditSink.Record(ctx, &claims.UserID, entity.AuditActionLogout, nil, input.IPAddress, input.UserAgent)
		}
	}

	return nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is left in place until its own expiry.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	claims, err := srv.tokenService.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken
	}

	session, err := srv.sessionRepo.FindByRefreshTokenHash(ctx, hashToken(input.RefreshToken))
	if errors.Is(err, repository.ErrSessionNotFound) {
		// The session was deleted by a logout; the token no longer stands.
		return nil, domainerrors.ErrInvalidToken
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find session by refresh token")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrInvalidToken
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user for refresh")
	}

	accessToken, expiresAt, err := srv.tokenService.IssueAccessToken(user, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	if err := srv.sessionRepo.UpdateAccessTokenHash(ctx, session.ID, hashToken(accessToken)); err != nil {
		return nil, errors.Wrap(err, "failed to update session token hash")
	}

	srv.log(ctx).Debug("Access token refreshed", slog.Any("userID", user.ID))

	return &usecase.RefreshOutput{AccessToken: accessToken, AccessExpiresAt: expiresAt}, nil
}

// CurrentUser loads the caller's own record.
func (srv *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}
