// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"bountyhub/config"
	deliverycontext "bountyhub/internal/delivery/context"
	"bountyhub/internal/delivery/http/cookies"
	"bountyhub/internal/delivery/http/response"
	"bountyhub/internal/domain/entity"
	"bountyhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// userResponse is the safe projection of a user for API responses.
// Password hashes and two-factor secrets never leave the server.
type userResponse struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Role             string     `json:"role"`
	TwoFactorEnabled bool       `json:"twoFactorEnabled"`
	XP               int        `json:"xp"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func toUserResponse(u *entity.User) *userResponse {
	return &userResponse{
		ID:               u.ID.String(),
		Email:            u.Email,
		Name:             u.Name,
		Role:             string(u.Role),
		TwoFactorEnabled: u.TwoFactorEnabled,
		XP:               u.XP,
		LastLoginAt:      u.LastLoginAt,
		CreatedAt:        u.CreatedAt,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role" validate:"required,oneof=Researcher Company"`
}

type loginRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	TwoFactorCode string `json:"twoFactorCode"`
	RememberMe    bool   `json:"rememberMe"`
}

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc          usecase.AuthUsecase
	logger      *slog.Logger
	secure      bool
	accessTTL   time.Duration
	rememberTTL time.Duration
	refreshTTL  time.Duration
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		uc:          uc,
		logger:      logger,
		secure:      cfg.Env.Env != "development",
		accessTTL:   cfg.Auth.AccessTokenTTL,
		rememberTTL: cfg.Auth.RememberMeTTL,
		refreshTTL:  cfg.Auth.RefreshTokenTTL,
	}
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      entity.Role(req.Role),
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	cookies.SetAuth(c, output.Tokens.AccessToken, output.Tokens.RefreshToken, h.accessTTL, h.refreshTTL, h.secure)

	return response.Success(c, http.StatusCreated, toUserResponse(output.User), "Account registered successfully")
}

// Login handles the login request, including the two-factor round trip.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:         req.Email,
		Password:      req.Password,
		TwoFactorCode: req.TwoFactorCode,
		RememberMe:    req.RememberMe,
		IPAddress:     c.RealIP(),
		UserAgent:     c.Request().UserAgent(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if output.RequiresTwoFactor {
		// Password was accepted but no tokens exist yet; the client repeats
		// the request with a code.
		return response.Success(c, http.StatusOK, map[string]any{"requires2FA": true}, "Two-factor code required")
	}

	accessTTL := h.accessTTL
	if req.RememberMe {
		accessTTL = h.rememberTTL
	}
	cookies.SetAuth(c, output.Tokens.AccessToken, output.Tokens.RefreshToken, accessTTL, h.refreshTTL, h.secure)

	return response.Success(c, http.StatusOK, toUserResponse(output.User), "Login successful")
}

// Logout handles the logout request. It succeeds no matter what state the
// tokens are in.
func (h *AuthHandler) Logout(c echo.Context) error {
	input := &usecase.LogoutInput{
		AccessToken:  cookies.Read(c, cookies.AccessToken),
		RefreshToken: cookies.Read(c, cookies.RefreshToken),
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
	}

	if err := h.uc.Logout(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	cookies.Clear(c, h.secure)

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// Refresh exchanges the refresh cookie for a new access token cookie.
func (h *AuthHandler) Refresh(c echo.Context) error {
	refreshToken := cookies.Read(c, cookies.RefreshToken)
	if refreshToken == "" {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	output, err := h.uc.Refresh(c.Request().Context(), &usecase.RefreshInput{RefreshToken: refreshToken})
	if err != nil {
		cookies.Clear(c, h.secure)

		return errors.WithStack(err)
	}

	cookies.SetAccess(c, output.AccessToken, h.accessTTL, h.secure)

	return response.Success(c, http.StatusOK, map[string]any{"expiresAt": output.AccessExpiresAt}, "Token refreshed")
}

// Me returns the caller's own account.
func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	user, err := h.uc.CurrentUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "")
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
