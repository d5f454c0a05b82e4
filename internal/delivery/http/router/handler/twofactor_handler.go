package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	deliverycontext "bountyhub/internal/delivery/context"
	"bountyhub/internal/delivery/http/response"
	"bountyhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type twoFactorCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// TwoFactorHandler holds dependencies for two-factor enrollment handlers.
type TwoFactorHandler struct {
	uc     usecase.TwoFactorUsecase
	logger *slog.Logger
}

// NewTwoFactorHandler is the constructor for TwoFactorHandler, injected by Fx.
func NewTwoFactorHandler(uc usecase.TwoFactorUsecase, logger *slog.Logger) *TwoFactorHandler {
	return &TwoFactorHandler{uc: uc, logger: logger}
}

// Setup starts two-factor enrollment and returns the provisioning material.
func (h *TwoFactorHandler) Setup(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	output, err := h.uc.Setup(c.Request().Context(), identity.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	data := map[string]any{
		"secret":          output.Secret,
		"provisioningUri": output.ProvisioningURI,
	}
	if len(output.QRCodePNG) > 0 {
		data["qrCode"] = "data:image/png;base64," + base64.StdEncoding.EncodeToString(output.QRCodePNG)
	}

	return response.Success(c, http.StatusOK, data, "Scan the QR code and confirm with a code")
}

// Confirm activates two-factor authentication with a code from the pending secret.
func (h *TwoFactorHandler) Confirm(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	var req twoFactorCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid confirmation input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.Confirm(c.Request().Context(), identity.UserID, req.Code, c.RealIP(), c.Request().UserAgent()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Two-factor authentication enabled")
}

// Disable turns two-factor authentication off.
func (h *TwoFactorHandler) Disable(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	var req twoFactorCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid disable input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.Disable(c.Request().Context(), identity.UserID, req.Code, c.RealIP(), c.Request().UserAgent()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Two-factor authentication disabled")
}
