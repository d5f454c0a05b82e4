package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	deliverycontext "bountyhub/internal/delivery/context"
	"bountyhub/internal/delivery/http/response"
	"bountyhub/internal/domain/entity"
	"bountyhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// sessionResponse is the safe projection of a session. Token hashes stay
// server-side.
type sessionResponse struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"userAgent"`
	IPAddress string    `json:"ipAddress"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func toSessionResponses(sessions []*entity.Session) []*sessionResponse {
	out := make([]*sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, &sessionResponse{
			ID:        s.ID.String(),
			UserAgent: s.UserAgent,
			IPAddress: s.IPAddress,
			ExpiresAt: s.ExpiresAt,
			CreatedAt: s.CreatedAt,
		})
	}

	return out
}

// AccountHandler holds dependencies for account introspection handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{uc: uc, logger: logger}
}

// Sessions lists the caller's active sessions.
func (h *AccountHandler) Sessions(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	sessions, err := h.uc.Sessions(c.Request().Context(), identity.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionResponses(sessions), "")
}

// AuditLog pages through the audit trail. The gate restricts the route to admins.
func (h *AccountHandler) AuditLog(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	entries, err := h.uc.AuditLog(c.Request().Context(), limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entries, "")
}
