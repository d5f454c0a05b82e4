package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "bountyhub/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func handleError(err error) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.HandleHTTPError(err, c)

	return rec
}

func TestErrorMiddleware_AppError(t *testing.T) {
	rec := handleError(domainerrors.ErrInvalidCredentials)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestErrorMiddleware_WrappedAppError(t *testing.T) {
	rec := handleError(errors.Wrap(domainerrors.ErrProgramNotFound, "lookup failed"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "PROGRAM_NOT_FOUND")
}

func TestErrorMiddleware_AccountLockedError(t *testing.T) {
	rec := handleError(domainerrors.NewAccountLockedError(12))

	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.Contains(t, rec.Body.String(), "Try again in 12 minutes")
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	rec := handleError(echo.NewHTTPError(http.StatusBadRequest, "bad field"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad field")
}

func TestErrorMiddleware_UnknownErrorStaysGeneric(t *testing.T) {
	rec := handleError(errors.New("pq: connection refused to db host 10.0.0.5"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Internal detail never reaches the client.
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestErrorMiddleware_DatabaseErrorDetailsStayServerSide(t *testing.T) {
	appErr := domainerrors.NewDatabaseExecuteError(errors.New("duplicate key on users_email_key"), "create user")
	rec := handleError(appErr)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "users_email_key")
}
