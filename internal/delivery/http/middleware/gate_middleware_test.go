package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "bountyhub/internal/delivery/context"
	"bountyhub/internal/delivery/http/cookies"
	"bountyhub/internal/domain/entity"
	"bountyhub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokenService accepts a fixed set of tokens and rejects everything else.
type stubTokenService struct {
	tokens map[string]*service.TokenClaims
}

func (s *stubTokenService) IssueTokens(*entity.User, bool) (*service.TokenPair, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTokenService) IssueAccessToken(*entity.User, bool) (string, time.Time, error) {
	return "", time.Time{}, errors.New("not implemented")
}

func (s *stubTokenService) VerifyAccessToken(token string) (*service.TokenClaims, error) {
	claims, ok := s.tokens[token]
	if !ok {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func (s *stubTokenService) VerifyRefreshToken(string) (*service.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func newTestGate(tokens map[string]*service.TokenClaims) *GateMiddleware {
	return &GateMiddleware{
		tokenSvc: &stubTokenService{tokens: tokens},
		secure:   false,
	}
}

// gateRequest runs one request through the gate with a passthrough handler
// that records whether it was reached.
func gateRequest(gate *GateMiddleware, path, token string) (*httptest.ResponseRecorder, echo.Context, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookies.AccessToken, Value: token})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := gate.Handle(func(c echo.Context) error {
		reached = true

		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)

	return rec, c, reached
}

func researcherToken() (string, map[string]*service.TokenClaims) {
	claims := &service.TokenClaims{
		UserID: uuid.New(),
		Email:  "alice@example.com",
		Role:   entity.RoleResearcher,
	}

	return "valid-token", map[string]*service.TokenClaims{"valid-token": claims}
}

func TestGate_PublicPathsPassWithoutToken(t *testing.T) {
	gate := newTestGate(nil)

	for _, path := range []string{"/", "/login", "/register", "/health", "/auth/login", "/static/app.css"} {
		rec, _, reached := gateRequest(gate, path, "")
		assert.True(t, reached, "path %s should be public", path)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestGate_MissingTokenOnAPIReturns401(t *testing.T) {
	gate := newTestGate(nil)

	rec, _, reached := gateRequest(gate, "/api/user/me", "")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_REQUIRED")
}

func TestGate_MissingTokenOnPageRedirectsToLogin(t *testing.T) {
	gate := newTestGate(nil)

	rec, _, reached := gateRequest(gate, "/dashboard", "")

	assert.False(t, reached)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestGate_InvalidTokenClearsCookies(t *testing.T) {
	gate := newTestGate(nil)

	rec, _, reached := gateRequest(gate, "/api/user/me", "expired-or-forged")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Both auth cookies come back expired so the client stops resending them.
	expired := map[string]bool{}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 {
			expired[cookie.Name] = true
		}
	}
	assert.True(t, expired[cookies.AccessToken])
	assert.True(t, expired[cookies.RefreshToken])
}

func TestGate_ValidTokenInjectsIdentity(t *testing.T) {
	token, tokens := researcherToken()
	gate := newTestGate(tokens)

	rec, c, reached := gateRequest(gate, "/api/user/me", token)

	require.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)

	identity, ok := deliverycontext.GetIdentity(c)
	require.True(t, ok)
	assert.Equal(t, tokens[token].UserID, identity.UserID)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.Equal(t, entity.RoleResearcher, identity.Role)
}

func TestGate_RoleMismatchOnAPIReturns403(t *testing.T) {
	token, tokens := researcherToken()
	gate := newTestGate(tokens)

	rec, _, reached := gateRequest(gate, "/api/company/programs", token)

	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGate_RoleMismatchOnPageRedirectsToDashboard(t *testing.T) {
	token, tokens := researcherToken()
	gate := newTestGate(tokens)

	rec, _, reached := gateRequest(gate, "/company/programs", token)

	assert.False(t, reached)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestGate_MatchingRolePasses(t *testing.T) {
	token, tokens := researcherToken()
	gate := newTestGate(tokens)

	rec, _, reached := gateRequest(gate, "/api/researcher/reports", token)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGate_PrefixMatchingDoesNotBleed(t *testing.T) {
	// /researcher-blog shares a string prefix with /researcher but is not
	// under it, so it needs no specific role.
	token, tokens := researcherToken()
	tokens[token].Role = entity.RoleCompany
	gate := newTestGate(tokens)

	_, _, reached := gateRequest(gate, "/researcher-blog", token)

	assert.True(t, reached)
}

func TestRequiredRole(t *testing.T) {
	cases := []struct {
		path       string
		role       entity.Role
		restricted bool
	}{
		{"/api/admin/audit", entity.RoleAdmin, true},
		{"/api/company", entity.RoleCompany, true},
		{"/api/researcher/reports", entity.RoleResearcher, true},
		{"/admin", entity.RoleAdmin, true},
		{"/api/user/me", "", false},
		{"/dashboard", "", false},
		{"/api/companyX", "", false},
	}

	for _, tc := range cases {
		role, restricted := requiredRole(tc.path)
		assert.Equal(t, tc.restricted, restricted, tc.path)
		assert.Equal(t, tc.role, role, tc.path)
	}
}
