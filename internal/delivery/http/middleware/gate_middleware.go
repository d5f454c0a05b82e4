package middleware

import (
	"net/http"
	"strings"

	"bountyhub/config"
	deliverycontext "bountyhub/internal/delivery/context"
	"bountyhub/internal/delivery/http/cookies"
	"bountyhub/internal/delivery/http/response"
	"bountyhub/internal/domain/entity"
	"bountyhub/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

// publicExact are paths anyone may hit without a token.
var publicExact = map[string]struct{}{
	"/":                {},
	"/login":           {},
	"/register":        {},
	"/forgot-password": {},
	"/reset-password":  {},
	"/health":          {},
}

// publicPrefixes are path prefixes anyone may hit without a token. The auth
// endpoints live here: login and register obviously cannot require a token,
// and logout/refresh do their own cookie checks.
var publicPrefixes = []string{
	"/static/",
	"/auth/",
}

// rolePrefix binds a path prefix to the single role allowed under it.
// Longest prefix wins, so /api/admin is checked before a plain /api rule would be.
type rolePrefix struct {
	prefix string
	role   entity.Role
}

var rolePrefixes = []rolePrefix{
	{"/api/admin", entity.RoleAdmin},
	{"/api/company", entity.RoleCompany},
	{"/api/researcher", entity.RoleResearcher},
	{"/admin", entity.RoleAdmin},
	{"/company", entity.RoleCompany},
	{"/researcher", entity.RoleResearcher},
}

// GateMiddleware authenticates every request outside the public allow-list
// and enforces the role each path prefix demands.
type GateMiddleware struct {
	tokenSvc service.TokenService
	secure   bool
}

// NewGateMiddleware is the constructor for GateMiddleware.
func NewGateMiddleware(tokenSvc service.TokenService, cfg *config.Config) *GateMiddleware {
	return &GateMiddleware{
		tokenSvc: tokenSvc,
		secure:   cfg.Env.Env != "development",
	}
}

// Handle classifies the request path, verifies the access token cookie and
// injects the verified identity for handlers. API routes get JSON errors,
// page routes get redirects.
func (m *GateMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		if isPublic(path) {
			return next(c)
		}

		token := cookies.Read(c, cookies.AccessToken)
		if token == "" {
			return m.rejectUnauthenticated(c, path)
		}

		claims, err := m.tokenSvc.VerifyAccessToken(token)
		if err != nil {
			// Expired and malformed tokens are indistinguishable from outside.
			cookies.Clear(c, m.secure)

			return m.rejectUnauthenticated(c, path)
		}

		if required, restricted := requiredRole(path); restricted && claims.Role != required {
			// Wrong role is a distinct outcome from not being signed in.
			if isAPI(path) {
				return response.Forbidden(c, "FORBIDDEN", "Forbidden")
			}

			return c.Redirect(http.StatusFound, dashboardPath)
		}

		deliverycontext.SetIdentity(c, claims)

		return next(c)
	}
}

func (m *GateMiddleware) rejectUnauthenticated(c echo.Context, path string) error {
	if isAPI(path) {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	return c.Redirect(http.StatusFound, loginPath)
}

func isPublic(path string) bool {
	if _, ok := publicExact[path]; ok {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

func isAPI(path string) bool {
	return strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/auth/")
}

func requiredRole(path string) (entity.Role, bool) {
	for _, rp := range rolePrefixes {
		if path == rp.prefix || strings.HasPrefix(path, rp.prefix+"/") {
			return rp.role, true
		}
	}

	return "", false
}
