// Package cookies centralizes the auth cookie attributes so the login
// handlers and the request gate always agree on them.
package cookies

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// AccessToken is the cookie name for the access token.
	AccessToken = "access_token"

	// RefreshToken is the cookie name for the refresh token.
	RefreshToken = "refresh_token"
)

// newCookie builds an auth cookie with the hardening attributes applied:
// HttpOnly always, SameSite=Strict always, Secure outside development.
func newCookie(name, value string, maxAge time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// SetAuth writes both token cookies after a successful authentication.
func SetAuth(c echo.Context, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration, secure bool) {
	c.SetCookie(newCookie(AccessToken, accessToken, accessTTL, secure))
	c.SetCookie(newCookie(RefreshToken, refreshToken, refreshTTL, secure))
}

// SetAccess writes only the access token cookie, used by the refresh endpoint.
func SetAccess(c echo.Context, accessToken string, accessTTL time.Duration, secure bool) {
	c.SetCookie(newCookie(AccessToken, accessToken, accessTTL, secure))
}

// Clear expires both token cookies.
func Clear(c echo.Context, secure bool) {
	access := newCookie(AccessToken, "", 0, secure)
	access.MaxAge = -1
	refresh := newCookie(RefreshToken, "", 0, secure)
	refresh.MaxAge = -1
	c.SetCookie(access)
	c.SetCookie(refresh)
}

// Read returns the named cookie's value, empty when absent.
func Read(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil || cookie == nil {
		return ""
	}

	return cookie.Value
}
