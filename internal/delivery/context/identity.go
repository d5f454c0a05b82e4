package context

import (
	"bountyhub/internal/domain/entity"
	"bountyhub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// KeyUserID is the key for the authenticated user's ID.
	KeyUserID ContextKey = "user_id"

	// KeyUserEmail is the key for the authenticated user's email.
	KeyUserEmail ContextKey = "user_email"

	// KeyUserRole is the key for the authenticated user's role.
	KeyUserRole ContextKey = "user_role"
)

// SetIdentity stores the verified identity on the echo context. Handlers must
// read identity from here and never from anything the client sent.
func SetIdentity(c echo.Context, claims *service.TokenClaims) {
	c.Set(string(KeyUserID), claims.UserID)
	c.Set(string(KeyUserEmail), claims.Email)
	c.Set(string(KeyUserRole), claims.Role)
}

// GetIdentity reads the verified identity back from the echo context.
// ok is false when the request never passed authentication.
func GetIdentity(c echo.Context) (*service.TokenClaims, bool) {
	userID, ok := c.Get(string(KeyUserID)).(uuid.UUID)
	if !ok {
		return nil, false
	}

	claims := &service.TokenClaims{UserID: userID}
	if email, ok := c.Get(string(KeyUserEmail)).(string); ok {
		claims.Email = email
	}
	if role, ok := c.Get(string(KeyUserRole)).(entity.Role); ok {
		claims.Role = role
	}

	return claims, true
}
