package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one issued token pair and the client it was issued to.
// Tokens are self-verifying, so an expired session record is inert; the record
// exists for logout bookkeeping and for showing users their active sessions.
type Session struct {
	ID               uuid.UUID // The unique ID for this session record.
	UserID           uuid.UUID // Links this session to the User it belongs to.
	TokenHash        string    // SHA-256 hash of the raw access token.
	RefreshTokenHash string    // SHA-256 hash of the raw refresh token.
	UserAgent        string    // The client's User-Agent header at login time.
	IPAddress        string    // The client's IP address at login time.
	ExpiresAt        time.Time // When the access token this record tracks expires.
	CreatedAt        time.Time // Timestamp of when this session was created.
}
