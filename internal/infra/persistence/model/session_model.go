package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'sessions' table. Token columns hold SHA-256
// digests, never raw tokens.
type SessionModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash        string    `gorm:"type:varchar(64);not null;index"`
	RefreshTokenHash string    `gorm:"type:varchar(64);not null;index"`
	UserAgent        string    `gorm:"type:text"`
	IPAddress        string    `gorm:"type:varchar(45)"`
	ExpiresAt        time.Time `gorm:"not null;index"`
	CreatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
