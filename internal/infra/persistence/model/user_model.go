// Package model holds the GORM persistence models mirroring the database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID                      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email                   string    `gorm:"type:varchar(255);unique;not null"`
	Name                    string    `gorm:"type:varchar(100);not null"`
	PasswordHash            string    `gorm:"type:varchar(255);not null"`
	Role                    string    `gorm:"type:varchar(20);not null"`
	TwoFactorEnabled        bool      `gorm:"not null;default:false"`
	TwoFactorSecret         *string   `gorm:"type:varchar(64)"`
	PendingTwoFactorSecret  *string   `gorm:"type:varchar(64)"`
	PendingTwoFactorExpires *time.Time
	LoginAttempts           int `gorm:"not null;default:0"`
	LockedUntil             *time.Time
	LastLoginAt             *time.Time
	XP                      int `gorm:"column:xp;not null;default:0"`
	CreatedAt               time.Time
	UpdatedAt               time.Time

	Sessions []SessionModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
