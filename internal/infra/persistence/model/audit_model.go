package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditModel mirrors the 'audit_entries' table. Rows are append-only.
type AuditModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Action    string    `gorm:"type:varchar(50);not null;index"`
	Details   []byte    `gorm:"type:jsonb"`
	IPAddress string    `gorm:"type:varchar(45);not null"`
	UserAgent string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (AuditModel) TableName() string {
	return "audit_entries"
}
