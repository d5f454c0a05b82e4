package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportModel mirrors the 'reports' table.
type ReportModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProgramID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ResearcherID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"type:varchar(200);not null"`
	Description  string    `gorm:"type:text;not null"`
	Severity     string    `gorm:"type:varchar(20);not null"`
	Status       string    `gorm:"type:varchar(20);not null;index"`
	Reward       *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReportModel) TableName() string {
	return "reports"
}
