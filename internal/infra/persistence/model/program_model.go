package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgramModel mirrors the 'programs' table.
type ProgramModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Scope       string    `gorm:"type:text"`
	MinReward   int       `gorm:"not null;default:0"`
	MaxReward   int       `gorm:"not null;default:0"`
	Status      string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Enrollments []EnrollmentModel `gorm:"foreignKey:ProgramID"`
}

// TableName explicitly sets the table name for GORM.
func (ProgramModel) TableName() string {
	return "programs"
}

// EnrollmentModel mirrors the 'enrollments' table. The composite unique index
// makes double-enrollment a constraint violation.
type EnrollmentModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProgramID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_program_researcher"`
	ResearcherID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_program_researcher"`
	EnrolledAt   time.Time `gorm:"autoCreateTime"`
}

// TableName explicitly sets the table name for GORM.
func (EnrollmentModel) TableName() string {
	return "enrollments"
}
