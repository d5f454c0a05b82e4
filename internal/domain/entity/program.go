package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProgramStatus represents the lifecycle state of a disclosure program.
type ProgramStatus string

const (
	// ProgramStatusActive indicates the program accepts enrollments and reports.
	ProgramStatusActive ProgramStatus = "active"
	// ProgramStatusPaused indicates the program is temporarily not accepting reports.
	ProgramStatusPaused ProgramStatus = "paused"
	// ProgramStatusClosed indicates the program has ended.
	ProgramStatusClosed ProgramStatus = "closed"
)

// IsValid checks if the ProgramStatus is a valid value.
func (s ProgramStatus) IsValid() bool {
	switch s {
	case ProgramStatusActive, ProgramStatusPaused, ProgramStatusClosed:
		return true
	default:
		return false
	}
}

// Program represents a company-run vulnerability disclosure program.
type Program struct {
	ID          uuid.UUID     // The Global Unique Identifier (GUID) for the program.
	CompanyID   uuid.UUID     // The company account that owns this program.
	Title       string        // Short program name shown in listings.
	Description string        // What the program covers and how to participate.
	Scope       string        // In-scope assets, e.g. domains and repositories.
	MinReward   int           // Minimum reward in whole currency units.
	MaxReward   int           // Maximum reward in whole currency units.
	Status      ProgramStatus // Current lifecycle state.
	CreatedAt   time.Time     // Timestamp of when the program was created.
	UpdatedAt   time.Time     // Timestamp of the last modification.
}

// Enrollment represents a researcher's membership in a program.
type Enrollment struct {
	ID           uuid.UUID // The unique ID for this enrollment record.
	ProgramID    uuid.UUID // The program being joined.
	ResearcherID uuid.UUID // The researcher joining.
	EnrolledAt   time.Time // Timestamp of when the researcher enrolled.
}
