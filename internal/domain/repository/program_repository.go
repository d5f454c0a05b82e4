package repository

import (
	"context"
	"errors"

	"bountyhub/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for program persistence.
var (
	// ErrProgramNotFound is returned when a program is not found.
	ErrProgramNotFound = errors.New("program not found")
	// ErrEnrollmentExists is returned when a researcher is already enrolled.
	ErrEnrollmentExists = errors.New("enrollment already exists")
)

// ProgramRepository defines the standard operations for program persistence.
type ProgramRepository interface {
	// Create persists a new program.
	Create(ctx context.Context, program *entity.Program) error

	// Update modifies an existing program.
	Update(ctx context.Context, program *entity.Program) error

	// FindByID retrieves a single program by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Program, error)

	// FindByCompanyID retrieves all programs owned by a company, newest first.
	FindByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*entity.Program, error)

	// ListActive retrieves all active programs, newest first.
	ListActive(ctx context.Context) ([]*entity.Program, error)

	// CreateEnrollment persists a researcher's membership in a program.
	CreateEnrollment(ctx context.Context, enrollment *entity.Enrollment) error

	// IsEnrolled reports whether the researcher is enrolled in the program.
	IsEnrolled(ctx context.Context, programID, researcherID uuid.UUID) (bool, error)

	// FindEnrollmentsByProgramID retrieves all enrollments of a program.
	FindEnrollmentsByProgramID(ctx context.Context, programID uuid.UUID) ([]*entity.Enrollment, error)
}
