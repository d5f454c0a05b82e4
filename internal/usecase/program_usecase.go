package usecase

import (
	"context"

	"bountyhub/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProgramInput defines the data a company submits to open a program.
type CreateProgramInput struct {
	CompanyID   uuid.UUID
	Title       string
	Description string
	Scope       string
	MinReward   int
	MaxReward   int
}

// UpdateProgramInput defines the mutable fields of a program. Nil pointers
// leave the corresponding field unchanged.
type UpdateProgramInput struct {
	CompanyID   uuid.UUID
	ProgramID   uuid.UUID
	Title       *string
	Description *string
	Scope       *string
	MinReward   *int
	MaxReward   *int
	Status      *entity.ProgramStatus
}

// EnrollInput defines the data required to enroll a researcher in a program.
type EnrollInput struct {
	ProgramID    uuid.UUID
	ResearcherID uuid.UUID
}

// ProgramUsecase defines the interface for bounty program operations.
type ProgramUsecase interface {
	CreateProgram(ctx context.Context, input *CreateProgramInput) (*entity.Program, error)
	UpdateProgram(ctx context.Context, input *UpdateProgramInput) (*entity.Program, error)
	GetProgram(ctx context.Context, programID uuid.UUID) (*entity.Program, error)
	ListActivePrograms(ctx context.Context) ([]*entity.Program, error)
	ListCompanyPrograms(ctx context.Context, companyID uuid.UUID) ([]*entity.Program, error)
	Enroll(ctx context.Context, input *EnrollInput) (*entity.Enrollment, error)
}
