package impl

import (
	"context"
	"log/slog"

	deliverycontext "bountyhub/internal/delivery/context"
	"bountyhub/internal/domain/entity"
	domainerrors "bountyhub/internal/domain/errors"
	"bountyhub/internal/domain/repository"
	"bountyhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// programService implements the ProgramUsecase interface.
type programService struct {
	txManager   repository.TransactionManager
	programRepo repository.ProgramRepository
	logger      *slog.Logger
}

// ProgramServiceParams holds dependencies for programService, injected by Fx.
type ProgramServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProgramRepo repository.ProgramRepository
	Logger      *slog.Logger
}

// NewProgramService is the constructor for programService.
func NewProgramService(params ProgramServiceParams) usecase.ProgramUsecase {
	return &programService{
		txManager:   params.TxManager,
		programRepo: params.ProgramRepo,
		logger:      params.Logger,
	}
}

func (srv *programService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProgram opens a new bounty program owned by the calling company.
func (srv *programService) CreateProgram(ctx context.Context, input *usecase.CreateProgramInput) (*entity.Program, error) {
	if input.MinReward < 0 || input.MaxReward < input.MinReward {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("reward range is invalid")
	}

	program := &entity.Program{
		ID:          uuid.New(),
		CompanyID:   input.CompanyID,
		Title:       input.Title,
		Description: input.Description,
		Scope:       input.Scope,
		MinReward:   input.MinReward,
		MaxReward:   input.MaxReward,
		Status:      entity.ProgramStatusActive,
	}
	if err := srv.programRepo.Create(ctx, program); err != nil {
		return nil, errors.Wrap(err, "failed to create program")
	}

	srv.log(ctx).Info("Program created", slog.Any("programID", program.ID), slog.Any("companyID", input.CompanyID))

	return program, nil
}

// UpdateProgram applies the provided fields to a program the caller owns.
func (srv *programService) UpdateProgram(ctx context.Context, input *usecase.UpdateProgramInput) (*entity.Program, error) {
	program, err := srv.findProgram(ctx, input.ProgramID)
	if err != nil {
		return nil, err
	}
	if program.CompanyID != input.CompanyID {
		return nil, domainerrors.ErrForbidden.WrapMessage("program belongs to another company")
	}

	if input.Title != nil {
		program.Title = *input.Title
	}
	if input.Description != nil {
		program.Description = *input.Description
	}
	if input.Scope != nil {
		program.Scope = *input.Scope
	}
	if input.MinReward != nil {
		program.MinReward = *input.MinReward
	}
	if input.MaxReward != nil {
		program.MaxReward = *input.MaxReward
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown program status")
		}
		program.Status = *input.Status
	}
	if program.MinReward < 0 || program.MaxReward < program.MinReward {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("reward range is invalid")
	}

	if err := srv.programRepo.Update(ctx, program); err != nil {
		return nil, errors.Wrap(err, "failed to update program")
	}

	srv.log(ctx).Info("Program updated", slog.Any("programID", program.ID))

	return program, nil
}

// GetProgram fetches a single program.
func (srv *programService) GetProgram(ctx context.Context, programID uuid.UUID) (*entity.Program, error) {
	return srv.findProgram(ctx, programID)
}

// ListActivePrograms lists the programs open for enrollment.
func (srv *programService) ListActivePrograms(ctx context.Context) ([]*entity.Program, error) {
	programs, err := srv.programRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active programs")
	}

	return programs, nil
}

// ListCompanyPrograms lists all programs owned by a company.
func (srv *programService) ListCompanyPrograms(ctx context.Context, companyID uuid.UUID) ([]*entity.Program, error) {
	programs, err := srv.programRepo.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list company programs")
	}

	return programs, nil
}

// Enroll registers a researcher in an active program. Enrolling twice is a
// conflict, reported the same way whether caught before or by the unique
// constraint.
func (srv *programService) Enroll(ctx context.Context, input *usecase.EnrollInput) (*entity.Enrollment, error) {
	var enrollment *entity.Enrollment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		programRepo := repoFactory.ProgramRepo()

		program, err := programRepo.FindByID(ctx, input.ProgramID)
		if errors.Is(err, repository.ErrProgramNotFound) {
			return domainerrors.ErrProgramNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find program")
		}
		if program.Status != entity.ProgramStatusActive {
			return domainerrors.ErrProgramNotAcceptingReports.WrapMessage("program is not active")
		}

		enrolled, err := programRepo.IsEnrolled(ctx, input.ProgramID, input.ResearcherID)
		if err != nil {
			return errors.Wrap(err, "failed to check enrollment")
		}
		if enrolled {
			return domainerrors.ErrAlreadyEnrolled
		}

		enrollment = &entity.Enrollment{
			ID:           uuid.New(),
			ProgramID:    input.ProgramID,
			ResearcherID: input.ResearcherID,
		}
		if err := programRepo.CreateEnrollment(ctx, enrollment); err != nil {
			if errors.Is(err, repository.ErrEnrollmentExists) {
				return domainerrors.ErrAlreadyEnrolled
			}

			return errors.Wrap(err, "failed to create enrollment")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Researcher enrolled", slog.Any("programID", input.ProgramID), slog.Any("researcherID", input.ResearcherID))

	return enrollment, nil
}

func (srv *programService) findProgram(ctx context.Context, programID uuid.UUID) (*entity.Program, error) {
	program, err := srv.programRepo.FindByID(ctx, programID)
	if errors.Is(err, repository.ErrProgramNotFound) {
		return nil, domainerrors.ErrProgramNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find program")
	}

	return program, nil
}
