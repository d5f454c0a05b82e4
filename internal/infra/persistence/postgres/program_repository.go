package postgres

import (
	"context"

	"bountyhub/internal/domain/entity"
	"bountyhub/internal/domain/repository"
	"bountyhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// programRepository implements the domain.ProgramRepository interface using GORM.
type programRepository struct {
	db *gorm.DB
}

// NewProgramRepository is the constructor for programRepository.
func NewProgramRepository(db *gorm.DB) repository.ProgramRepository {
	return &programRepository{db: db}
}

// Create persists a new program.
func (repo *programRepository) Create(ctx context.Context, program *entity.Program) error {
	programM := fromProgramDomain(program)
	if err := repo.db.WithContext(ctx).Create(programM).Error; err != nil {
		return errors.Wrap(err, "failed to create program")
	}

	program.CreatedAt = programM.CreatedAt
	program.UpdatedAt = programM.UpdatedAt

	return nil
}

// Update persists changes to an existing program.
func (repo *programRepository) Update(ctx context.Context, program *entity.Program) error {
	result := repo.db.WithContext(ctx).Model(&model.ProgramModel{}).
		Where("id = ?", program.ID).
		Updates(fromProgramDomain(program))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update program")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProgramNotFound
	}

	return nil
}

// FindByID retrieves a single program by its unique ID.
func (repo *programRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Program, error) {
	var programM model.ProgramModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&programM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProgramNotFound
		}

		return nil, errors.Wrap(err, "failed to find program by id")
	}

	return toProgramDomain(&programM), nil
}

// FindByCompanyID retrieves all programs owned by a company, newest first.
func (repo *programRepository) FindByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*entity.Program, error) {
	var models []model.ProgramModel
	err := repo.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find programs by company id")
	}

	return toProgramDomainList(models), nil
}

// ListActive retrieves all active programs, newest first.
func (repo *programRepository) ListActive(ctx context.Context) ([]*entity.Program, error) {
	var models []model.ProgramModel
	err := repo.db.WithContext(ctx).
		Where("status = ?", string(entity.ProgramStatusActive)).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active programs")
	}

	return toProgramDomainList(models), nil
}

// CreateEnrollment persists a researcher's membership in a program. The
// composite unique index turns a duplicate into ErrEnrollmentExists.
func (repo *programRepository) CreateEnrollment(ctx context.Context, enrollment *entity.Enrollment) error {
	enrollmentM := &model.EnrollmentModel{
		ID:           enrollment.ID,
		ProgramID:    enrollment.ProgramID,
		ResearcherID: enrollment.ResearcherID,
	}
	if err := repo.db.WithContext(ctx).Create(enrollmentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrEnrollmentExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProgramNotFound
		}

		return errors.Wrap(err, "failed to create enrollment")
	}

	enrollment.EnrolledAt = enrollmentM.EnrolledAt

	return nil
}

// IsEnrolled reports whether the researcher is enrolled in the program.
func (repo *programRepository) IsEnrolled(ctx context.Context, programID, researcherID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.EnrollmentModel{}).
		Where("program_id = ? AND researcher_id = ?", programID, researcherID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check enrollment")
	}

	return count > 0, nil
}

// FindEnrollmentsByProgramID retrieves all enrollments of a program.
func (repo *programRepository) FindEnrollmentsByProgramID(ctx context.Context, programID uuid.UUID) ([]*entity.Enrollment, error) {
	var models []model.EnrollmentModel
	err := repo.db.WithContext(ctx).
		Where("program_id = ?", programID).
		Order("enrolled_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find enrollments by program id")
	}

	enrollments := make([]*entity.Enrollment, 0, len(models))
	for i := range models {
		m := &models[i]
		enrollments = append(enrollments, &entity.Enrollment{
			ID:           m.ID,
			ProgramID:    m.ProgramID,
			ResearcherID: m.ResearcherID,
			EnrolledAt:   m.EnrolledAt,
		})
	}

	return enrollments, nil
}

func toProgramDomainList(models []model.ProgramModel) []*entity.Program {
	programs := make([]*entity.Program, 0, len(models))
	for i := range models {
		programs = append(programs, toProgramDomain(&models[i]))
	}

	return programs
}

func toProgramDomain(m *model.ProgramModel) *entity.Program {
	return &entity.Program{
		ID:          m.ID,
		CompanyID:   m.CompanyID,
		Title:       m.Title,
		Description: m.Description,
		Scope:       m.Scope,
		MinReward:   m.MinReward,
		MaxReward:   m.MaxReward,
		Status:      entity.ProgramStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromProgramDomain(p *entity.Program) *model.ProgramModel {
	return &model.ProgramModel{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Title:       p.Title,
		Description: p.Description,
		Scope:       p.Scope,
		MinReward:   p.MinReward,
		MaxReward:   p.MaxReward,
		Status:      string(p.Status),
	}
}
