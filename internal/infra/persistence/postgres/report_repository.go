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

// reportRepository implements the domain.ReportRepository interface using GORM.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository is the constructor for reportRepository.
func NewReportRepository(db *gorm.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

// Create persists a new report.
func (repo *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	reportM := fromReportDomain(report)
	if err := repo.db.WithContext(ctx).Create(reportM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProgramNotFound
		}

		return errors.Wrap(err, "failed to create report")
	}

	report.CreatedAt = reportM.CreatedAt
	report.UpdatedAt = reportM.UpdatedAt

	return nil
}

// Update persists changes to an existing report.
func (repo *reportRepository) Update(ctx context.Context, report *entity.Report) error {
	result := repo.db.WithContext(ctx).Model(&model.ReportModel{}).
		Where("id = ?", report.ID).
		Updates(fromReportDomain(report))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update report")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReportNotFound
	}

	return nil
}

// FindByID retrieves a single report by its unique ID.
func (repo *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	var reportM model.ReportModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&reportM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReportNotFound
		}

		return nil, errors.Wrap(err, "failed to find report by id")
	}

	return toReportDomain(&reportM), nil
}

// FindByResearcherID retrieves all reports submitted by a researcher, newest first.
func (repo *reportRepository) FindByResearcherID(ctx context.Context, researcherID uuid.UUID) ([]*entity.Report, error) {
	var models []model.ReportModel
	err := repo.db.WithContext(ctx).
		Where("researcher_id = ?", researcherID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find reports by researcher id")
	}

	return toReportDomainList(models), nil
}

// FindByProgramID retrieves all reports submitted to a program, newest first.
func (repo *reportRepository) FindByProgramID(ctx context.Context, programID uuid.UUID) ([]*entity.Report, error) {
	var models []model.ReportModel
	err := repo.db.WithContext(ctx).
		Where("program_id = ?", programID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find reports by program id")
	}

	return toReportDomainList(models), nil
}

func toReportDomainList(models []model.ReportModel) []*entity.Report {
	reports := make([]*entity.Report, 0, len(models))
	for i := range models {
		reports = append(reports, toReportDomain(&models[i]))
	}

	return reports
}

func toReportDomain(m *model.ReportModel) *entity.Report {
	return &entity.Report{
		ID:           m.ID,
		ProgramID:    m.ProgramID,
		ResearcherID: m.ResearcherID,
		Title:        m.Title,
		Description:  m.Description,
		Severity:     entity.ReportSeverity(m.Severity),
		Status:       entity.ReportStatus(m.Status),
		Reward:       m.Reward,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromReportDomain(r *entity.Report) *model.ReportModel {
	return &model.ReportModel{
		ID:           r.ID,
		ProgramID:    r.ProgramID,
		ResearcherID: r.ResearcherID,
		Title:        r.Title,
		Description:  r.Description,
		Severity:     string(r.Severity),
		Status:       string(r.Status),
		Reward:       r.Reward,
	}
}
