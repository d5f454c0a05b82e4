package usecase

import (
	"context"

	"bountyhub/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitReportInput defines the data a researcher submits with a finding.
type SubmitReportInput struct {
	ResearcherID uuid.UUID
	ProgramID    uuid.UUID
	Title        string
	Description  string
	Severity     entity.ReportSeverity
	IPAddress    string
	UserAgent    string
}

// UpdateReportStatusInput defines a company's triage decision on a report.
// Reward is only honored when the new status is accepted or resolved.
type UpdateReportStatusInput struct {
	CompanyID uuid.UUID
	ReportID  uuid.UUID
	Status    entity.ReportStatus
	Reward    *int
	IPAddress string
	UserAgent string
}

// ReportUsecase defines the interface for vulnerability report operations.
type ReportUsecase interface {
	SubmitReport(ctx context.Context, input *SubmitReportInput) (*entity.Report, error)
	UpdateReportStatus(ctx context.Context, input *UpdateReportStatusInput) (*entity.Report, error)
	GetReport(ctx context.Context, reportID uuid.UUID) (*entity.Report, error)
	ListResearcherReports(ctx context.Context, researcherID uuid.UUID) ([]*entity.Report, error)
	ListProgramReports(ctx context.Context, companyID, programID uuid.UUID) ([]*entity.Report, error)
}
