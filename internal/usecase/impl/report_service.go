package impl

import (
	"context"
	"log/slog"

	deliverycontext "bountyhub/internal/delivery/context"
	"bountyhub/internal/domain/entity"
	domainerrors "bountyhub/internal/domain/errors"
	"bountyhub/internal/domain/repository"
	"bountyhub/internal/domain/service"
	"bountyhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reportService implements the ReportUsecase interface.
type reportService struct {
	txManager   repository.TransactionManager
	reportRepo  repository.ReportRepository
	programRepo repository.ProgramRepository
	auditSink   service.AuditSink
	logger      *slog.Logger
}

// ReportServiceParams holds dependencies for reportService, injected by Fx.
type ReportServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ReportRepo  repository.ReportRepository
	ProgramRepo repository.ProgramRepository
	AuditSink   service.AuditSink
	Logger      *slog.Logger
}

// NewReportService is the constructor for reportService.
func NewReportService(params ReportServiceParams) usecase.ReportUsecase {
	return &reportService{
		txManager:   params.TxManager,
		reportRepo:  params.ReportRepo,
		programRepo: params.ProgramRepo,
		auditSink:   params.AuditSink,
		logger:      params.Logger,
	}
}

func (srv *reportService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitReport files a finding against a program the researcher is enrolled in.
func (srv *reportService) SubmitReport(ctx context.Context, input *usecase.SubmitReportInput) (*entity.Report, error) {
	if !input.Severity.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown severity")
	}

	program, err := srv.programRepo.FindByID(ctx, input.ProgramID)
	if errors.Is(err, repository.ErrProgramNotFound) {
		return nil, domainerrors.ErrProgramNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find program")
	}
	if program.Status != entity.ProgramStatusActive {
		return nil, domainerrors.ErrProgramNotAcceptingReports
	}

	enrolled, err := srv.programRepo.IsEnrolled(ctx, input.ProgramID, input.ResearcherID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check enrollment")
	}
	if !enrolled {
		return nil, domainerrors.ErrNotEnrolled
	}

	report := &entity.Report{
		ID:           uuid.New(),
		ProgramID:    input.ProgramID,
		ResearcherID: input.ResearcherID,
		Title:        input.Title,
		Description:  input.Description,
		Severity:     input.Severity,
		Status:       entity.ReportStatusNew,
	}
	if err := srv.reportRepo.Create(ctx, report); err != nil {
		return nil, errors.Wrap(err, "failed to create report")
	}

	srv.auditSink.Record(ctx, &input.ResearcherID, entity.AuditActionReportSubmitted,
		map[string]any{"reportID": report.ID.String(), "programID": input.ProgramID.String(), "severity": string(input.Severity)},
		input.IPAddress, input.UserAgent)

	srv.log(ctx).Info("Report submitted", slog.Any("reportID", report.ID), slog.Any("programID", input.ProgramID))

	return report, nil
}

// UpdateReportStatus records a triage decision by the program's owner. A
// reward on an accepted or resolved report credits the researcher's XP in the
// same transaction.
func (srv *reportService) UpdateReportStatus(ctx context.Context, input *usecase.UpdateReportStatusInput) (*entity.Report, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown report status")
	}

	var updated *entity.Report
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reportRepo := repoFactory.ReportRepo()
		programRepo := repoFactory.ProgramRepo()
		userRepo := repoFactory.UserRepo()

		report, err := reportRepo.FindByID(ctx, input.ReportID)
		if errors.Is(err, repository.ErrReportNotFound) {
			return domainerrors.ErrReportNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find report")
		}

		program, err := programRepo.FindByID(ctx, report.ProgramID)
		if err != nil {
			return errors.Wrap(err, "failed to find program for report")
		}
		if program.CompanyID != input.CompanyID {
			return domainerrors.ErrForbidden.WrapMessage("report belongs to another company's program")
		}

		report.Status = input.Status
		rewarded := input.Status == entity.ReportStatusAccepted || input.Status == entity.ReportStatusResolved
		if rewarded && input.Reward != nil {
			if *input.Reward < program.MinReward || *input.Reward > program.MaxReward {
				return domainerrors.ErrValidationFailed.WrapMessage("reward is outside the program's range")
			}
			report.Reward = input.Reward
			if err := userRepo.AddXP(ctx, report.ResearcherID, *input.Reward); err != nil {
				return errors.Wrap(err, "failed to credit researcher")
			}
		}

		if err := reportRepo.Update(ctx, report); err != nil {
			return errors.Wrap(err, "failed to update report")
		}

		updated = report

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.auditSink.Record(ctx, &updated.ResearcherID, entity.AuditActionReportStatusChanged,
		map[string]any{"reportID": updated.ID.String(), "status": string(updated.Status)},
		input.IPAddress, input.UserAgent)

	srv.log(ctx).Info("Report status updated", slog.Any("reportID", updated.ID), slog.Any("status", updated.Status))

	return updated, nil
}

// GetReport fetches a single report.
func (srv *reportService) GetReport(ctx context.Context, reportID uuid.UUID) (*entity.Report, error) {
	report, err := srv.reportRepo.FindByID(ctx, reportID)
	if errors.Is(err, repository.ErrReportNotFound) {
		return nil, domainerrors.ErrReportNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find report")
	}

	return report, nil
}

// ListResearcherReports lists the reports a researcher has submitted.
func (srv *reportService) ListResearcherReports(ctx context.Context, researcherID uuid.UUID) ([]*entity.Report, error) {
	reports, err := srv.reportRepo.FindByResearcherID(ctx, researcherID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list researcher reports")
	}

	return reports, nil
}

// ListProgramReports lists a program's reports for the company that owns it.
func (srv *reportService) ListProgramReports(ctx context.Context, companyID, programID uuid.UUID) ([]*entity.Report, error) {
	program, err := srv.programRepo.FindByID(ctx, programID)
	if errors.Is(err, repository.ErrProgramNotFound) {
		return nil, domainerrors.ErrProgramNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find program")
	}
	if program.CompanyID != companyID {
		return nil, domainerrors.ErrForbidden.WrapMessage("program belongs to another company")
	}

	reports, err := srv.reportRepo.FindByProgramID(ctx, programID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list program reports")
	}

	return reports, nil
}
