package impl

import (
	"context"
	"testing"

	"bountyhub/internal/domain/entity"
	domainerrors "bountyhub/internal/domain/errors"
	"bountyhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixtures struct {
	service     *reportService
	reportRepo  *fakeReportRepo
	programRepo *fakeProgramRepo
	userRepo    *fakeUserRepo
	audit       *fakeAuditSink
}

func createTestReportService(users []*entity.User, programs ...*entity.Program) reportFixtures {
	userRepo := newFakeUserRepo(users...)
	programRepo := newFakeProgramRepo(programs...)
	reportRepo := newFakeReportRepo()
	audit := &fakeAuditSink{}

	service := &reportService{
		txManager: &fakeTxManager{factory: &fakeRepoFactory{
			userRepo:    userRepo,
			programRepo: programRepo,
			reportRepo:  reportRepo,
		}},
		reportRepo:  reportRepo,
		programRepo: programRepo,
		auditSink:   audit,
		logger:      newDiscardLogger(),
	}

	return reportFixtures{
		service:     service,
		reportRepo:  reportRepo,
		programRepo: programRepo,
		userRepo:    userRepo,
		audit:       audit,
	}
}

func submitInput(programID, researcherID uuid.UUID) *usecase.SubmitReportInput {
	return &usecase.SubmitReportInput{
		ResearcherID: researcherID,
		ProgramID:    programID,
		Title:        "Stored XSS in profile page",
		Description:  "Steps to reproduce...",
		Severity:     entity.ReportSeverityHigh,
	}
}

func TestReportService_SubmitReport(t *testing.T) {
	program := testProgram(uuid.New())
	researcherID := uuid.New()
	fx := createTestReportService(nil, program)
	ctx := context.Background()

	require.NoError(t, fx.programRepo.CreateEnrollment(ctx, &entity.Enrollment{
		ID: uuid.New(), ProgramID: program.ID, ResearcherID: researcherID,
	}))

	report, err := fx.service.SubmitReport(ctx, submitInput(program.ID, researcherID))

	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusNew, report.Status)
	assert.Nil(t, report.Reward)

	stored, err := fx.reportRepo.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, researcherID, stored.ResearcherID)

	assert.Contains(t, fx.audit.actions(), entity.AuditActionReportSubmitted)
}

func TestReportService_SubmitReport_NotEnrolled(t *testing.T) {
	program := testProgram(uuid.New())
	fx := createTestReportService(nil, program)

	_, err := fx.service.SubmitReport(context.Background(), submitInput(program.ID, uuid.New()))

	assert.ErrorIs(t, err, domainerrors.ErrNotEnrolled)
}

func TestReportService_SubmitReport_InactiveProgram(t *testing.T) {
	program := testProgram(uuid.New())
	program.Status = entity.ProgramStatusClosed
	fx := createTestReportService(nil, program)

	_, err := fx.service.SubmitReport(context.Background(), submitInput(program.ID, uuid.New()))

	assert.ErrorIs(t, err, domainerrors.ErrProgramNotAcceptingReports)
}

func TestReportService_SubmitReport_BadSeverity(t *testing.T) {
	program := testProgram(uuid.New())
	fx := createTestReportService(nil, program)

	input := submitInput(program.ID, uuid.New())
	input.Severity = "catastrophic"
	_, err := fx.service.SubmitReport(context.Background(), input)

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestReportService_UpdateReportStatus_AcceptWithReward(t *testing.T) {
	companyID := uuid.New()
	program := testProgram(companyID)
	researcher := testUser()
	fx := createTestReportService([]*entity.User{researcher}, program)
	ctx := context.Background()

	require.NoError(t, fx.programRepo.CreateEnrollment(ctx, &entity.Enrollment{
		ID: uuid.New(), ProgramID: program.ID, ResearcherID: researcher.ID,
	}))
	report, err := fx.service.SubmitReport(ctx, submitInput(program.ID, researcher.ID))
	require.NoError(t, err)

	reward := 1500
	updated, err := fx.service.UpdateReportStatus(ctx, &usecase.UpdateReportStatusInput{
		CompanyID: companyID,
		ReportID:  report.ID,
		Status:    entity.ReportStatusAccepted,
		Reward:    &reward,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusAccepted, updated.Status)
	require.NotNil(t, updated.Reward)
	assert.Equal(t, reward, *updated.Reward)

	// The reward lands on the researcher as XP.
	stored, err := fx.userRepo.FindByID(ctx, researcher.ID)
	require.NoError(t, err)
	assert.Equal(t, reward, stored.XP)

	assert.Contains(t, fx.audit.actions(), entity.AuditActionReportStatusChanged)
}

func TestReportService_UpdateReportStatus_RewardIgnoredOnRejection(t *testing.T) {
	companyID := uuid.New()
	program := testProgram(companyID)
	researcher := testUser()
	fx := createTestReportService([]*entity.User{researcher}, program)
	ctx := context.Background()

	require.NoError(t, fx.programRepo.CreateEnrollment(ctx, &entity.Enrollment{
		ID: uuid.New(), ProgramID: program.ID, ResearcherID: researcher.ID,
	}))
	report, err := fx.service.SubmitReport(ctx, submitInput(program.ID, researcher.ID))
	require.NoError(t, err)

	reward := 1500
	updated, err := fx.service.UpdateReportStatus(ctx, &usecase.UpdateReportStatusInput{
		CompanyID: companyID,
		ReportID:  report.ID,
		Status:    entity.ReportStatusRejected,
		Reward:    &reward,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusRejected, updated.Status)
	assert.Nil(t, updated.Reward)

	stored, err := fx.userRepo.FindByID(ctx, researcher.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.XP)
}

func TestReportService_UpdateReportStatus_RewardOutsideRange(t *testing.T) {
	companyID := uuid.New()
	program := testProgram(companyID) // rewards 100..5000
	researcher := testUser()
	fx := createTestReportService([]*entity.User{researcher}, program)
	ctx := context.Background()

	require.NoError(t, fx.programRepo.CreateEnrollment(ctx, &entity.Enrollment{
		ID: uuid.New(), ProgramID: program.ID, ResearcherID: researcher.ID,
	}))
	report, err := fx.service.SubmitReport(ctx, submitInput(program.ID, researcher.ID))
	require.NoError(t, err)

	reward := 50000
	_, err = fx.service.UpdateReportStatus(ctx, &usecase.UpdateReportStatusInput{
		CompanyID: companyID,
		ReportID:  report.ID,
		Status:    entity.ReportStatusAccepted,
		Reward:    &reward,
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	// Nothing was persisted: the range check runs before any write.
	stored, findErr := fx.reportRepo.FindByID(ctx, report.ID)
	require.NoError(t, findErr)
	assert.Equal(t, entity.ReportStatusNew, stored.Status)
}

func TestReportService_UpdateReportStatus_WrongCompany(t *testing.T) {
	program := testProgram(uuid.New())
	researcher := testUser()
	fx := createTestReportService([]*entity.User{researcher}, program)
	ctx := context.Background()

	require.NoError(t, fx.programRepo.CreateEnrollment(ctx, &entity.Enrollment{
		ID: uuid.New(), ProgramID: program.ID, ResearcherID: researcher.ID,
	}))
	report, err := fx.service.SubmitReport(ctx, submitInput(program.ID, researcher.ID))
	require.NoError(t, err)

	_, err = fx.service.UpdateReportStatus(ctx, &usecase.UpdateReportStatusInput{
		CompanyID: uuid.New(),
		ReportID:  report.ID,
		Status:    entity.ReportStatusTriaging,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestReportService_ListProgramReports_WrongCompany(t *testing.T) {
	program := testProgram(uuid.New())
	fx := createTestReportService(nil, program)

	_, err := fx.service.ListProgramReports(context.Background(), uuid.New(), program.ID)

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
