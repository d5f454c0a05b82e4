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

type programFixtures struct {
	service     *programService
	programRepo *fakeProgramRepo
}

func createTestProgramService(programs ...*entity.Program) programFixtures {
	programRepo := newFakeProgramRepo(programs...)

	service := &programService{
		txManager:   &fakeTxManager{factory: &fakeRepoFactory{programRepo: programRepo}},
		programRepo: programRepo,
		logger:      newDiscardLogger(),
	}

	return programFixtures{service: service, programRepo: programRepo}
}

func testProgram(companyID uuid.UUID) *entity.Program {
	return &entity.Program{
		ID:        uuid.New(),
		CompanyID: companyID,
		Title:     "Web Application",
		Scope:     "*.example.com",
		MinReward: 100,
		MaxReward: 5000,
		Status:    entity.ProgramStatusActive,
	}
}

func TestProgramService_CreateProgram(t *testing.T) {
	fx := createTestProgramService()
	companyID := uuid.New()

	program, err := fx.service.CreateProgram(context.Background(), &usecase.CreateProgramInput{
		CompanyID: companyID,
		Title:     "Mobile App",
		Scope:     "com.example.app",
		MinReward: 50,
		MaxReward: 2000,
	})

	require.NoError(t, err)
	assert.Equal(t, companyID, program.CompanyID)
	assert.Equal(t, entity.ProgramStatusActive, program.Status)

	stored, err := fx.programRepo.FindByID(context.Background(), program.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mobile App", stored.Title)
}

func TestProgramService_CreateProgram_InvalidRewardRange(t *testing.T) {
	fx := createTestProgramService()

	_, err := fx.service.CreateProgram(context.Background(), &usecase.CreateProgramInput{
		CompanyID: uuid.New(),
		Title:     "Broken",
		MinReward: 500,
		MaxReward: 100,
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProgramService_UpdateProgram(t *testing.T) {
	companyID := uuid.New()
	program := testProgram(companyID)
	fx := createTestProgramService(program)

	newTitle := "Web Application v2"
	paused := entity.ProgramStatusPaused
	updated, err := fx.service.UpdateProgram(context.Background(), &usecase.UpdateProgramInput{
		CompanyID: companyID,
		ProgramID: program.ID,
		Title:     &newTitle,
		Status:    &paused,
	})

	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, entity.ProgramStatusPaused, updated.Status)
	// Untouched fields survive a partial update.
	assert.Equal(t, program.Scope, updated.Scope)
	assert.Equal(t, program.MaxReward, updated.MaxReward)
}

func TestProgramService_UpdateProgram_WrongCompany(t *testing.T) {
	program := testProgram(uuid.New())
	fx := createTestProgramService(program)

	newTitle := "Hijacked"
	_, err := fx.service.UpdateProgram(context.Background(), &usecase.UpdateProgramInput{
		CompanyID: uuid.New(),
		ProgramID: program.ID,
		Title:     &newTitle,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestProgramService_UpdateProgram_NotFound(t *testing.T) {
	fx := createTestProgramService()

	_, err := fx.service.UpdateProgram(context.Background(), &usecase.UpdateProgramInput{
		CompanyID: uuid.New(),
		ProgramID: uuid.New(),
	})

	assert.ErrorIs(t, err, domainerrors.ErrProgramNotFound)
}

func TestProgramService_ListActivePrograms(t *testing.T) {
	active := testProgram(uuid.New())
	closed := testProgram(uuid.New())
	closed.Status = entity.ProgramStatusClosed
	fx := createTestProgramService(active, closed)

	programs, err := fx.service.ListActivePrograms(context.Background())

	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, active.ID, programs[0].ID)
}

func TestProgramService_Enroll(t *testing.T) {
	program := testProgram(uuid.New())
	fx := createTestProgramService(program)
	researcherID := uuid.New()

	enrollment, err := fx.service.Enroll(context.Background(), &usecase.EnrollInput{
		ProgramID:    program.ID,
		ResearcherID: researcherID,
	})

	require.NoError(t, err)
	assert.Equal(t, program.ID, enrollment.ProgramID)
	assert.Equal(t, researcherID, enrollment.ResearcherID)

	enrolled, err := fx.programRepo.IsEnrolled(context.Background(), program.ID, researcherID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestProgramService_Enroll_Twice(t *testing.T) {
	program := testProgram(uuid.New())
	fx := createTestProgramService(program)
	researcherID := uuid.New()
	input := &usecase.EnrollInput{ProgramID: program.ID, ResearcherID: researcherID}

	_, err := fx.service.Enroll(context.Background(), input)
	require.NoError(t, err)

	_, err = fx.service.Enroll(context.Background(), input)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyEnrolled)
}

func TestProgramService_Enroll_InactiveProgram(t *testing.T) {
	program := testProgram(uuid.New())
	program.Status = entity.ProgramStatusPaused
	fx := createTestProgramService(program)

	_, err := fx.service.Enroll(context.Background(), &usecase.EnrollInput{
		ProgramID:    program.ID,
		ResearcherID: uuid.New(),
	})

	assert.ErrorIs(t, err, domainerrors.ErrProgramNotAcceptingReports)
}

func TestProgramService_Enroll_ProgramNotFound(t *testing.T) {
	fx := createTestProgramService()

	_, err := fx.service.Enroll(context.Background(), &usecase.EnrollInput{
		ProgramID:    uuid.New(),
		ResearcherID: uuid.New(),
	})

	assert.ErrorIs(t, err, domainerrors.ErrProgramNotFound)
}
