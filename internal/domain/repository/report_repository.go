package repository

import (
	"context"
	"errors"

	"bountyhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReportNotFound is returned when a report is not found.
var ErrReportNotFound = errors.New("report not found")

// ReportRepository defines the standard operations for report persistence.
type ReportRepository interface {
	// Create persists a new report.
	Create(ctx context.Context, report *entity.Report) error

	// Update modifies an existing report.
	Update(ctx context.Context, report *entity.Report) error

	// FindByID retrieves a single report by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)

	// FindByResearcherID retrieves all reports submitted by a researcher, newest first.
	FindByResearcherID(ctx context.Context, researcherID uuid.UUID) ([]*entity.Report, error)

	// FindByProgramID retrieves all reports submitted to a program, newest first.
	FindByProgramID(ctx context.Context, programID uuid.UUID) ([]*entity.Report, error)
}
