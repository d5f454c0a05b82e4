package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "bountyhub/internal/delivery/context"
	"bountyhub/internal/delivery/http/response"
	"bountyhub/internal/domain/entity"
	domainerrors "bountyhub/internal/domain/errors"
	"bountyhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type submitReportRequest struct {
	ProgramID   string `json:"programId" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Severity    string `json:"severity" validate:"required,oneof=low medium high critical"`
}

type updateReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new triaging accepted rejected resolved"`
	Reward *int   `json:"reward" validate:"omitempty,gte=0"`
}

// ReportHandler holds dependencies for report handlers.
type ReportHandler struct {
	uc     usecase.ReportUsecase
	logger *slog.Logger
}

// NewReportHandler is the constructor for ReportHandler, injected by Fx.
func NewReportHandler(uc usecase.ReportUsecase, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, logger: logger}
}

// Submit files a finding from the calling researcher.
func (h *ReportHandler) Submit(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	var req submitReportRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid report input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	programID, err := uuid.Parse(req.ProgramID)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid program id")
	}

	report, err := h.uc.SubmitReport(c.Request().Context(), &usecase.SubmitReportInput{
		ResearcherID: identity.UserID,
		ProgramID:    programID,
		Title:        req.Title,
		Description:  req.Description,
		Severity:     entity.ReportSeverity(req.Severity),
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, report, "Report submitted")
}

// ListMine lists the calling researcher's reports.
func (h *ReportHandler) ListMine(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	reports, err := h.uc.ListResearcherReports(c.Request().Context(), identity.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reports, "")
}

// GetMine fetches one of the calling researcher's own reports.
func (h *ReportHandler) GetMine(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid report id")
	}

	report, err := h.uc.GetReport(c.Request().Context(), reportID)
	if err != nil {
		return errors.WithStack(err)
	}
	if report.ResearcherID != identity.UserID {
		// Hide other researchers' reports entirely.
		return errors.WithStack(domainerrors.ErrReportNotFound)
	}

	return response.Success(c, http.StatusOK, report, "")
}

// ListForProgram lists a program's reports for the owning company.
func (h *ReportHandler) ListForProgram(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid program id")
	}

	reports, err := h.uc.ListProgramReports(c.Request().Context(), identity.UserID, programID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reports, "")
}

// UpdateStatus records the owning company's triage decision.
func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid report id")
	}

	var req updateReportStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.uc.UpdateReportStatus(c.Request().Context(), &usecase.UpdateReportStatusInput{
		CompanyID: identity.UserID,
		ReportID:  reportID,
		Status:    entity.ReportStatus(req.Status),
		Reward:    req.Reward,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "Report status updated")
}
