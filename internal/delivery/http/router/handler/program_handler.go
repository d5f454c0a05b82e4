package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "bountyhub/internal/delivery/context"
	"bountyhub/internal/delivery/http/response"
	"bountyhub/internal/domain/entity"
	"bountyhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type createProgramRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Scope       string `json:"scope"`
	MinReward   int    `json:"minReward" validate:"gte=0"`
	MaxReward   int    `json:"maxReward" validate:"gte=0"`
}

type updateProgramRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	Scope       *string `json:"scope"`
	MinReward   *int    `json:"minReward" validate:"omitempty,gte=0"`
	MaxReward   *int    `json:"maxReward" validate:"omitempty,gte=0"`
	Status      *string `json:"status" validate:"omitempty,oneof=active paused closed"`
}

// ProgramHandler holds dependencies for program handlers.
type ProgramHandler struct {
	uc     usecase.ProgramUsecase
	logger *slog.Logger
}

// NewProgramHandler is the constructor for ProgramHandler, injected by Fx.
func NewProgramHandler(uc usecase.ProgramUsecase, logger *slog.Logger) *ProgramHandler {
	return &ProgramHandler{uc: uc, logger: logger}
}

// Create opens a new program for the calling company.
func (h *ProgramHandler) Create(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	var req createProgramRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid program input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	program, err := h.uc.CreateProgram(c.Request().Context(), &usecase.CreateProgramInput{
		CompanyID:   identity.UserID,
		Title:       req.Title,
		Description: req.Description,
		Scope:       req.Scope,
		MinReward:   req.MinReward,
		MaxReward:   req.MaxReward,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, program, "Program created")
}

// Update applies changes to a program the caller owns.
func (h *ProgramHandler) Update(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid program id")
	}

	var req updateProgramRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid program input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := &usecase.UpdateProgramInput{
		CompanyID:   identity.UserID,
		ProgramID:   programID,
		Title:       req.Title,
		Description: req.Description,
		Scope:       req.Scope,
		MinReward:   req.MinReward,
		MaxReward:   req.MaxReward,
	}
	if req.Status != nil {
		status := entity.ProgramStatus(*req.Status)
		input.Status = &status
	}

	program, err := h.uc.UpdateProgram(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, program, "Program updated")
}

// ListMine lists the calling company's programs.
func (h *ProgramHandler) ListMine(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	programs, err := h.uc.ListCompanyPrograms(c.Request().Context(), identity.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, programs, "")
}

// ListActive lists programs open for enrollment; any authenticated user may browse.
func (h *ProgramHandler) ListActive(c echo.Context) error {
	programs, err := h.uc.ListActivePrograms(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, programs, "")
}

// Get fetches a single program.
func (h *ProgramHandler) Get(c echo.Context) error {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid program id")
	}

	program, err := h.uc.GetProgram(c.Request().Context(), programID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, program, "")
}

// Enroll registers the calling researcher in a program.
func (h *ProgramHandler) Enroll(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
	}

	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid program id")
	}

	enrollment, err := h.uc.Enroll(c.Request().Context(), &usecase.EnrollInput{
		ProgramID:    programID,
		ResearcherID: identity.UserID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, enrollment, "Enrolled")
}
