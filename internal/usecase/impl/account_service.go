package impl

import (
	"context"
	"log/slog"

	"bountyhub/internal/domain/entity"
	"bountyhub/internal/domain/repository"
	"bountyhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	sessionRepo repository.SessionRepository
	auditRepo   repository.AuditRepository
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	SessionRepo repository.SessionRepository
	AuditRepo   repository.AuditRepository
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		sessionRepo: params.SessionRepo,
		auditRepo:   params.AuditRepo,
		logger:      params.Logger,
	}
}

// Sessions lists the caller's active sessions.
func (srv *accountService) Sessions(ctx context.Context, userID uuid.UUID) ([]*entity.Session, error) {
	sessions, err := srv.sessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}

	return sessions, nil
}

// AuditLog pages through the audit trail, newest first.
func (srv *accountService) AuditLog(ctx context.Context, limit, offset int) ([]*entity.AuditEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := srv.auditRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list audit entries")
	}

	return entries, nil
}
