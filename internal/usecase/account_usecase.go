package usecase

import (
	"context"

	"bountyhub/internal/domain/entity"

	"github.com/google/uuid"
)

// AccountUsecase defines the interface for account introspection operations.
type AccountUsecase interface {
	// Sessions lists the caller's active sessions, newest first.
	Sessions(ctx context.Context, userID uuid.UUID) ([]*entity.Session, error)

	// AuditLog lists audit entries across all users. Restricted to admins at
	// the delivery layer.
	AuditLog(ctx context.Context, limit, offset int) ([]*entity.AuditEntry, error)
}
