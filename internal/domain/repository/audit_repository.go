package repository

import (
	"context"

	"bountyhub/internal/domain/entity"

	"github.com/google/uuid"
)

// AuditRepository defines the interface for the append-only audit log.
type AuditRepository interface {
	// Append writes a new audit entry. Entries are never updated or deleted.
	Append(ctx context.Context, entry *entity.AuditEntry) error

	// FindByUserID retrieves entries for one user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.AuditEntry, error)

	// List retrieves entries across all users, newest first.
	List(ctx context.Context, limit, offset int) ([]*entity.AuditEntry, error)
}
