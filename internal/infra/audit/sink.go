// Package audit implements the audit trail sink.
package audit

import (
	"context"
	"log/slog"
	"time"

	"bountyhub/internal/domain/entity"
	"bountyhub/internal/domain/repository"
	"bountyhub/internal/domain/service"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const writeTimeout = 5 * time.Second

// sink writes audit entries through the repository. Failures are logged and
// swallowed: the audit trail observes requests, it never fails them.
type sink struct {
	auditRepo repository.AuditRepository
	logger    *slog.Logger
}

// SinkParams holds dependencies for the audit sink, injected by Fx.
type SinkParams struct {
	fx.In

	AuditRepo repository.AuditRepository
	Logger    *slog.Logger
}

// NewSink is the constructor for the audit sink.
func NewSink(params SinkParams) service.AuditSink {
	return &sink{
		auditRepo: params.AuditRepo,
		logger:    params.Logger,
	}
}

// Record writes an audit event. The write uses its own context so that a
// cancelled request cannot lose the entry for work that already happened.
func (s *sink) Record(ctx context.Context, userID *uuid.UUID, action entity.AuditAction, details map[string]any, ipAddress, userAgent string) {
	entry := &entity.AuditEntry{
		ID:        uuid.New(),
		Action:    action,
		Details:   details,
		IPAddress: orUnknown(ipAddress),
		UserAgent: orUnknown(userAgent),
	}
	if userID != nil {
		entry.UserID = *userID
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := s.auditRepo.Append(writeCtx, entry); err != nil {
		s.logger.Error("Failed to append audit entry",
			slog.String("action", string(action)), slog.Any("error", err))
	}
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}

	return value
}
