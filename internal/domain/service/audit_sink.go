package service

import (
	"context"

	"bountyhub/internal/domain/entity"

	"github.com/google/uuid"
)

// AuditSink records security-relevant events. Implementations must never let
// a recording failure propagate into the request that triggered it: the audit
// trail observes the flow, it does not gate it.
type AuditSink interface {
	// Record writes an audit event for the given user and action.
	// A nil userID records an anonymous event.
	Record(ctx context.Context, userID *uuid.UUID, action entity.AuditAction, details map[string]any, ipAddress, userAgent string)
}
