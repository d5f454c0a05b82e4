package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction identifies the kind of security-relevant event being recorded.
type AuditAction string

const (
	AuditActionRegister            AuditAction = "REGISTER"
	AuditActionLoginSuccess        AuditAction = "LOGIN_SUCCESS"
	AuditActionLoginFailed         AuditAction = "LOGIN_FAILED"
	AuditActionLogout              AuditAction = "LOGOUT"
	AuditActionTwoFactorEnabled    AuditAction = "2FA_ENABLED"
	AuditActionTwoFactorDisabled   AuditAction = "2FA_DISABLED"
	AuditActionReportSubmitted     AuditAction = "REPORT_SUBMITTED"
	AuditActionReportStatusChanged AuditAction = "REPORT_STATUS_CHANGED"
)

// AuditEntry is an append-only record of a security-relevant event.
// Entries are never mutated or deleted by the application.
type AuditEntry struct {
	ID        uuid.UUID      // The unique ID for this entry.
	UserID    uuid.UUID      // The user the event concerns.
	Action    AuditAction    // What happened.
	Details   map[string]any // Free-form context, e.g. failure reason or attempt count.
	IPAddress string         // The client's IP address, "unknown" when absent.
	UserAgent string         // The client's User-Agent header, "unknown" when absent.
	CreatedAt time.Time      // Timestamp of when the event was recorded.
}
