package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReportSeverity classifies the researcher-assessed impact of a finding.
type ReportSeverity string

const (
	ReportSeverityLow      ReportSeverity = "low"
	ReportSeverityMedium   ReportSeverity = "medium"
	ReportSeverityHigh     ReportSeverity = "high"
	ReportSeverityCritical ReportSeverity = "critical"
)

// IsValid checks if the ReportSeverity is a valid value.
func (s ReportSeverity) IsValid() bool {
	switch s {
	case ReportSeverityLow, ReportSeverityMedium, ReportSeverityHigh, ReportSeverityCritical:
		return true
	default:
		return false
	}
}

// ReportStatus represents the triage state of a vulnerability report.
type ReportStatus string

const (
	ReportStatusNew      ReportStatus = "new"
	ReportStatusTriaging ReportStatus = "triaging"
	ReportStatusAccepted ReportStatus = "accepted"
	ReportStatusRejected ReportStatus = "rejected"
	ReportStatusResolved ReportStatus = "resolved"
)

// IsValid checks if the ReportStatus is a valid value.
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusNew, ReportStatusTriaging, ReportStatusAccepted, ReportStatusRejected, ReportStatusResolved:
		return true
	default:
		return false
	}
}

// Report represents a vulnerability report submitted to a program.
type Report struct {
	ID           uuid.UUID      // The Global Unique Identifier (GUID) for the report.
	ProgramID    uuid.UUID      // The program the report was submitted to.
	ResearcherID uuid.UUID      // The researcher who submitted it.
	Title        string         // One-line summary of the finding.
	Description  string         // Full write-up including reproduction steps.
	Severity     ReportSeverity // Researcher-assessed severity.
	Status       ReportStatus   // Current triage state.
	Reward       *int           // Reward granted on acceptance, nil until then.
	CreatedAt    time.Time      // Timestamp of submission.
	UpdatedAt    time.Time      // Timestamp of the last modification.
}
