package domain

import (
	"time"

	"github.com/google/uuid"
)

// Capture phases follow the Shipley pursuit lifecycle.
const (
	PhaseAssessment          = "opportunity-assessment"
	PhaseCapturePlanning     = "capture-planning"
	PhaseProposalPlanning    = "proposal-planning"
	PhaseProposalDevelopment = "proposal-development"
)

const (
	CaptureActive   = "active"
	CaptureOnHold   = "on-hold"
	CaptureComplete = "complete"
)

func ValidPhase(p string) bool {
	switch p {
	case PhaseAssessment, PhaseCapturePlanning, PhaseProposalPlanning, PhaseProposalDevelopment:
		return true
	}
	return false
}

func ValidCaptureStatus(s string) bool {
	switch s {
	case CaptureActive, CaptureOnHold, CaptureComplete:
		return true
	}
	return false
}

// Capture tracks the pre-proposal pursuit of a single opportunity.
type Capture struct {
	ID            uuid.UUID `json:"id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Phase         string    `json:"phase"`
	Status        string    `json:"status"`
	WinThemes     string    `json:"win_themes,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
