package domain

import (
	"time"

	"github.com/google/uuid"
)

// Pipeline stages, roughly in order. An opportunity is "open" until it
// reaches won or lost.
const (
	StageIdentified = "identified"
	StageQualified  = "qualified"
	StageProposal   = "proposal"
	StageSubmitted  = "submitted"
	StageWon        = "won"
	StageLost       = "lost"
)

func ValidStage(s string) bool {
	switch s {
	case StageIdentified, StageQualified, StageProposal, StageSubmitted, StageWon, StageLost:
		return true
	}
	return false
}

type Opportunity struct {
	ID                 uuid.UUID  `json:"id"`
	TenantID           uuid.UUID  `json:"tenant_id"`
	CompanyID          *uuid.UUID `json:"company_id,omitempty"`
	Name               string     `json:"name"`
	Agency             string     `json:"agency,omitempty"`
	SolicitationNumber string     `json:"solicitation_number,omitempty"`
	NAICSCode          string     `json:"naics_code,omitempty"`
	Stage              string     `json:"stage"`
	Amount             float64    `json:"amount"`
	Probability        int        `json:"probability"`
	ExpectedRevenue    float64    `json:"expected_revenue"`
	CloseDate          *time.Time `json:"close_date,omitempty"`
	OwnerID            *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// OpportunityFilter narrows List results. The tenant predicate is not part
// of the filter; it is a separate mandatory argument on every store method.
type OpportunityFilter struct {
	Stage   string
	OwnerID *uuid.UUID
}
