package service

import (
	"context"
	"errors"
	"time"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/capturedesk/capturedesk/internal/store"
	"github.com/google/uuid"
)

var ErrOpportunityNotFound = errors.New("opportunity not found")

type OpportunityService struct {
	store domain.OpportunityStore
}

func NewOpportunityService(s domain.OpportunityStore) *OpportunityService {
	return &OpportunityService{store: s}
}

// ExpectedRevenue is the probability-weighted value of an opportunity.
func ExpectedRevenue(amount float64, probability int) float64 {
	return amount * float64(probability) / 100
}

type CreateOpportunityInput struct {
	CompanyID          *uuid.UUID
	Name               string
	Agency             string
	SolicitationNumber string
	NAICSCode          string
	Stage              string
	Amount             float64
	Probability        int
	CloseDate          *time.Time
	OwnerID            *uuid.UUID
}

func (s *OpportunityService) Create(ctx context.Context, ident domain.Identity, in CreateOpportunityInput) (*domain.Opportunity, error) {
	stage := in.Stage
	if stage == "" {
		stage = domain.StageIdentified
	}

	o := &domain.Opportunity{
		TenantID:           ident.TenantID,
		CompanyID:          in.CompanyID,
		Name:               in.Name,
		Agency:             in.Agency,
		SolicitationNumber: in.SolicitationNumber,
		NAICSCode:          in.NAICSCode,
		Stage:              stage,
		Amount:             in.Amount,
		Probability:        in.Probability,
		ExpectedRevenue:    ExpectedRevenue(in.Amount, in.Probability),
		CloseDate:          in.CloseDate,
		OwnerID:            in.OwnerID,
	}

	entry := &domain.Activity{
		TenantID:   ident.TenantID,
		UserID:     ident.UserID,
		EntityType: "opportunity",
		Action:     domain.ActionCreated,
		Detail:     o.Name,
	}

	if err := s.store.Create(ctx, o, entry); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateOpportunityInput carries only the fields the caller supplied; nil
// means "leave unchanged".
type UpdateOpportunityInput struct {
	CompanyID          *uuid.UUID
	Name               *string
	Agency             *string
	SolicitationNumber *string
	NAICSCode          *string
	Stage              *string
	Amount             *float64
	Probability        *int
	CloseDate          *time.Time
	OwnerID            *uuid.UUID
}

func (s *OpportunityService) Update(ctx context.Context, ident domain.Identity, id uuid.UUID, in UpdateOpportunityInput) (*domain.Opportunity, error) {
	o, err := s.store.GetByID(ctx, id, ident.TenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOpportunityNotFound
		}
		return nil, err
	}

	if in.CompanyID != nil {
		o.CompanyID = in.CompanyID
	}
	if in.Name != nil {
		o.Name = *in.Name
	}
	if in.Agency != nil {
		o.Agency = *in.Agency
	}
	if in.SolicitationNumber != nil {
		o.SolicitationNumber = *in.SolicitationNumber
	}
	if in.NAICSCode != nil {
		o.NAICSCode = *in.NAICSCode
	}
	if in.Stage != nil {
		o.Stage = *in.Stage
	}
	if in.Amount != nil {
		o.Amount = *in.Amount
	}
	if in.Probability != nil {
		o.Probability = *in.Probability
	}
	if in.CloseDate != nil {
		o.CloseDate = in.CloseDate
	}
	if in.OwnerID != nil {
		o.OwnerID = in.OwnerID
	}
	if in.Amount != nil || in.Probability != nil {
		o.ExpectedRevenue = ExpectedRevenue(o.Amount, o.Probability)
	}

	entry := &domain.Activity{
		TenantID:   ident.TenantID,
		UserID:     ident.UserID,
		EntityType: "opportunity",
		Action:     domain.ActionUpdated,
		Detail:     o.Name,
	}

	if err := s.store.Update(ctx, o, entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOpportunityNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *OpportunityService) List(ctx context.Context, tenantID uuid.UUID, f domain.OpportunityFilter) ([]domain.Opportunity, error) {
	return s.store.List(ctx, tenantID, f)
}

func (s *OpportunityService) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Opportunity, error) {
	o, err := s.store.GetByID(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOpportunityNotFound
		}
		return nil, err
	}
	return o, nil
}
