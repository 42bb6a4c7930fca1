package service

import (
	"context"
	"errors"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/capturedesk/capturedesk/internal/store"
	"github.com/google/uuid"
)

var ErrCaptureNotFound = errors.New("capture not found")

type CaptureService struct {
	store domain.CaptureStore
}

func NewCaptureService(s domain.CaptureStore) *CaptureService {
	return &CaptureService{store: s}
}

type CreateCaptureInput struct {
	OpportunityID uuid.UUID
	Phase         string
	WinThemes     string
	Notes         string
}

// Create starts a capture effort against an opportunity. A cross-tenant or
// unknown opportunity id returns ErrOpportunityNotFound, not a hint that
// the row exists elsewhere.
func (s *CaptureService) Create(ctx context.Context, ident domain.Identity, in CreateCaptureInput) (*domain.Capture, error) {
	phase := in.Phase
	if phase == "" {
		phase = domain.PhaseAssessment
	}

	c := &domain.Capture{
		TenantID:      ident.TenantID,
		OpportunityID: in.OpportunityID,
		Phase:         phase,
		Status:        domain.CaptureActive,
		WinThemes:     in.WinThemes,
		Notes:         in.Notes,
	}
	entry := &domain.Activity{
		TenantID:   ident.TenantID,
		UserID:     ident.UserID,
		EntityType: "capture",
		Action:     domain.ActionCreated,
		Detail:     c.Phase,
	}

	if err := s.store.Create(ctx, c, entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOpportunityNotFound
		}
		return nil, err
	}
	return c, nil
}

type UpdateCaptureInput struct {
	Phase     *string
	Status    *string
	WinThemes *string
	Notes     *string
}

func (s *CaptureService) Update(ctx context.Context, ident domain.Identity, id uuid.UUID, in UpdateCaptureInput) (*domain.Capture, error) {
	c, err := s.store.GetByID(ctx, id, ident.TenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCaptureNotFound
		}
		return nil, err
	}

	if in.Phase != nil {
		c.Phase = *in.Phase
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.WinThemes != nil {
		c.WinThemes = *in.WinThemes
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}

	entry := &domain.Activity{
		TenantID:   ident.TenantID,
		UserID:     ident.UserID,
		EntityType: "capture",
		Action:     domain.ActionUpdated,
		Detail:     c.Phase,
	}

	if err := s.store.Update(ctx, c, entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCaptureNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CaptureService) List(ctx context.Context, tenantID uuid.UUID, opportunityID *uuid.UUID) ([]domain.Capture, error) {
	return s.store.List(ctx, tenantID, opportunityID)
}

func (s *CaptureService) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Capture, error) {
	c, err := s.store.GetByID(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCaptureNotFound
		}
		return nil, err
	}
	return c, nil
}
