package service

import (
	"context"
	"errors"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/capturedesk/capturedesk/internal/store"
	"github.com/google/uuid"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrCompanyExists   = errors.New("company with this name already exists")
)

type CompanyService struct {
	store domain.CompanyStore
}

func NewCompanyService(s domain.CompanyStore) *CompanyService {
	return &CompanyService{store: s}
}

type CreateCompanyInput struct {
	Name       string
	DUNSNumber string
	CageCode   string
	Website    string
	Notes      string
}

func (s *CompanyService) Create(ctx context.Context, ident domain.Identity, in CreateCompanyInput) (*domain.Company, error) {
	c := &domain.Company{
		TenantID:   ident.TenantID,
		Name:       in.Name,
		DUNSNumber: in.DUNSNumber,
		CageCode:   in.CageCode,
		Website:    in.Website,
		Notes:      in.Notes,
	}
	entry := &domain.Activity{
		TenantID:   ident.TenantID,
		UserID:     ident.UserID,
		EntityType: "company",
		Action:     domain.ActionCreated,
		Detail:     c.Name,
	}

	if err := s.store.Create(ctx, c, entry); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrCompanyExists
		}
		return nil, err
	}
	return c, nil
}

func (s *CompanyService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.Company, error) {
	return s.store.List(ctx, tenantID)
}

func (s *CompanyService) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Company, error) {
	c, err := s.store.GetByID(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return c, nil
}
