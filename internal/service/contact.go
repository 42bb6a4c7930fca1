package service

import (
	"context"
	"errors"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/capturedesk/capturedesk/internal/store"
	"github.com/google/uuid"
)

var ErrContactNotFound = errors.New("contact not found")

type ContactService struct {
	store domain.ContactStore
}

func NewContactService(s domain.ContactStore) *ContactService {
	return &ContactService{store: s}
}

type CreateContactInput struct {
	CompanyID *uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Title     string
}

func (s *ContactService) Create(ctx context.Context, ident domain.Identity, in CreateContactInput) (*domain.Contact, error) {
	c := &domain.Contact{
		TenantID:  ident.TenantID,
		CompanyID: in.CompanyID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Title:     in.Title,
	}
	entry := &domain.Activity{
		TenantID:   ident.TenantID,
		UserID:     ident.UserID,
		EntityType: "contact",
		Action:     domain.ActionCreated,
		Detail:     c.FirstName + " " + c.LastName,
	}

	if err := s.store.Create(ctx, c, entry); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContactService) List(ctx context.Context, tenantID uuid.UUID, companyID *uuid.UUID) ([]domain.Contact, error) {
	return s.store.List(ctx, tenantID, companyID)
}

func (s *ContactService) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Contact, error) {
	c, err := s.store.GetByID(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return c, nil
}
