package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/capturedesk/capturedesk/internal/store"
)

// mockCaptureStore implements domain.CaptureStore. Known opportunity ids are
// tracked per tenant so Create can refuse cross-tenant references the way
// the real store does.
type mockCaptureStore struct {
	captures      map[uuid.UUID]*domain.Capture
	opportunities map[uuid.UUID]uuid.UUID // opportunity id -> tenant id
}

func newMockCaptureStore() *mockCaptureStore {
	return &mockCaptureStore{
		captures:      make(map[uuid.UUID]*domain.Capture),
		opportunities: make(map[uuid.UUID]uuid.UUID),
	}
}

func (m *mockCaptureStore) Create(ctx context.Context, c *domain.Capture, entry *domain.Activity) error {
	if tenant, ok := m.opportunities[c.OpportunityID]; !ok || tenant != c.TenantID {
		return store.ErrNotFound
	}
	c.ID = uuid.New()
	cp := *c
	m.captures[c.ID] = &cp
	return nil
}

func (m *mockCaptureStore) Update(ctx context.Context, c *domain.Capture, entry *domain.Activity) error {
	existing, ok := m.captures[c.ID]
	if !ok || existing.TenantID != c.TenantID {
		return store.ErrNotFound
	}
	cp := *c
	m.captures[c.ID] = &cp
	return nil
}

func (m *mockCaptureStore) List(ctx context.Context, tenantID uuid.UUID, opportunityID *uuid.UUID) ([]domain.Capture, error) {
	var result []domain.Capture
	for _, c := range m.captures {
		if c.TenantID != tenantID {
			continue
		}
		if opportunityID != nil && c.OpportunityID != *opportunityID {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCaptureStore) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Capture, error) {
	c, ok := m.captures[id]
	if !ok || c.TenantID != tenantID {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func TestCaptureService_Create_Defaults(t *testing.T) {
	st := newMockCaptureStore()
	svc := NewCaptureService(st)
	ident := testIdent()

	oppID := uuid.New()
	st.opportunities[oppID] = ident.TenantID

	c, err := svc.Create(context.Background(), ident, CreateCaptureInput{OpportunityID: oppID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Phase != domain.PhaseAssessment {
		t.Errorf("default phase = %q, want %q", c.Phase, domain.PhaseAssessment)
	}
	if c.Status != domain.CaptureActive {
		t.Errorf("default status = %q, want %q", c.Status, domain.CaptureActive)
	}
}

func TestCaptureService_Create_CrossTenantOpportunity(t *testing.T) {
	st := newMockCaptureStore()
	svc := NewCaptureService(st)

	owner := testIdent()
	oppID := uuid.New()
	st.opportunities[oppID] = owner.TenantID

	intruder := testIdent()
	_, err := svc.Create(context.Background(), intruder, CreateCaptureInput{OpportunityID: oppID})
	if !errors.Is(err, ErrOpportunityNotFound) {
		t.Errorf("err = %v, want ErrOpportunityNotFound", err)
	}
}

func TestCaptureService_Update_Partial(t *testing.T) {
	st := newMockCaptureStore()
	svc := NewCaptureService(st)
	ident := testIdent()

	oppID := uuid.New()
	st.opportunities[oppID] = ident.TenantID

	c, err := svc.Create(context.Background(), ident, CreateCaptureInput{
		OpportunityID: oppID,
		WinThemes:     "incumbent knowledge",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	phase := domain.PhaseCapturePlanning
	updated, err := svc.Update(context.Background(), ident, c.ID, UpdateCaptureInput{Phase: &phase})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Phase != domain.PhaseCapturePlanning {
		t.Errorf("phase = %q", updated.Phase)
	}
	if updated.WinThemes != "incumbent knowledge" {
		t.Errorf("win themes overwritten: %q", updated.WinThemes)
	}
}

func TestCaptureService_Update_NotFound(t *testing.T) {
	st := newMockCaptureStore()
	svc := NewCaptureService(st)

	phase := domain.PhaseCapturePlanning
	_, err := svc.Update(context.Background(), testIdent(), uuid.New(), UpdateCaptureInput{Phase: &phase})
	if !errors.Is(err, ErrCaptureNotFound) {
		t.Errorf("err = %v, want ErrCaptureNotFound", err)
	}
}
