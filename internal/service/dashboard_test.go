package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/capturedesk/capturedesk/internal/domain"
)

// mockDashboardStore implements domain.DashboardStore with canned results.
type mockDashboardStore struct {
	kpis   domain.PipelineKPIs
	stages []domain.StageSummary
}

func (m *mockDashboardStore) KPIs(ctx context.Context, tenantID uuid.UUID) (*domain.PipelineKPIs, error) {
	cp := m.kpis
	return &cp, nil
}

func (m *mockDashboardStore) PipelineByStage(ctx context.Context, tenantID uuid.UUID) ([]domain.StageSummary, error) {
	return m.stages, nil
}

func TestDashboardService_WinRate(t *testing.T) {
	cases := []struct {
		name string
		won  int
		lost int
		want float64
	}{
		{"no decided opportunities", 0, 0, 0},
		{"all won", 4, 0, 1},
		{"all lost", 0, 3, 0},
		{"mixed", 3, 1, 0.75},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewDashboardService(&mockDashboardStore{
				kpis: domain.PipelineKPIs{WonCount: tc.won, LostCount: tc.lost},
			})

			k, err := svc.KPIs(context.Background(), uuid.New())
			if err != nil {
				t.Fatalf("KPIs: %v", err)
			}
			if k.WinRate != tc.want {
				t.Errorf("win rate = %v, want %v", k.WinRate, tc.want)
			}
		})
	}
}
