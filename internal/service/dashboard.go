package service

import (
	"context"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/google/uuid"
)

type DashboardService struct {
	store domain.DashboardStore
}

func NewDashboardService(s domain.DashboardStore) *DashboardService {
	return &DashboardService{store: s}
}

func (s *DashboardService) KPIs(ctx context.Context, tenantID uuid.UUID) (*domain.PipelineKPIs, error) {
	k, err := s.store.KPIs(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if decided := k.WonCount + k.LostCount; decided > 0 {
		k.WinRate = float64(k.WonCount) / float64(decided)
	}
	return k, nil
}

func (s *DashboardService) PipelineByStage(ctx context.Context, tenantID uuid.UUID) ([]domain.StageSummary, error) {
	return s.store.PipelineByStage(ctx, tenantID)
}
