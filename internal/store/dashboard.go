package store

import (
	"context"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DashboardStore struct {
	db *pgxpool.Pool
}

func NewDashboardStore(db *pgxpool.Pool) *DashboardStore {
	return &DashboardStore{db: db}
}

func (s *DashboardStore) KPIs(ctx context.Context, tenantID uuid.UUID) (*domain.PipelineKPIs, error) {
	k := &domain.PipelineKPIs{}
	err := s.db.QueryRow(ctx,
		`SELECT
		   COALESCE(SUM(amount) FILTER (WHERE stage NOT IN ('won', 'lost')), 0),
		   COALESCE(SUM(expected_revenue) FILTER (WHERE stage NOT IN ('won', 'lost')), 0),
		   COUNT(*) FILTER (WHERE stage NOT IN ('won', 'lost')),
		   COUNT(*) FILTER (WHERE stage = 'won'),
		   COUNT(*) FILTER (WHERE stage = 'lost')
		 FROM opportunities WHERE tenant_id = $1`,
		tenantID,
	).Scan(&k.PipelineValue, &k.WeightedPipeline, &k.OpenCount, &k.WonCount, &k.LostCount)
	if err != nil {
		return nil, err
	}
	return k, nil
}

func (s *DashboardStore) PipelineByStage(ctx context.Context, tenantID uuid.UUID) ([]domain.StageSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT stage, COUNT(*), COALESCE(SUM(amount), 0)
		 FROM opportunities WHERE tenant_id = $1
		 GROUP BY stage
		 ORDER BY COUNT(*) DESC`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stages := []domain.StageSummary{}
	for rows.Next() {
		var s domain.StageSummary
		if err := rows.Scan(&s.Stage, &s.Count, &s.Value); err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}
