package store

import (
	"context"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityStore struct {
	db *pgxpool.Pool
}

func NewActivityStore(db *pgxpool.Pool) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) ListRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.Activity, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, tenant_id, user_id, entity_type, entity_id, action, detail, created_at
		 FROM activity_log WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		tenantID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.Activity{}
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.TenantID, &a.UserID, &a.EntityType, &a.EntityID, &a.Action, &a.Detail, &a.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

// insertActivity appends an audit row within the caller's transaction.
func insertActivity(ctx context.Context, tx pgx.Tx, a *domain.Activity) error {
	return tx.QueryRow(ctx,
		`INSERT INTO activity_log (tenant_id, user_id, entity_type, entity_id, action, detail)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		a.TenantID, a.UserID, a.EntityType, a.EntityID, a.Action, a.Detail,
	).Scan(&a.ID, &a.CreatedAt)
}
