package store

import (
	"context"
	"errors"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CaptureStore struct {
	db *pgxpool.Pool
}

func NewCaptureStore(db *pgxpool.Pool) *CaptureStore {
	return &CaptureStore{db: db}
}

// Create verifies the referenced opportunity belongs to the caller's tenant
// inside the same transaction; a cross-tenant opportunity id reads as
// ErrNotFound.
func (s *CaptureStore) Create(ctx context.Context, c *domain.Capture, entry *domain.Activity) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM opportunities WHERE id = $1 AND tenant_id = $2)`,
			c.OpportunityID, c.TenantID,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO captures (tenant_id, opportunity_id, phase, status, win_themes, notes)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id, created_at, updated_at`,
			c.TenantID, c.OpportunityID, c.Phase, c.Status, c.WinThemes, c.Notes,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return err
		}
		entry.EntityID = c.ID
		return insertActivity(ctx, tx, entry)
	})
}

func (s *CaptureStore) Update(ctx context.Context, c *domain.Capture, entry *domain.Activity) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`UPDATE captures
			 SET phase = $3, status = $4, win_themes = $5, notes = $6, updated_at = NOW()
			 WHERE id = $1 AND tenant_id = $2
			 RETURNING updated_at`,
			c.ID, c.TenantID, c.Phase, c.Status, c.WinThemes, c.Notes,
		).Scan(&c.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		entry.EntityID = c.ID
		return insertActivity(ctx, tx, entry)
	})
}

func (s *CaptureStore) List(ctx context.Context, tenantID uuid.UUID, opportunityID *uuid.UUID) ([]domain.Capture, error) {
	query := `SELECT id, tenant_id, opportunity_id, phase, status, win_themes, notes, created_at, updated_at
		 FROM captures WHERE tenant_id = $1`
	args := []any{tenantID}
	if opportunityID != nil {
		query += ` AND opportunity_id = $2`
		args = append(args, *opportunityID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	captures := []domain.Capture{}
	for rows.Next() {
		var c domain.Capture
		if err := rows.Scan(&c.ID, &c.TenantID, &c.OpportunityID, &c.Phase, &c.Status, &c.WinThemes, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		captures = append(captures, c)
	}
	return captures, rows.Err()
}

func (s *CaptureStore) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Capture, error) {
	c := &domain.Capture{}
	err := s.db.QueryRow(ctx,
		`SELECT id, tenant_id, opportunity_id, phase, status, win_themes, notes, created_at, updated_at
		 FROM captures WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	).Scan(&c.ID, &c.TenantID, &c.OpportunityID, &c.Phase, &c.Status, &c.WinThemes, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
