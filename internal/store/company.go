package store

import (
	"context"
	"errors"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CompanyStore struct {
	db *pgxpool.Pool
}

func NewCompanyStore(db *pgxpool.Pool) *CompanyStore {
	return &CompanyStore{db: db}
}

func (s *CompanyStore) Create(ctx context.Context, c *domain.Company, entry *domain.Activity) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO companies (tenant_id, name, duns_number, cage_code, website, notes)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id, created_at, updated_at`,
			c.TenantID, c.Name, c.DUNSNumber, c.CageCode, c.Website, c.Notes,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrConflict
			}
			return err
		}
		entry.EntityID = c.ID
		return insertActivity(ctx, tx, entry)
	})
}

func (s *CompanyStore) List(ctx context.Context, tenantID uuid.UUID) ([]domain.Company, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, tenant_id, name, duns_number, cage_code, website, notes, created_at, updated_at
		 FROM companies WHERE tenant_id = $1
		 ORDER BY created_at DESC`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.DUNSNumber, &c.CageCode, &c.Website, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (s *CompanyStore) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Company, error) {
	c := &domain.Company{}
	err := s.db.QueryRow(ctx,
		`SELECT id, tenant_id, name, duns_number, cage_code, website, notes, created_at, updated_at
		 FROM companies WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	).Scan(&c.ID, &c.TenantID, &c.Name, &c.DUNSNumber, &c.CageCode, &c.Website, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
