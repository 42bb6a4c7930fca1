package store

import (
	"context"
	"errors"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactStore struct {
	db *pgxpool.Pool
}

func NewContactStore(db *pgxpool.Pool) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) Create(ctx context.Context, c *domain.Contact, entry *domain.Activity) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO contacts (tenant_id, company_id, first_name, last_name, email, phone, title)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, created_at, updated_at`,
			c.TenantID, c.CompanyID, c.FirstName, c.LastName, c.Email, c.Phone, c.Title,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return err
		}
		entry.EntityID = c.ID
		return insertActivity(ctx, tx, entry)
	})
}

func (s *ContactStore) List(ctx context.Context, tenantID uuid.UUID, companyID *uuid.UUID) ([]domain.Contact, error) {
	query := `SELECT id, tenant_id, company_id, first_name, last_name, email, phone, title, created_at, updated_at
		 FROM contacts WHERE tenant_id = $1`
	args := []any{tenantID}
	if companyID != nil {
		query += ` AND company_id = $2`
		args = append(args, *companyID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.TenantID, &c.CompanyID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (s *ContactStore) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Contact, error) {
	c := &domain.Contact{}
	err := s.db.QueryRow(ctx,
		`SELECT id, tenant_id, company_id, first_name, last_name, email, phone, title, created_at, updated_at
		 FROM contacts WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	).Scan(&c.ID, &c.TenantID, &c.CompanyID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
