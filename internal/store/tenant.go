package store

import (
	"context"
	"errors"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TenantStore struct {
	db *pgxpool.Pool
}

func NewTenantStore(db *pgxpool.Pool) *TenantStore {
	return &TenantStore{db: db}
}

func (s *TenantStore) CreateWithOwner(ctx context.Context, t *domain.Tenant, owner *domain.User) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO tenants (tenant_key, name, plan, active)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at, updated_at`,
			t.TenantKey, t.Name, t.Plan, t.Active,
		).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrConflict
			}
			return err
		}

		owner.TenantID = t.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO users (tenant_id, email, password_hash, first_name, last_name, role)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id, created_at, updated_at`,
			owner.TenantID, owner.Email, owner.PasswordHash, owner.FirstName, owner.LastName, owner.Role,
		).Scan(&owner.ID, &owner.CreatedAt, &owner.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
}

func (s *TenantStore) GetByKey(ctx context.Context, key string) (*domain.Tenant, error) {
	t := &domain.Tenant{}
	err := s.db.QueryRow(ctx,
		`SELECT id, tenant_key, name, plan, active, created_at, updated_at
		 FROM tenants WHERE tenant_key = $1`,
		key,
	).Scan(&t.ID, &t.TenantKey, &t.Name, &t.Plan, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}
