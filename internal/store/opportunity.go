package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OpportunityStore struct {
	db *pgxpool.Pool
}

func NewOpportunityStore(db *pgxpool.Pool) *OpportunityStore {
	return &OpportunityStore{db: db}
}

const opportunityColumns = `id, tenant_id, company_id, name, agency, solicitation_number, naics_code,
	 stage, amount, probability, expected_revenue, close_date, owner_id, created_at, updated_at`

func scanOpportunity(row pgx.Row, o *domain.Opportunity) error {
	return row.Scan(&o.ID, &o.TenantID, &o.CompanyID, &o.Name, &o.Agency, &o.SolicitationNumber,
		&o.NAICSCode, &o.Stage, &o.Amount, &o.Probability, &o.ExpectedRevenue, &o.CloseDate,
		&o.OwnerID, &o.CreatedAt, &o.UpdatedAt)
}

func (s *OpportunityStore) Create(ctx context.Context, o *domain.Opportunity, entry *domain.Activity) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO opportunities
			   (tenant_id, company_id, name, agency, solicitation_number, naics_code,
			    stage, amount, probability, expected_revenue, close_date, owner_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 RETURNING id, created_at, updated_at`,
			o.TenantID, o.CompanyID, o.Name, o.Agency, o.SolicitationNumber, o.NAICSCode,
			o.Stage, o.Amount, o.Probability, o.ExpectedRevenue, o.CloseDate, o.OwnerID,
		).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return err
		}
		entry.EntityID = o.ID
		return insertActivity(ctx, tx, entry)
	})
}

// Update writes the full row back under the tenant predicate; the service
// layer is responsible for merging partial input into the current row first.
func (s *OpportunityStore) Update(ctx context.Context, o *domain.Opportunity, entry *domain.Activity) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`UPDATE opportunities
			 SET company_id = $3, name = $4, agency = $5, solicitation_number = $6, naics_code = $7,
			     stage = $8, amount = $9, probability = $10, expected_revenue = $11,
			     close_date = $12, owner_id = $13, updated_at = NOW()
			 WHERE id = $1 AND tenant_id = $2
			 RETURNING updated_at`,
			o.ID, o.TenantID, o.CompanyID, o.Name, o.Agency, o.SolicitationNumber, o.NAICSCode,
			o.Stage, o.Amount, o.Probability, o.ExpectedRevenue, o.CloseDate, o.OwnerID,
		).Scan(&o.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		entry.EntityID = o.ID
		return insertActivity(ctx, tx, entry)
	})
}

func (s *OpportunityStore) List(ctx context.Context, tenantID uuid.UUID, f domain.OpportunityFilter) ([]domain.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE tenant_id = $1`
	args := []any{tenantID}
	if f.Stage != "" {
		args = append(args, f.Stage)
		query += fmt.Sprintf(" AND stage = $%d", len(args))
	}
	if f.OwnerID != nil {
		args = append(args, *f.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	opportunities := []domain.Opportunity{}
	for rows.Next() {
		var o domain.Opportunity
		if err := scanOpportunity(rows, &o); err != nil {
			return nil, err
		}
		opportunities = append(opportunities, o)
	}
	return opportunities, rows.Err()
}

func (s *OpportunityStore) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Opportunity, error) {
	o := &domain.Opportunity{}
	err := scanOpportunity(s.db.QueryRow(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	), o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}
