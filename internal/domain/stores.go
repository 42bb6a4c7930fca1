package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Every store method that touches tenant-owned data takes the caller's
// tenant id and includes it in the query predicate. A row that exists under
// another tenant is indistinguishable from a missing row.

type TenantStore interface {
	// CreateWithOwner creates the tenant and its founding admin user in one
	// transaction.
	CreateWithOwner(ctx context.Context, t *Tenant, owner *User) error
	GetByKey(ctx context.Context, key string) (*Tenant, error)
}

type UserStore interface {
	GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

type CompanyStore interface {
	Create(ctx context.Context, c *Company, entry *Activity) error
	List(ctx context.Context, tenantID uuid.UUID) ([]Company, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*Company, error)
}

type ContactStore interface {
	Create(ctx context.Context, c *Contact, entry *Activity) error
	List(ctx context.Context, tenantID uuid.UUID, companyID *uuid.UUID) ([]Contact, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*Contact, error)
}

type OpportunityStore interface {
	Create(ctx context.Context, o *Opportunity, entry *Activity) error
	Update(ctx context.Context, o *Opportunity, entry *Activity) error
	List(ctx context.Context, tenantID uuid.UUID, f OpportunityFilter) ([]Opportunity, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*Opportunity, error)
}

type CaptureStore interface {
	Create(ctx context.Context, c *Capture, entry *Activity) error
	Update(ctx context.Context, c *Capture, entry *Activity) error
	List(ctx context.Context, tenantID uuid.UUID, opportunityID *uuid.UUID) ([]Capture, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*Capture, error)
}

type ActivityStore interface {
	ListRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]Activity, error)
}

type DashboardStore interface {
	KPIs(ctx context.Context, tenantID uuid.UUID) (*PipelineKPIs, error)
	PipelineByStage(ctx context.Context, tenantID uuid.UUID) ([]StageSummary, error)
}

type RateLimitStore interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) error
	// IncrementAndGet atomically bumps the counter for the window and
	// returns the post-increment count.
	IncrementAndGet(ctx context.Context, identifier, endpoint string, windowStart time.Time) (int, error)
}
