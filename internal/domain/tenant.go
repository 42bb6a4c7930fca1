package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is an isolated organization. Its key is a URL-safe slug derived
// from the company name at registration and used at login to select the
// organization. Tenants are soft-disabled via Active, never hard-deleted.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	TenantKey string    `json:"tenant_key"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	PlanStarter      = "starter"
	PlanProfessional = "professional"
)
