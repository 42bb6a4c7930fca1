package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is an append-only audit row written in the same transaction as
// the mutation it records.
type Activity struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	UserID     uuid.UUID `json:"user_id"`
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)
