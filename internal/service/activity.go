package service

import (
	"context"

	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/google/uuid"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

type ActivityService struct {
	store domain.ActivityStore
}

func NewActivityService(s domain.ActivityStore) *ActivityService {
	return &ActivityService{store: s}
}

func (s *ActivityService) ListRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return s.store.ListRecent(ctx, tenantID, limit)
}
