package service

import (
	"context"
	"time"

	"github.com/capturedesk/capturedesk/internal/domain"
	"go.uber.org/zap"
)

// Window is the fixed rate-limit window. Counts reset sharply at window
// boundaries rather than decaying continuously; that trade is accepted in
// exchange for a single-statement implementation.
const Window = 60 * time.Second

// RateLimiter bounds request volume per (identifier, endpoint) within the
// trailing window using counters in the relational store. Enforcement is
// advisory defense-in-depth: on store failure requests are allowed through
// and the failure is logged.
type RateLimiter struct {
	store  domain.RateLimitStore
	logger *zap.Logger
	now    func() time.Time
}

func NewRateLimiter(store domain.RateLimitStore, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{store: store, logger: logger, now: time.Now}
}

// Check records one request for (identifier, endpoint) and reports whether
// it is within limit. Stale windows are purged before counting.
func (l *RateLimiter) Check(ctx context.Context, identifier, endpoint string, limit int) (bool, error) {
	now := l.now()

	if err := l.store.PurgeBefore(ctx, now.Add(-Window)); err != nil {
		l.logger.Warn("rate limit purge failed", zap.Error(err))
		return true, err
	}

	count, err := l.store.IncrementAndGet(ctx, identifier, endpoint, now.Truncate(Window))
	if err != nil {
		l.logger.Warn("rate limit increment failed",
			zap.String("endpoint", endpoint), zap.Error(err))
		return true, err
	}

	return count <= limit, nil
}
