package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RateLimitStore struct {
	db *pgxpool.Pool
}

func NewRateLimitStore(db *pgxpool.Pool) *RateLimitStore {
	return &RateLimitStore{db: db}
}

func (s *RateLimitStore) PurgeBefore(ctx context.Context, cutoff time.Time) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM rate_limit_counters WHERE window_start < $1`, cutoff)
	return err
}

// IncrementAndGet bumps the counter for (identifier, endpoint, windowStart)
// in a single statement and returns the post-increment count, so concurrent
// requests cannot slip past the limit between a read and a write.
func (s *RateLimitStore) IncrementAndGet(ctx context.Context, identifier, endpoint string, windowStart time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`INSERT INTO rate_limit_counters (identifier, endpoint, window_start, count)
		 VALUES ($1, $2, $3, 1)
		 ON CONFLICT (identifier, endpoint, window_start)
		 DO UPDATE SET count = rate_limit_counters.count + 1
		 RETURNING count`,
		identifier, endpoint, windowStart,
	).Scan(&count)
	return count, err
}
