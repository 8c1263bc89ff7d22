package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portidempotency "github.com/alanyang/listingcraft/internal/port/idempotency"
)

var _ portidempotency.Store = (*Repository)(nil)

// DefaultRetention bounds how long a key can be replayed.
const DefaultRetention = 24 * time.Hour

type Repository struct {
	pool      *pgxpool.Pool
	retention time.Duration
}

func New(pool *pgxpool.Pool, retention time.Duration) *Repository {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Repository{pool: pool, retention: retention}
}

func (r *Repository) Lookup(ctx context.Context, key string) (portidempotency.Record, bool, error) {
	var rec portidempotency.Record
	err := r.pool.QueryRow(ctx,
		`SELECT request_hash, response FROM processed_requests
		 WHERE idempotency_key = $1 AND created_at > $2`,
		key, r.cutoff(),
	).Scan(&rec.RequestHash, &rec.Body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return portidempotency.Record{}, false, nil
		}
		return portidempotency.Record{}, false, fmt.Errorf("checking idempotency key: %w", err)
	}
	return rec, true, nil
}

// Remember keeps the first record of a live key. An expired row that the purger
// has not reached yet is replaced.
func (r *Repository) Remember(ctx context.Context, key string, rec portidempotency.Record) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO processed_requests (idempotency_key, request_hash, response, created_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (idempotency_key) DO UPDATE
		 SET request_hash = EXCLUDED.request_hash,
		     response     = EXCLUDED.response,
		     created_at   = EXCLUDED.created_at
		 WHERE processed_requests.created_at <= $4`,
		key, rec.RequestHash, rec.Body, r.cutoff(),
	)
	if err != nil {
		return fmt.Errorf("storing idempotency key: %w", err)
	}
	return nil
}

func (r *Repository) cutoff() time.Time { return time.Now().Add(-r.retention) }

// Purge deletes keys older than the retention window and returns how many went.
func (r *Repository) Purge(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM processed_requests WHERE created_at <= $1`, r.cutoff())
	if err != nil {
		return 0, fmt.Errorf("purging idempotency keys: %w", err)
	}
	return tag.RowsAffected(), nil
}
