package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finplan/internal/ledger"
)

// PostgresStore keeps the snapshot in a single-row table. Saves are
// retried with exponential backoff so a transient connection drop does
// not lose a ledger mutation.
type PostgresStore struct {
	pool    *pgxpool.Pool
	codec   *Codec
	retries uint64
}

// NewPostgresStore creates a store over an existing pool.
func NewPostgresStore(pool *pgxpool.Pool, codec *Codec) *PostgresStore {
	return &PostgresStore{pool: pool, codec: codec, retries: 3}
}

func (s *PostgresStore) Save(ctx context.Context, blob []byte) error {
	sealed, err := s.codec.Seal(blob)
	if err != nil {
		return err
	}

	op := func() error {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO snapshots (id, blob, updated_at)
			VALUES (1, $1, $2)
			ON CONFLICT (id) DO UPDATE SET blob = $1, updated_at = $2`,
			sealed, time.Now().UTC())
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.retries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return fmt.Errorf("snapshot: save: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	var sealed []byte
	err := s.pool.QueryRow(ctx, `SELECT blob FROM snapshots WHERE id = 1`).Scan(&sealed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: load: %w", err)
	}
	return s.codec.Open(sealed)
}
