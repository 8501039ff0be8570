// Package session stores checkout session blobs, one jsonb row per session
// key. It is the server-side implementation of checkout.Store; expiry is the
// engine's concern, not the store's.
package session

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campreg/internal/checkout"
)

type postgresStore struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) checkout.Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresStore{pool: pool, logger: logger}
}

func (s *postgresStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	const q = `SELECT state FROM checkout_sessions WHERE session_key = $1`
	var blob []byte
	if err := s.pool.QueryRow(ctx, q, key).Scan(&blob); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		s.logger.Printf("session store: load key=%s error=%v", key, err)
		return nil, false, err
	}
	return blob, true, nil
}

func (s *postgresStore) Save(ctx context.Context, key string, blob []byte) error {
	const q = `
INSERT INTO checkout_sessions (session_key, state, saved_at)
VALUES ($1, $2, now())
ON CONFLICT (session_key) DO UPDATE SET state = EXCLUDED.state, saved_at = now()
`
	if _, err := s.pool.Exec(ctx, q, key, blob); err != nil {
		s.logger.Printf("session store: save key=%s error=%v", key, err)
		return err
	}
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM checkout_sessions WHERE session_key = $1`, key); err != nil {
		s.logger.Printf("session store: delete key=%s error=%v", key, err)
		return err
	}
	return nil
}
