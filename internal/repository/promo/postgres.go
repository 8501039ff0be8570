package promo

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campreg/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*Record, error) {
	const q = `
SELECT code, discount_type, discount_value, COALESCE(applies_to, ''), active, starts_at, expires_at
FROM promo_codes
WHERE code = $1
`
	var rec Record
	err := r.pool.QueryRow(ctx, q, code).Scan(
		&rec.Code,
		&rec.DiscountType,
		&rec.DiscountValue,
		&rec.AppliesTo,
		&rec.Active,
		&rec.StartsAt,
		&rec.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("promo repo: code=%s not found", code)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("promo repo: code=%s error=%v", code, err)
		return nil, err
	}
	return &rec, nil
}
