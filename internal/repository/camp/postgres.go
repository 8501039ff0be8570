package camp

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

const campColumns = `
id::text, slug, name, price_cents, early_bird_price_cents, is_early_bird,
min_age, max_age, sibling_discount_percent, spots_remaining, starts_at
`

func (r *postgresRepo) List(ctx context.Context) ([]domain.CampSession, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campColumns+` FROM camps ORDER BY starts_at ASC`)
	if err != nil {
		r.logger.Printf("camp repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.CampSession
	for rows.Next() {
		c, err := scanCamp(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("camp repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.CampSession, error) {
	return r.getOne(ctx, `SELECT `+campColumns+` FROM camps WHERE slug = $1`, slug)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.CampSession, error) {
	return r.getOne(ctx, `SELECT `+campColumns+` FROM camps WHERE id = $1`, id)
}

func (r *postgresRepo) getOne(ctx context.Context, q, arg string) (*domain.CampSession, error) {
	c, err := scanCamp(r.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("camp repo: get %s not found", arg)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("camp repo: get %s error=%v", arg, err)
		return nil, err
	}
	return &c, nil
}

func scanCamp(row pgx.Row) (domain.CampSession, error) {
	var c domain.CampSession
	err := row.Scan(
		&c.ID,
		&c.Slug,
		&c.Name,
		&c.PriceCents,
		&c.EarlyBirdPriceCents,
		&c.IsEarlyBird,
		&c.MinAge,
		&c.MaxAge,
		&c.SiblingDiscountPercent,
		&c.SpotsRemaining,
		&c.StartsAt,
	)
	return c, err
}
