package addon

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

func (r *postgresRepo) ListByCamp(ctx context.Context, campID string) ([]domain.AddOn, error) {
	const q = `
SELECT id::text, camp_id::text, name, price_cents, per_camper, created_at
FROM camp_addons
WHERE camp_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, campID)
	if err != nil {
		r.logger.Printf("addon repo: list camp_id=%s error=%v", campID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.AddOn
	for rows.Next() {
		var a domain.AddOn
		if err := rows.Scan(&a.ID, &a.CampID, &a.Name, &a.PriceCents, &a.PerCamper, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		variants, err := r.variants(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Variants = variants
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.AddOn, error) {
	const q = `
SELECT id::text, camp_id::text, name, price_cents, per_camper, created_at
FROM camp_addons
WHERE id = $1
`
	var a domain.AddOn
	err := r.pool.QueryRow(ctx, q, id).Scan(&a.ID, &a.CampID, &a.Name, &a.PriceCents, &a.PerCamper, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("addon repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("addon repo: get id=%s error=%v", id, err)
		return nil, err
	}
	variants, err := r.variants(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Variants = variants
	return &a, nil
}

func (r *postgresRepo) variants(ctx context.Context, addonID string) ([]domain.AddOnVariant, error) {
	const q = `
SELECT id::text, label, price_cents
FROM addon_variants
WHERE addon_id = $1
ORDER BY label ASC
`
	rows, err := r.pool.Query(ctx, q, addonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AddOnVariant
	for rows.Next() {
		var v domain.AddOnVariant
		if err := rows.Scan(&v.ID, &v.Label, &v.PriceCents); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
