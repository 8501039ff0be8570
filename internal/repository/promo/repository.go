package promo

import (
	"context"
	"time"

	"campreg/internal/domain"
)

// Record is a stored promo code with its activation window.
type Record struct {
	domain.PromoCode
	Active    bool
	StartsAt  *time.Time
	ExpiresAt *time.Time
}

type Repository interface {
	GetByCode(ctx context.Context, code string) (*Record, error)
}
