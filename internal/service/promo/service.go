package promo

import (
	"context"
	"strings"
	"time"

	"campreg/internal/domain"
	promorepo "campreg/internal/repository/promo"
)

type Service struct {
	repo promoRepo
	now  func() time.Time
}

type promoRepo interface {
	GetByCode(ctx context.Context, code string) (*promorepo.Record, error)
}

func New(repo promoRepo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Validate looks up a code and checks its activation window. Codes are
// stored upper-case; lookup is case-insensitive.
func (s *Service) Validate(ctx context.Context, code string) (*domain.PromoCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.ErrNotFound
	}
	rec, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !rec.Active {
		return nil, domain.ErrPromoInactive
	}
	if rec.StartsAt != nil && now.Before(*rec.StartsAt) {
		return nil, domain.ErrPromoInactive
	}
	if rec.ExpiresAt != nil && now.After(*rec.ExpiresAt) {
		return nil, domain.ErrPromoInactive
	}
	promo := rec.PromoCode
	if promo.AppliesTo == "" {
		promo.AppliesTo = domain.AppliesToBoth
	}
	return &promo, nil
}
