package catalog

import (
	"context"

	"campreg/internal/domain"
)

type Service struct {
	camps  campRepo
	addons addonRepo
}

type campRepo interface {
	List(ctx context.Context) ([]domain.CampSession, error)
	GetBySlug(ctx context.Context, slug string) (*domain.CampSession, error)
}

type addonRepo interface {
	ListByCamp(ctx context.Context, campID string) ([]domain.AddOn, error)
}

func New(camps campRepo, addons addonRepo) *Service {
	return &Service{camps: camps, addons: addons}
}

func (s *Service) ListCamps(ctx context.Context) ([]domain.CampSession, error) {
	return s.camps.List(ctx)
}

func (s *Service) GetCamp(ctx context.Context, slug string) (*domain.CampSession, error) {
	return s.camps.GetBySlug(ctx, slug)
}

// ListAddOns resolves the camp by slug and returns its add-ons.
func (s *Service) ListAddOns(ctx context.Context, campSlug string) ([]domain.AddOn, error) {
	camp, err := s.camps.GetBySlug(ctx, campSlug)
	if err != nil {
		return nil, err
	}
	return s.addons.ListByCamp(ctx, camp.ID)
}
