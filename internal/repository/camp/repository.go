package camp

import (
	"context"

	"campreg/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.CampSession, error)
	GetBySlug(ctx context.Context, slug string) (*domain.CampSession, error)
	GetByID(ctx context.Context, id string) (*domain.CampSession, error)
}
