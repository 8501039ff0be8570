package addon

import (
	"context"

	"campreg/internal/domain"
)

type Repository interface {
	ListByCamp(ctx context.Context, campID string) ([]domain.AddOn, error)
	GetByID(ctx context.Context, id string) (*domain.AddOn, error)
}
