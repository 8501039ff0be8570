package athlete

import (
	"context"

	"campreg/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Athlete, error)
	ListByParentEmail(ctx context.Context, email string) ([]domain.Athlete, error)
	GetParentProfile(ctx context.Context, email string) (*domain.ParentProfile, error)
}
