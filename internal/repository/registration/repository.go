package registration

import (
	"context"

	"campreg/internal/domain"
)

// CreateInput is a committed checkout ready to be written. Totals are the
// derived breakdown at submission time.
type CreateInput struct {
	CampID    string
	Status    string
	SquadID   *string
	PromoCode *string
	Parent    domain.ParentInfo
	Campers   []domain.Camper
	AddOns    []domain.AddOnSelection
	Totals    domain.Totals
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.Registration, error)
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
}
