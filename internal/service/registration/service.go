package registration

import (
	"context"
	"errors"

	"campreg/internal/checkout"
	"campreg/internal/domain"
	regrepo "campreg/internal/repository/registration"
)

var (
	// ErrIncomplete indicates the checkout fails its own gates and cannot
	// be submitted.
	ErrIncomplete = errors.New("checkout incomplete")
	// ErrNoCamp indicates no camp session is selected.
	ErrNoCamp = errors.New("no camp selected")
)

type Service struct {
	repo     registrationRepo
	sessions sessionLoader
}

type registrationRepo interface {
	Create(ctx context.Context, in regrepo.CreateInput) (*domain.Registration, error)
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
}

type sessionLoader interface {
	Engine(ctx context.Context, sessionKey, campSlug string) *checkout.Engine
}

func New(repo registrationRepo, sessions sessionLoader) *Service {
	return &Service{repo: repo, sessions: sessions}
}

// Submit commits the session's checkout as a registration. The campers-step
// gate is re-checked server-side regardless of what the client claimed;
// waitlist-mode sessions are stored as waitlisted and do not consume
// capacity. On success the session is reset, which clears its storage.
func (s *Service) Submit(ctx context.Context, sessionKey, campSlug string) (*domain.Registration, error) {
	eng := s.sessions.Engine(ctx, sessionKey, campSlug)
	state := eng.State()
	if state.CampSession == nil {
		return nil, ErrNoCamp
	}
	if !submittable(state) {
		return nil, ErrIncomplete
	}

	status := domain.RegistrationConfirmed
	if state.IsWaitlistMode {
		status = domain.RegistrationWaitlisted
	}
	var promoCode *string
	if state.PromoCode != nil {
		code := state.PromoCode.Code
		promoCode = &code
	}

	reg, err := s.repo.Create(ctx, regrepo.CreateInput{
		CampID:    state.CampSession.ID,
		Status:    status,
		SquadID:   state.SquadID,
		PromoCode: promoCode,
		Parent:    state.ParentInfo,
		Campers:   state.Campers,
		AddOns:    state.SelectedAddOns,
		Totals:    eng.Totals(),
	})
	if err != nil {
		return nil, err
	}

	eng.Reset(ctx)
	return reg, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Registration, error) {
	return s.repo.GetByID(ctx, id)
}

// submittable re-runs the camp and campers gates against the final state.
// Squad and add-ons are optional; payment validation belongs to the
// processor.
func submittable(state domain.CheckoutState) bool {
	campGate := state
	campGate.Step = domain.StepCamp
	campersGate := state
	campersGate.Step = domain.StepCampers
	return checkout.CanProceed(campGate) && checkout.CanProceed(campersGate)
}
