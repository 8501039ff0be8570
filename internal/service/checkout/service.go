package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"campreg/internal/checkout"
	"campreg/internal/domain"
)

// Service drives checkout engines for HTTP callers: it loads the engine for
// a session key, resolves action references (camp slug, add-on ids, promo
// codes, athlete ids) through the catalog, and applies engine commands.
type Service struct {
	store    checkout.Store
	camps    campRepo
	addons   addonRepo
	promos   promoValidator
	athletes athleteRepo
	logger   *log.Logger
	ttl      time.Duration
	now      func() time.Time
}

type campRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.CampSession, error)
}

type addonRepo interface {
	GetByID(ctx context.Context, id string) (*domain.AddOn, error)
}

type promoValidator interface {
	Validate(ctx context.Context, code string) (*domain.PromoCode, error)
}

type athleteRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Athlete, error)
	GetParentProfile(ctx context.Context, email string) (*domain.ParentProfile, error)
}

func New(store checkout.Store, camps campRepo, addons addonRepo, promos promoValidator, athletes athleteRepo, logger *log.Logger, ttl time.Duration) *Service {
	return &Service{
		store:    store,
		camps:    camps,
		addons:   addons,
		promos:   promos,
		athletes: athletes,
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Action is one checkout command from the client.
type Action struct {
	Action      string                `json:"action"`
	CampSlug    string                `json:"campSlug,omitempty"`
	CamperID    string                `json:"camperId,omitempty"`
	AthleteID   string                `json:"athleteId,omitempty"`
	Camper      *checkout.CamperPatch `json:"camper,omitempty"`
	Parent      *checkout.ParentPatch `json:"parent,omitempty"`
	Email       string                `json:"email,omitempty"`
	SquadID     *string               `json:"squadId,omitempty"`
	AddOnID     string                `json:"addonId,omitempty"`
	VariantID   *string               `json:"variantId,omitempty"`
	ForCamperID *string               `json:"forCamperId,omitempty"`
	Quantity    int                   `json:"quantity,omitempty"`
	Code        string                `json:"code,omitempty"`
	Step        string                `json:"step,omitempty"`
	Waitlist    bool                  `json:"waitlist,omitempty"`
}

// Result is the session view returned after loading or applying actions.
type Result struct {
	State      domain.CheckoutState `json:"state"`
	Totals     domain.Totals        `json:"totals"`
	CanProceed bool                 `json:"canProceed"`
}

// Load rehydrates the session (scoped to campSlug when non-empty) without
// applying any commands.
func (s *Service) Load(ctx context.Context, sessionKey, campSlug string) *Result {
	eng := s.engine(ctx, sessionKey, campSlug)
	return resultOf(eng)
}

// Apply runs the action list against the session's engine in order. The
// first failing action aborts; state changes made by earlier actions are
// already persisted, matching one-command-at-a-time UI dispatch.
func (s *Service) Apply(ctx context.Context, sessionKey, campSlug string, actions []Action) (*Result, error) {
	if len(actions) == 0 {
		return nil, errors.New("actions required")
	}
	eng := s.engine(ctx, sessionKey, campSlug)

	for _, action := range actions {
		if err := s.apply(ctx, eng, action); err != nil {
			return nil, err
		}
	}
	return resultOf(eng), nil
}

func (s *Service) apply(ctx context.Context, eng *checkout.Engine, action Action) error {
	switch strings.ToLower(strings.TrimSpace(action.Action)) {
	case "setcamp":
		slug := strings.TrimSpace(action.CampSlug)
		if slug == "" {
			return errors.New("campSlug required")
		}
		camp, err := s.camps.GetBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errors.New("camp not found")
			}
			return err
		}
		eng.SetCamp(ctx, *camp)
	case "addcamper":
		eng.AddCamper(ctx)
	case "removecamper":
		eng.RemoveCamper(ctx, action.CamperID)
	case "updatecamper":
		if action.Camper == nil {
			return errors.New("camper patch required")
		}
		eng.UpdateCamper(ctx, action.CamperID, *action.Camper)
	case "selectexistingathlete":
		if strings.TrimSpace(action.AthleteID) == "" {
			return errors.New("athleteId required")
		}
		athlete, err := s.athletes.GetByID(ctx, action.AthleteID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errors.New("athlete not found")
			}
			return err
		}
		eng.SelectExistingAthlete(ctx, action.CamperID, *athlete)
	case "setnewathletemode":
		eng.SetNewAthleteMode(ctx, action.CamperID)
	case "updateparent":
		if action.Parent == nil {
			return errors.New("parent patch required")
		}
		eng.UpdateParent(ctx, *action.Parent)
	case "setparentfromprofile":
		email := strings.TrimSpace(action.Email)
		if email == "" {
			return errors.New("email required")
		}
		profile, err := s.athletes.GetParentProfile(ctx, email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errors.New("parent profile not found")
			}
			return err
		}
		eng.SetParentFromProfile(ctx, *profile)
	case "setsquad":
		eng.SetSquad(ctx, action.SquadID)
	case "addaddon":
		if action.Quantity <= 0 {
			return errors.New("quantity must be positive")
		}
		sel, err := s.resolveAddOn(ctx, action)
		if err != nil {
			return err
		}
		eng.AddAddOn(ctx, *sel)
	case "removeaddon":
		eng.RemoveAddOn(ctx, action.AddOnID, action.VariantID, action.ForCamperID)
	case "updateaddonquantity":
		eng.UpdateAddOnQuantity(ctx, action.AddOnID, action.VariantID, action.ForCamperID, action.Quantity)
	case "applypromo":
		promo, err := s.promos.Validate(ctx, action.Code)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrPromoInactive) {
				return fmt.Errorf("invalid promo code: %w", err)
			}
			return err
		}
		eng.ApplyPromo(ctx, *promo)
	case "removepromo":
		eng.RemovePromo(ctx)
	case "setwaitlistmode":
		eng.SetWaitlistMode(ctx, action.Waitlist)
	case "setstep":
		eng.SetStep(ctx, domain.Step(action.Step))
	case "nextstep":
		eng.NextStep(ctx)
	case "prevstep":
		eng.PrevStep(ctx)
	case "reset":
		eng.Reset(ctx)
	default:
		return errors.New("unsupported action")
	}
	return nil
}

// resolveAddOn looks the add-on up in the catalog and carries its resolved
// unit price into the selection; the engine never re-reads the catalog.
func (s *Service) resolveAddOn(ctx context.Context, action Action) (*domain.AddOnSelection, error) {
	id := strings.TrimSpace(action.AddOnID)
	if id == "" {
		return nil, errors.New("addonId required")
	}
	addon, err := s.addons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errors.New("add-on not found")
		}
		return nil, err
	}
	price := addon.PriceCents
	name := addon.Name
	if action.VariantID != nil {
		found := false
		for _, v := range addon.Variants {
			if v.ID == *action.VariantID {
				if v.PriceCents != nil {
					price = *v.PriceCents
				}
				name = addon.Name + " (" + v.Label + ")"
				found = true
				break
			}
		}
		if !found {
			return nil, errors.New("add-on variant not found")
		}
	}
	return &domain.AddOnSelection{
		AddOnID:        addon.ID,
		VariantID:      action.VariantID,
		CamperID:       action.ForCamperID,
		Name:           name,
		Quantity:       action.Quantity,
		UnitPriceCents: price,
	}, nil
}

// Engine exposes the underlying engine for the submission flow.
func (s *Service) Engine(ctx context.Context, sessionKey, campSlug string) *checkout.Engine {
	return s.engine(ctx, sessionKey, campSlug)
}

func (s *Service) engine(ctx context.Context, sessionKey, campSlug string) *checkout.Engine {
	return checkout.New(ctx, s.store, sessionKey, checkout.Options{
		Logger:   s.logger,
		Now:      s.now,
		TTL:      s.ttl,
		CampSlug: campSlug,
	})
}

func resultOf(eng *checkout.Engine) *Result {
	return &Result{
		State:      eng.State(),
		Totals:     eng.Totals(),
		CanProceed: eng.CanProceed(),
	}
}
