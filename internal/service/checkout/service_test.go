package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"campreg/internal/checkout"
	"campreg/internal/domain"
)

type stubCampRepo struct {
	camp     *domain.CampSession
	err      error
	lastSlug string
}

func (s *stubCampRepo) GetBySlug(_ context.Context, slug string) (*domain.CampSession, error) {
	s.lastSlug = slug
	return s.camp, s.err
}

type stubAddonRepo struct {
	addon  *domain.AddOn
	err    error
	lastID string
}

func (s *stubAddonRepo) GetByID(_ context.Context, id string) (*domain.AddOn, error) {
	s.lastID = id
	return s.addon, s.err
}

type stubPromoValidator struct {
	promo    *domain.PromoCode
	err      error
	lastCode string
}

func (s *stubPromoValidator) Validate(_ context.Context, code string) (*domain.PromoCode, error) {
	s.lastCode = code
	return s.promo, s.err
}

type stubAthleteRepo struct {
	athlete   *domain.Athlete
	profile   *domain.ParentProfile
	err       error
	lastID    string
	lastEmail string
}

func (s *stubAthleteRepo) GetByID(_ context.Context, id string) (*domain.Athlete, error) {
	s.lastID = id
	return s.athlete, s.err
}

func (s *stubAthleteRepo) GetParentProfile(_ context.Context, email string) (*domain.ParentProfile, error) {
	s.lastEmail = email
	return s.profile, s.err
}

func newTestService(camps *stubCampRepo, addons *stubAddonRepo, promos *stubPromoValidator, athletes *stubAthleteRepo) (*Service, *checkout.MemoryStore) {
	if camps == nil {
		camps = &stubCampRepo{}
	}
	if addons == nil {
		addons = &stubAddonRepo{}
	}
	if promos == nil {
		promos = &stubPromoValidator{}
	}
	if athletes == nil {
		athletes = &stubAthleteRepo{}
	}
	store := checkout.NewMemoryStore()
	svc := New(store, camps, addons, promos, athletes, nil, time.Hour)
	return svc, store
}

func intPtr(v int64) *int64 { return &v }

func TestApplyRequiresActions(t *testing.T) {
	svc, _ := newTestService(nil, nil, nil, nil)
	_, err := svc.Apply(context.Background(), "s1", "", nil)
	if err == nil || err.Error() != "actions required" {
		t.Fatalf("expected actions error, got %v", err)
	}
}

func TestApplySetCamp(t *testing.T) {
	camps := &stubCampRepo{camp: &domain.CampSession{ID: "c1", Slug: "summer", PriceCents: 10000, SpotsRemaining: 10}}
	svc, _ := newTestService(camps, nil, nil, nil)
	res, err := svc.Apply(context.Background(), "s1", "", []Action{{Action: "setCamp", CampSlug: "summer"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if camps.lastSlug != "summer" {
		t.Fatalf("camp repo not consulted: %q", camps.lastSlug)
	}
	if res.State.CampSession == nil || res.State.CampSession.ID != "c1" {
		t.Fatalf("camp not set: %+v", res.State.CampSession)
	}
	if !res.CanProceed {
		t.Fatalf("camp with capacity should satisfy the camp gate")
	}
}

func TestApplySetCampNotFound(t *testing.T) {
	camps := &stubCampRepo{err: domain.ErrNotFound}
	svc, _ := newTestService(camps, nil, nil, nil)
	_, err := svc.Apply(context.Background(), "s1", "", []Action{{Action: "setCamp", CampSlug: "missing"}})
	if err == nil || err.Error() != "camp not found" {
		t.Fatalf("expected camp not found, got %v", err)
	}
}

func TestApplyAddAddOnResolvesPrice(t *testing.T) {
	addons := &stubAddonRepo{addon: &domain.AddOn{
		ID:         "ad1",
		Name:       "Camp Jersey",
		PriceCents: 2500,
		Variants: []domain.AddOnVariant{
			{ID: "v1", Label: "Youth M", PriceCents: intPtr(2700)},
			{ID: "v2", Label: "Youth L"},
		},
	}}
	svc, _ := newTestService(nil, addons, nil, nil)
	ctx := context.Background()

	variant := "v1"
	res, err := svc.Apply(ctx, "s1", "", []Action{{Action: "addAddOn", AddOnID: "ad1", VariantID: &variant, Quantity: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := res.State.SelectedAddOns
	if len(sel) != 1 || sel[0].UnitPriceCents != 2700 || sel[0].Quantity != 2 {
		t.Fatalf("variant price not resolved: %+v", sel)
	}

	// Variant without its own price falls back to the add-on price.
	variant = "v2"
	res, err = svc.Apply(ctx, "s1", "", []Action{{Action: "addAddOn", AddOnID: "ad1", VariantID: &variant, Quantity: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel = res.State.SelectedAddOns
	if len(sel) != 2 || sel[1].UnitPriceCents != 2500 {
		t.Fatalf("fallback price not applied: %+v", sel)
	}
}

func TestApplyAddAddOnValidation(t *testing.T) {
	addons := &stubAddonRepo{addon: &domain.AddOn{ID: "ad1", PriceCents: 100}}
	svc, _ := newTestService(nil, addons, nil, nil)
	ctx := context.Background()

	_, err := svc.Apply(ctx, "s1", "", []Action{{Action: "addAddOn", AddOnID: "ad1", Quantity: 0}})
	if err == nil || err.Error() != "quantity must be positive" {
		t.Fatalf("expected quantity error, got %v", err)
	}

	_, err = svc.Apply(ctx, "s1", "", []Action{{Action: "addAddOn", AddOnID: "", Quantity: 1}})
	if err == nil || err.Error() != "addonId required" {
		t.Fatalf("expected addonId error, got %v", err)
	}

	missing := "nope"
	_, err = svc.Apply(ctx, "s1", "", []Action{{Action: "addAddOn", AddOnID: "ad1", VariantID: &missing, Quantity: 1}})
	if err == nil || err.Error() != "add-on variant not found" {
		t.Fatalf("expected variant error, got %v", err)
	}
}

func TestApplyPromoFlow(t *testing.T) {
	promos := &stubPromoValidator{promo: &domain.PromoCode{Code: "EARLY10", DiscountType: domain.DiscountPercent, DiscountValue: 10, AppliesTo: domain.AppliesToBoth}}
	svc, _ := newTestService(nil, nil, promos, nil)
	res, err := svc.Apply(context.Background(), "s1", "", []Action{{Action: "applyPromo", Code: "early10"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if promos.lastCode != "early10" {
		t.Fatalf("validator not consulted: %q", promos.lastCode)
	}
	if res.State.PromoCode == nil || res.State.PromoCode.Code != "EARLY10" {
		t.Fatalf("promo not applied: %+v", res.State.PromoCode)
	}
}

func TestApplyPromoInvalid(t *testing.T) {
	promos := &stubPromoValidator{err: domain.ErrPromoInactive}
	svc, _ := newTestService(nil, nil, promos, nil)
	_, err := svc.Apply(context.Background(), "s1", "", []Action{{Action: "applyPromo", Code: "OLD"}})
	if err == nil || !errors.Is(err, domain.ErrPromoInactive) {
		t.Fatalf("expected inactive promo error, got %v", err)
	}
}

func TestApplySelectExistingAthlete(t *testing.T) {
	athletes := &stubAthleteRepo{athlete: &domain.Athlete{ID: "ath1", FirstName: "Maya", LastName: "Lopez", DateOfBirth: "2013-05-04"}}
	svc, _ := newTestService(nil, nil, nil, athletes)
	ctx := context.Background()

	loaded := svc.Load(ctx, "s1", "")
	camperID := loaded.State.Campers[0].ID

	res, err := svc.Apply(ctx, "s1", "", []Action{{Action: "selectExistingAthlete", CamperID: camperID, AthleteID: "ath1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := res.State.Campers[0]
	if c.FirstName != "Maya" || c.AthleteID == nil || *c.AthleteID != "ath1" {
		t.Fatalf("athlete not applied: %+v", c)
	}
}

func TestApplyUnsupportedAction(t *testing.T) {
	svc, _ := newTestService(nil, nil, nil, nil)
	_, err := svc.Apply(context.Background(), "s1", "", []Action{{Action: "explode"}})
	if err == nil || err.Error() != "unsupported action" {
		t.Fatalf("expected unsupported action, got %v", err)
	}
}

func TestApplyPersistsAcrossCalls(t *testing.T) {
	svc, _ := newTestService(nil, nil, nil, nil)
	ctx := context.Background()

	if _, err := svc.Apply(ctx, "s1", "", []Action{{Action: "addCamper"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := svc.Load(ctx, "s1", "")
	if len(res.State.Campers) != 2 {
		t.Fatalf("state must persist across service calls, got %d campers", len(res.State.Campers))
	}
}

func TestApplySetParentFromProfile(t *testing.T) {
	athletes := &stubAthleteRepo{profile: &domain.ParentProfile{
		FirstName: "Linh", LastName: "Nguyen", Email: "linh@example.com", Phone: "555-0101",
	}}
	svc, _ := newTestService(nil, nil, nil, athletes)
	res, err := svc.Apply(context.Background(), "s1", "", []Action{{Action: "setParentFromProfile", Email: "linh@example.com"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.State.ParentInfo.FirstName != "Linh" || athletes.lastEmail != "linh@example.com" {
		t.Fatalf("profile not applied: %+v", res.State.ParentInfo)
	}
}
