package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"campreg/internal/checkout"
	"campreg/internal/domain"
	regrepo "campreg/internal/repository/registration"
)

type stubRepo struct {
	created   *domain.Registration
	createErr error
	lastInput regrepo.CreateInput
	fetched   *domain.Registration
	fetchErr  error
}

func (s *stubRepo) Create(_ context.Context, in regrepo.CreateInput) (*domain.Registration, error) {
	s.lastInput = in
	return s.created, s.createErr
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Registration, error) {
	return s.fetched, s.fetchErr
}

// sessionStub fabricates engines over a shared memory store so Submit sees
// whatever state the test staged.
type sessionStub struct {
	store *checkout.MemoryStore
}

func (s *sessionStub) Engine(ctx context.Context, sessionKey, campSlug string) *checkout.Engine {
	return checkout.New(ctx, s.store, sessionKey, checkout.Options{CampSlug: campSlug})
}

func stageCompleteCheckout(t *testing.T, store *checkout.MemoryStore, waitlist bool) {
	t.Helper()
	ctx := context.Background()
	eng := checkout.New(ctx, store, "s1", checkout.Options{})
	eng.SetCamp(ctx, domain.CampSession{
		ID: "camp-1", Slug: "summer", PriceCents: 10000,
		MinAge: 8, MaxAge: 14, SpotsRemaining: 5,
	})
	if waitlist {
		eng.SetWaitlistMode(ctx, true)
	}
	id := eng.State().Campers[0].ID
	first, last, dob := "Ava", "Nguyen", "2014-03-01"
	pickups := []domain.PickupContact{{Name: "Linh Nguyen", Relationship: "mother", Phone: "555-0101"}}
	eng.UpdateCamper(ctx, id, checkout.CamperPatch{
		FirstName: &first, LastName: &last, DateOfBirth: &dob, AuthorizedPickups: &pickups,
	})
	eng.UpdateParent(ctx, checkout.ParentPatch{
		FirstName: strPtr("Linh"), LastName: strPtr("Nguyen"),
		Email: strPtr("linh@example.com"), Phone: strPtr("555-0101"),
		EmergencyContactName:         strPtr("Tran Nguyen"),
		EmergencyContactPhone:        strPtr("555-0102"),
		EmergencyContactRelationship: strPtr("uncle"),
	})
}

func strPtr(v string) *string { return &v }

func TestSubmitNoCamp(t *testing.T) {
	svc := New(&stubRepo{}, &sessionStub{store: checkout.NewMemoryStore()})
	_, err := svc.Submit(context.Background(), "s1", "")
	if !errors.Is(err, ErrNoCamp) {
		t.Fatalf("expected ErrNoCamp, got %v", err)
	}
}

func TestSubmitIncomplete(t *testing.T) {
	store := checkout.NewMemoryStore()
	ctx := context.Background()
	eng := checkout.New(ctx, store, "s1", checkout.Options{})
	eng.SetCamp(ctx, domain.CampSession{ID: "camp-1", Slug: "summer", PriceCents: 10000, SpotsRemaining: 5})

	svc := New(&stubRepo{}, &sessionStub{store: store})
	_, err := svc.Submit(ctx, "s1", "")
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
}

func TestSubmitConfirmed(t *testing.T) {
	store := checkout.NewMemoryStore()
	stageCompleteCheckout(t, store, false)

	repo := &stubRepo{created: &domain.Registration{ID: "r1", Status: domain.RegistrationConfirmed}}
	svc := New(repo, &sessionStub{store: store})
	reg, err := svc.Submit(context.Background(), "s1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.ID != "r1" {
		t.Fatalf("unexpected registration %+v", reg)
	}
	in := repo.lastInput
	if in.Status != domain.RegistrationConfirmed || in.CampID != "camp-1" {
		t.Fatalf("unexpected input %+v", in)
	}
	if in.Totals.TotalCents != 10000 {
		t.Fatalf("totals must be derived at submit: %+v", in.Totals)
	}
	if len(in.Campers) != 1 || in.Campers[0].FirstName != "Ava" {
		t.Fatalf("campers not carried: %+v", in.Campers)
	}

	// Successful submit clears the stored session.
	if _, ok, _ := store.Load(context.Background(), "s1"); ok {
		t.Fatalf("submit must clear the session")
	}
}

func TestSubmitWaitlisted(t *testing.T) {
	store := checkout.NewMemoryStore()
	stageCompleteCheckout(t, store, true)

	repo := &stubRepo{created: &domain.Registration{ID: "r2", Status: domain.RegistrationWaitlisted}}
	svc := New(repo, &sessionStub{store: store})
	if _, err := svc.Submit(context.Background(), "s1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastInput.Status != domain.RegistrationWaitlisted {
		t.Fatalf("waitlist mode must submit as waitlisted, got %s", repo.lastInput.Status)
	}
}

func TestSubmitCampFull(t *testing.T) {
	store := checkout.NewMemoryStore()
	stageCompleteCheckout(t, store, false)

	repo := &stubRepo{createErr: domain.ErrCampFull}
	svc := New(repo, &sessionStub{store: store})
	_, err := svc.Submit(context.Background(), "s1", "")
	if !errors.Is(err, domain.ErrCampFull) {
		t.Fatalf("expected ErrCampFull, got %v", err)
	}
	// Failed submit keeps the session for another attempt.
	if _, ok, _ := store.Load(context.Background(), "s1"); !ok {
		t.Fatalf("failed submit must keep the session")
	}
}

func TestSubmitPromoCodeCarried(t *testing.T) {
	store := checkout.NewMemoryStore()
	stageCompleteCheckout(t, store, false)
	ctx := context.Background()
	eng := checkout.New(ctx, store, "s1", checkout.Options{})
	eng.ApplyPromo(ctx, domain.PromoCode{Code: "EARLY10", DiscountType: domain.DiscountPercent, DiscountValue: 10})

	repo := &stubRepo{created: &domain.Registration{ID: "r3"}}
	svc := New(repo, &sessionStub{store: store})
	if _, err := svc.Submit(ctx, "s1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastInput.PromoCode == nil || *repo.lastInput.PromoCode != "EARLY10" {
		t.Fatalf("promo code not carried: %v", repo.lastInput.PromoCode)
	}
	if repo.lastInput.Totals.PromoDiscountCents != 1000 {
		t.Fatalf("promo discount not in totals: %+v", repo.lastInput.Totals)
	}
}

func TestSubmitStaleSessionIsEmpty(t *testing.T) {
	store := checkout.NewMemoryStore()
	stageCompleteCheckout(t, store, false)

	// A loader whose engines see time far in the future: the persisted
	// session is past its freshness window.
	stale := &staleSessionStub{store: store}
	svc := New(&stubRepo{}, stale)
	_, err := svc.Submit(context.Background(), "s1", "")
	if !errors.Is(err, ErrNoCamp) {
		t.Fatalf("stale session must submit as empty, got %v", err)
	}
}

type staleSessionStub struct {
	store *checkout.MemoryStore
}

func (s *staleSessionStub) Engine(ctx context.Context, sessionKey, campSlug string) *checkout.Engine {
	later := func() time.Time { return time.Now().Add(48 * time.Hour) }
	return checkout.New(ctx, s.store, sessionKey, checkout.Options{CampSlug: campSlug, Now: later})
}
