package checkout

import (
	"testing"

	"campreg/internal/domain"
)

func stateWithCampers(camp domain.CampSession, n int) domain.CheckoutState {
	s := domain.CheckoutState{CampSession: &camp}
	for i := 0; i < n; i++ {
		s.Campers = append(s.Campers, domain.Camper{ID: string(rune('a' + i))})
	}
	return s
}

func TestTotalsNoCampIsZero(t *testing.T) {
	got := DeriveTotals(domain.CheckoutState{Campers: []domain.Camper{{ID: "c"}}})
	if got != (domain.Totals{}) {
		t.Fatalf("expected zero totals without a camp, got %+v", got)
	}
}

func TestTotalsSiblingDiscount(t *testing.T) {
	// price 100.00, 3 campers, 10% sibling discount.
	camp := domain.CampSession{ID: "c", PriceCents: 10000, SiblingDiscountPercent: 10}
	got := DeriveTotals(stateWithCampers(camp, 3))
	if got.CampSubtotalCents != 30000 {
		t.Fatalf("campSubtotal: want 30000 got %d", got.CampSubtotalCents)
	}
	if got.SiblingDiscountCents != 2000 {
		t.Fatalf("siblingDiscount: want 2000 got %d", got.SiblingDiscountCents)
	}
	if got.SubtotalCents != 28000 || got.TotalCents != 28000 {
		t.Fatalf("subtotal/total: want 28000 got %d/%d", got.SubtotalCents, got.TotalCents)
	}
	if got.TaxCents != 0 {
		t.Fatalf("camps are tax-exempt, got tax %d", got.TaxCents)
	}
}

func TestTotalsSingleCamperNoSiblingDiscount(t *testing.T) {
	camp := domain.CampSession{ID: "c", PriceCents: 10000, SiblingDiscountPercent: 10}
	got := DeriveTotals(stateWithCampers(camp, 1))
	if got.SiblingDiscountCents != 0 || got.TotalCents != 10000 {
		t.Fatalf("unexpected totals %+v", got)
	}
}

func TestTotalsEarlyBirdPrice(t *testing.T) {
	early := int64(8500)
	camp := domain.CampSession{ID: "c", PriceCents: 10000, EarlyBirdPriceCents: &early, IsEarlyBird: true}
	got := DeriveTotals(stateWithCampers(camp, 2))
	if got.CampSubtotalCents != 17000 {
		t.Fatalf("early-bird price not applied: %+v", got)
	}

	// Flag without a configured price falls back to standard.
	camp.EarlyBirdPriceCents = nil
	got = DeriveTotals(stateWithCampers(camp, 2))
	if got.CampSubtotalCents != 20000 {
		t.Fatalf("expected standard price fallback: %+v", got)
	}
}

func TestTotalsAddOns(t *testing.T) {
	camp := domain.CampSession{ID: "c", PriceCents: 10000}
	s := stateWithCampers(camp, 1)
	s.SelectedAddOns = []domain.AddOnSelection{
		{AddOnID: "jersey", Quantity: 2, UnitPriceCents: 2500},
		{AddOnID: "photo", Quantity: 1, UnitPriceCents: 1500},
	}
	got := DeriveTotals(s)
	if got.AddOnsSubtotalCents != 6500 {
		t.Fatalf("addOnsSubtotal: want 6500 got %d", got.AddOnsSubtotalCents)
	}
	if got.TotalCents != 16500 {
		t.Fatalf("total: want 16500 got %d", got.TotalCents)
	}
}

func TestPromoScopeAddOnsOnly(t *testing.T) {
	// registration base 280.00, add-ons 50.00, 10% off add-ons only.
	camp := domain.CampSession{ID: "c", PriceCents: 10000, SiblingDiscountPercent: 10}
	s := stateWithCampers(camp, 3)
	s.SelectedAddOns = []domain.AddOnSelection{{AddOnID: "jersey", Quantity: 2, UnitPriceCents: 2500}}
	s.PromoCode = &domain.PromoCode{Code: "ADDONS10", DiscountType: domain.DiscountPercent, DiscountValue: 10, AppliesTo: domain.AppliesToAddOns}
	got := DeriveTotals(s)
	if got.PromoDiscountCents != 500 {
		t.Fatalf("promo must discount only the 5000 add-ons base: got %d", got.PromoDiscountCents)
	}
	if got.TotalCents != 28000+5000-500 {
		t.Fatalf("total: want 32500 got %d", got.TotalCents)
	}
}

func TestPromoScopeRegistrationOnly(t *testing.T) {
	camp := domain.CampSession{ID: "c", PriceCents: 10000, SiblingDiscountPercent: 10}
	s := stateWithCampers(camp, 3)
	s.SelectedAddOns = []domain.AddOnSelection{{AddOnID: "jersey", Quantity: 1, UnitPriceCents: 5000}}
	s.PromoCode = &domain.PromoCode{Code: "REG10", DiscountType: domain.DiscountPercent, DiscountValue: 10, AppliesTo: domain.AppliesToRegistration}
	got := DeriveTotals(s)
	if got.PromoDiscountCents != 2800 {
		t.Fatalf("promo base must be campSubtotal-siblingDiscount (28000): got %d", got.PromoDiscountCents)
	}
}

func TestPromoDefaultScopeIsBoth(t *testing.T) {
	camp := domain.CampSession{ID: "c", PriceCents: 10000}
	s := stateWithCampers(camp, 1)
	s.SelectedAddOns = []domain.AddOnSelection{{AddOnID: "jersey", Quantity: 1, UnitPriceCents: 5000}}
	s.PromoCode = &domain.PromoCode{Code: "TEN", DiscountType: domain.DiscountPercent, DiscountValue: 10}
	got := DeriveTotals(s)
	if got.PromoDiscountCents != 1500 {
		t.Fatalf("unset scope must cover both bases (15000): got %d", got.PromoDiscountCents)
	}
}

func TestPromoFixedCappedAtEligibleBase(t *testing.T) {
	camp := domain.CampSession{ID: "c", PriceCents: 10000}
	s := stateWithCampers(camp, 1)
	s.SelectedAddOns = []domain.AddOnSelection{{AddOnID: "photo", Quantity: 1, UnitPriceCents: 1500}}
	s.PromoCode = &domain.PromoCode{Code: "BIG", DiscountType: domain.DiscountFixed, DiscountValue: 5000, AppliesTo: domain.AppliesToAddOns}
	got := DeriveTotals(s)
	if got.PromoDiscountCents != 1500 {
		t.Fatalf("fixed discount must not exceed its eligible base: got %d", got.PromoDiscountCents)
	}
	if got.TotalCents != 10000 {
		t.Fatalf("total: want 10000 got %d", got.TotalCents)
	}
}
