package checkout

import (
	"math"

	"campreg/internal/domain"
)

// DeriveTotals recomputes the money breakdown from the four source fields
// (camp, campers, add-ons, promo). It is pure: totals are never stored as
// authoritative state.
func DeriveTotals(s domain.CheckoutState) domain.Totals {
	if s.CampSession == nil {
		return domain.Totals{}
	}
	camp := *s.CampSession
	unit := camp.UnitPriceCents()
	numCampers := int64(len(s.Campers))

	campSubtotal := unit * numCampers

	// Sibling discount covers every camper after the first.
	var siblingDiscount int64
	if numCampers > 1 {
		siblingDiscount = roundCents(float64(unit) * float64(numCampers-1) * camp.SiblingDiscountPercent / 100)
	}

	var addOnsSubtotal int64
	for _, a := range s.SelectedAddOns {
		addOnsSubtotal += a.UnitPriceCents * int64(a.Quantity)
	}

	subtotalBeforePromo := campSubtotal - siblingDiscount + addOnsSubtotal

	promoDiscount := promoDiscountCents(s.PromoCode, campSubtotal-siblingDiscount, addOnsSubtotal)

	subtotal := subtotalBeforePromo - promoDiscount
	var tax int64 // camps are tax-exempt

	return domain.Totals{
		CampSubtotalCents:    campSubtotal,
		SiblingDiscountCents: siblingDiscount,
		AddOnsSubtotalCents:  addOnsSubtotal,
		PromoDiscountCents:   promoDiscount,
		SubtotalCents:        subtotal,
		TaxCents:             tax,
		TotalCents:           subtotal + tax,
	}
}

func promoDiscountCents(promo *domain.PromoCode, registrationBase, addOnsBase int64) int64 {
	if promo == nil {
		return 0
	}
	var base int64
	switch promo.AppliesTo {
	case domain.AppliesToRegistration:
		base = registrationBase
	case domain.AppliesToAddOns:
		base = addOnsBase
	default: // unset scope means both
		base = registrationBase + addOnsBase
	}
	switch promo.DiscountType {
	case domain.DiscountPercent:
		return roundCents(float64(base) * promo.DiscountValue / 100)
	case domain.DiscountFixed:
		fixed := roundCents(promo.DiscountValue)
		if fixed > base {
			return base
		}
		return fixed
	default:
		return 0
	}
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
