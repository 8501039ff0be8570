package domain

// Step identifies a position in the checkout wizard.
type Step string

const (
	StepCamp            Step = "camp"
	StepCampers         Step = "campers"
	StepSquad           Step = "squad"
	StepAddOns          Step = "addons"
	StepWaivers         Step = "waivers"
	StepAccount         Step = "account"
	StepPayment         Step = "payment"
	StepConfirmation    Step = "confirmation"
	StepWaitlistConfirm Step = "waitlist-confirm"
)

// Promo discount types and scopes.
const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"

	AppliesToRegistration = "registration"
	AppliesToAddOns       = "addons"
	AppliesToBoth         = "both"
)

// AddOnSelection is one chosen add-on line. Uniqueness within a checkout is
// keyed by (AddOnID, VariantID, CamperID); adding the same key again merges
// quantities. The unit price is resolved from the catalog at selection time
// and carried here so totals never re-read the catalog.
type AddOnSelection struct {
	AddOnID        string  `json:"addonId"`
	VariantID      *string `json:"variantId,omitempty"`
	CamperID       *string `json:"camperId,omitempty"`
	Name           string  `json:"name,omitempty"`
	Quantity       int     `json:"quantity"`
	UnitPriceCents int64   `json:"unitPriceCents"`
}

// SameKey reports whether two selections address the same line.
func (a AddOnSelection) SameKey(addonID string, variantID, camperID *string) bool {
	return a.AddOnID == addonID && strPtrEq(a.VariantID, variantID) && strPtrEq(a.CamperID, camperID)
}

func strPtrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// PromoCode is an applied discount code.
type PromoCode struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discountType"`
	DiscountValue float64 `json:"discountValue"`
	AppliesTo     string  `json:"appliesTo,omitempty"`
}

// CheckoutState is the root aggregate for one in-progress registration.
// Totals are derived, never stored here.
type CheckoutState struct {
	Step           Step             `json:"step"`
	CampSession    *CampSession     `json:"campSession,omitempty"`
	Campers        []Camper         `json:"campers"`
	ParentInfo     ParentInfo       `json:"parentInfo"`
	SelectedAddOns []AddOnSelection `json:"selectedAddOns"`
	PromoCode      *PromoCode       `json:"promoCode,omitempty"`
	SquadID        *string          `json:"squadId,omitempty"`
	IsWaitlistMode bool             `json:"isWaitlistMode"`
}

// Totals is the derived money breakdown for a checkout, in cents.
type Totals struct {
	CampSubtotalCents    int64 `json:"campSubtotalCents"`
	SiblingDiscountCents int64 `json:"siblingDiscountCents"`
	AddOnsSubtotalCents  int64 `json:"addOnsSubtotalCents"`
	PromoDiscountCents   int64 `json:"promoDiscountCents"`
	SubtotalCents        int64 `json:"subtotalCents"`
	TaxCents             int64 `json:"taxCents"`
	TotalCents           int64 `json:"totalCents"`
}
