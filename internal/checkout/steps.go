package checkout

import (
	"strings"

	"campreg/internal/domain"
)

// The two wizard orders are fixed linear sequences; waitlist mode swaps the
// tail (no add-ons, no payment).
var (
	standardOrder = []domain.Step{
		domain.StepCamp,
		domain.StepCampers,
		domain.StepSquad,
		domain.StepAddOns,
		domain.StepWaivers,
		domain.StepAccount,
		domain.StepPayment,
		domain.StepConfirmation,
	}
	waitlistOrder = []domain.Step{
		domain.StepCamp,
		domain.StepCampers,
		domain.StepSquad,
		domain.StepWaivers,
		domain.StepAccount,
		domain.StepWaitlistConfirm,
	}
)

func activeOrder(waitlist bool) []domain.Step {
	if waitlist {
		return waitlistOrder
	}
	return standardOrder
}

func stepIndex(order []domain.Step, step domain.Step) int {
	for i, s := range order {
		if s == step {
			return i
		}
	}
	return -1
}

// ValidStep reports whether step belongs to either wizard order.
func ValidStep(step domain.Step) bool {
	return stepIndex(standardOrder, step) >= 0 || stepIndex(waitlistOrder, step) >= 0
}

func isTerminal(step domain.Step) bool {
	return step == domain.StepConfirmation || step == domain.StepWaitlistConfirm
}

// CanProceed reports whether the current step's requirements are satisfied.
// It gates forward navigation only: SetStep itself is never blocked.
func CanProceed(s domain.CheckoutState) bool {
	switch s.Step {
	case domain.StepCamp:
		if s.CampSession == nil {
			return false
		}
		return s.IsWaitlistMode || s.CampSession.SpotsRemaining > 0
	case domain.StepCampers:
		for _, c := range s.Campers {
			if !camperComplete(c) {
				return false
			}
		}
		return parentComplete(s.ParentInfo)
	case domain.StepSquad, domain.StepAddOns:
		return true
	case domain.StepPayment:
		// The payment processor runs its own validation.
		return true
	default:
		return false
	}
}

func camperComplete(c domain.Camper) bool {
	if blank(c.FirstName) || blank(c.LastName) || blank(c.DateOfBirth) || !c.IsEligible {
		return false
	}
	for _, p := range c.AuthorizedPickups {
		if !blank(p.Name) && !blank(p.Phone) {
			return true
		}
	}
	return false
}

func parentComplete(p domain.ParentInfo) bool {
	return !blank(p.FirstName) && !blank(p.LastName) && !blank(p.Email) && !blank(p.Phone) &&
		!blank(p.EmergencyContactName) && !blank(p.EmergencyContactPhone) && !blank(p.EmergencyContactRelationship)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
