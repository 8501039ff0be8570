package domain

import "time"

// Registration statuses.
const (
	RegistrationConfirmed  = "confirmed"
	RegistrationWaitlisted = "waitlisted"
)

// Registration is a submitted checkout persisted server-side. It snapshots
// the totals at submission time.
type Registration struct {
	ID         string           `json:"id"`
	CampID     string           `json:"campId"`
	Status     string           `json:"status"`
	SquadID    *string          `json:"squadId,omitempty"`
	PromoCode  *string          `json:"promoCode,omitempty"`
	ParentInfo ParentInfo       `json:"parentInfo"`
	Campers    []Camper         `json:"campers,omitempty"`
	AddOns     []AddOnSelection `json:"addOns,omitempty"`
	Totals     Totals           `json:"totals"`
	CreatedAt  time.Time        `json:"createdAt"`
}
