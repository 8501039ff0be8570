package domain

import "time"

// CampSession is a scheduled camp instance with its own pricing, age bounds
// and capacity. It is catalog data: the checkout engine reads it but never
// mutates it.
type CampSession struct {
	ID                     string    `json:"id"`
	Slug                   string    `json:"slug"`
	Name                   string    `json:"name,omitempty"`
	PriceCents             int64     `json:"priceCents"`
	EarlyBirdPriceCents    *int64    `json:"earlyBirdPriceCents,omitempty"`
	IsEarlyBird            bool      `json:"isEarlyBird"`
	MinAge                 int       `json:"minAge"`
	MaxAge                 int       `json:"maxAge"`
	SiblingDiscountPercent float64   `json:"siblingDiscountPercent"`
	SpotsRemaining         int       `json:"spotsRemaining"`
	StartsAt               time.Time `json:"startsAt,omitempty"`
}

// UnitPriceCents returns the per-camper price, honoring the early-bird
// price when the flag is set and a price is configured.
func (c CampSession) UnitPriceCents() int64 {
	if c.IsEarlyBird && c.EarlyBirdPriceCents != nil {
		return *c.EarlyBirdPriceCents
	}
	return c.PriceCents
}

// AddOn is a purchasable extra scoped to one camp, optionally with variants
// (sizes, options) carrying their own price.
type AddOn struct {
	ID         string         `json:"id"`
	CampID     string         `json:"campId"`
	Name       string         `json:"name"`
	PriceCents int64          `json:"priceCents"`
	PerCamper  bool           `json:"perCamper"`
	Variants   []AddOnVariant `json:"variants,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type AddOnVariant struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	PriceCents *int64 `json:"priceCents,omitempty"`
}
