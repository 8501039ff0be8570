package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrPromoInactive indicates the promo code exists but is disabled or
	// outside its active window.
	ErrPromoInactive = errors.New("promo code inactive")
	// ErrCampFull indicates the camp has no remaining capacity for a
	// confirmed registration.
	ErrCampFull = errors.New("camp full")
)
