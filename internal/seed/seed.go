package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type campSeed struct {
	Slug                   string
	Name                   string
	PriceCents             int64
	EarlyBirdPriceCents    *int64
	IsEarlyBird            bool
	MinAge                 int
	MaxAge                 int
	SiblingDiscountPercent float64
	SpotsRemaining         int
	StartsAt               time.Time
}

type addonSeed struct {
	Name       string
	PriceCents int64
	PerCamper  bool
	Variants   []variantSeed
}

type variantSeed struct {
	Label      string
	PriceCents *int64
}

type promoSeed struct {
	Code          string
	DiscountType  string
	DiscountValue float64
	AppliesTo     string
	ExpiresAt     *time.Time
}

type parentSeed struct {
	Email                        string
	FirstName                    string
	LastName                     string
	Phone                        string
	EmergencyContactName         string
	EmergencyContactPhone        string
	EmergencyContactRelationship string
	Athletes                     []athleteSeed
}

type athleteSeed struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	Grade       string
	TShirtSize  string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	earlyBird := int64(27500)
	camps := []campSeed{
		{
			Slug:                   "summer-classic",
			Name:                   "Summer Classic Camp",
			PriceCents:             32500,
			EarlyBirdPriceCents:    &earlyBird,
			IsEarlyBird:            true,
			MinAge:                 8,
			MaxAge:                 14,
			SiblingDiscountPercent: 10,
			SpotsRemaining:         48,
			StartsAt:               time.Date(2026, time.July, 6, 9, 0, 0, 0, time.UTC),
		},
		{
			Slug:                   "elite-skills-clinic",
			Name:                   "Elite Skills Clinic",
			PriceCents:             45000,
			MinAge:                 13,
			MaxAge:                 17,
			SiblingDiscountPercent: 5,
			SpotsRemaining:         0, // full: exercises the waitlist flow
			StartsAt:               time.Date(2026, time.August, 3, 9, 0, 0, 0, time.UTC),
		},
	}

	ymPrice := int64(2500)
	addonsByCamp := map[string][]addonSeed{
		"summer-classic": {
			{
				Name:       "Camp Jersey",
				PriceCents: 2500,
				PerCamper:  true,
				Variants: []variantSeed{
					{Label: "Youth M", PriceCents: &ymPrice},
					{Label: "Youth L"},
					{Label: "Adult S"},
				},
			},
			{Name: "Team Photo Package", PriceCents: 1500},
		},
		"elite-skills-clinic": {
			{Name: "Video Analysis Session", PriceCents: 5000, PerCamper: true},
		},
	}

	expires := time.Date(2026, time.June, 30, 23, 59, 59, 0, time.UTC)
	promos := []promoSeed{
		{Code: "EARLY10", DiscountType: "percent", DiscountValue: 10, AppliesTo: "registration", ExpiresAt: &expires},
		{Code: "GEAR5", DiscountType: "fixed", DiscountValue: 500, AppliesTo: "addons"},
		{Code: "FAMILY25", DiscountType: "fixed", DiscountValue: 2500, AppliesTo: "both"},
	}

	for _, c := range camps {
		campID, err := upsertCamp(ctx, pool, c)
		if err != nil {
			return fmt.Errorf("upsert camp %s: %w", c.Slug, err)
		}
		for _, a := range addonsByCamp[c.Slug] {
			if err := upsertAddon(ctx, pool, campID, a); err != nil {
				return fmt.Errorf("upsert addon %s: %w", a.Name, err)
			}
		}
	}

	for _, p := range promos {
		if err := upsertPromo(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert promo %s: %w", p.Code, err)
		}
	}

	parents := []parentSeed{
		{
			Email:                        "dana.rivera@example.com",
			FirstName:                    "Dana",
			LastName:                     "Rivera",
			Phone:                        "555-0142",
			EmergencyContactName:         "Sam Rivera",
			EmergencyContactPhone:        "555-0143",
			EmergencyContactRelationship: "spouse",
			Athletes: []athleteSeed{
				{FirstName: "Maya", LastName: "Rivera", DateOfBirth: "2014-04-12", Grade: "6", TShirtSize: "YM"},
				{FirstName: "Sofia", LastName: "Rivera", DateOfBirth: "2012-11-03", Grade: "8", TShirtSize: "YL"},
			},
		},
	}
	for _, p := range parents {
		if err := upsertParent(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert parent %s: %w", p.Email, err)
		}
	}

	return nil
}

func upsertCamp(ctx context.Context, pool *pgxpool.Pool, c campSeed) (string, error) {
	const q = `
INSERT INTO camps (slug, name, price_cents, early_bird_price_cents, is_early_bird,
                   min_age, max_age, sibling_discount_percent, spots_remaining, starts_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    price_cents = EXCLUDED.price_cents,
    early_bird_price_cents = EXCLUDED.early_bird_price_cents,
    is_early_bird = EXCLUDED.is_early_bird,
    min_age = EXCLUDED.min_age,
    max_age = EXCLUDED.max_age,
    sibling_discount_percent = EXCLUDED.sibling_discount_percent,
    starts_at = EXCLUDED.starts_at
RETURNING id::text
`
	var id string
	err := pool.QueryRow(ctx, q,
		c.Slug, c.Name, c.PriceCents, c.EarlyBirdPriceCents, c.IsEarlyBird,
		c.MinAge, c.MaxAge, c.SiblingDiscountPercent, c.SpotsRemaining, c.StartsAt,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func upsertAddon(ctx context.Context, pool *pgxpool.Pool, campID string, a addonSeed) error {
	// No natural key for add-ons, so seed is insert-if-absent by name.
	const q = `
INSERT INTO camp_addons (camp_id, name, price_cents, per_camper)
SELECT $1, $2, $3, $4
WHERE NOT EXISTS (SELECT 1 FROM camp_addons WHERE camp_id = $1 AND name = $2)
RETURNING id::text
`
	var addonID string
	err := pool.QueryRow(ctx, q, campID, a.Name, a.PriceCents, a.PerCamper).Scan(&addonID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Add-on already exists; its variants were seeded with it.
		return nil
	}
	if err != nil {
		return err
	}
	for _, v := range a.Variants {
		if _, err := pool.Exec(ctx, `
INSERT INTO addon_variants (addon_id, label, price_cents)
VALUES ($1, $2, $3)
`, addonID, v.Label, v.PriceCents); err != nil {
			return err
		}
	}
	return nil
}

func upsertParent(ctx context.Context, pool *pgxpool.Pool, p parentSeed) error {
	const q = `
INSERT INTO parent_profiles (email, first_name, last_name, phone,
                             emergency_contact_name, emergency_contact_phone,
                             emergency_contact_relationship)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (email) DO UPDATE
SET first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    phone = EXCLUDED.phone,
    emergency_contact_name = EXCLUDED.emergency_contact_name,
    emergency_contact_phone = EXCLUDED.emergency_contact_phone,
    emergency_contact_relationship = EXCLUDED.emergency_contact_relationship
`
	if _, err := pool.Exec(ctx, q,
		p.Email, p.FirstName, p.LastName, p.Phone,
		p.EmergencyContactName, p.EmergencyContactPhone, p.EmergencyContactRelationship,
	); err != nil {
		return err
	}
	// No natural key for athletes, so seed is insert-if-absent by name.
	const athleteQ = `
INSERT INTO athletes (parent_email, first_name, last_name, date_of_birth, grade, tshirt_size)
SELECT $1, $2, $3, $4::date, $5, $6
WHERE NOT EXISTS (
	SELECT 1 FROM athletes WHERE parent_email = $1 AND first_name = $2 AND last_name = $3
)
`
	for _, a := range p.Athletes {
		if _, err := pool.Exec(ctx, athleteQ,
			p.Email, a.FirstName, a.LastName, a.DateOfBirth, a.Grade, a.TShirtSize,
		); err != nil {
			return err
		}
	}
	return nil
}

func upsertPromo(ctx context.Context, pool *pgxpool.Pool, p promoSeed) error {
	const q = `
INSERT INTO promo_codes (code, discount_type, discount_value, applies_to, expires_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (code) DO UPDATE
SET discount_type = EXCLUDED.discount_type,
    discount_value = EXCLUDED.discount_value,
    applies_to = EXCLUDED.applies_to,
    expires_at = EXCLUDED.expires_at
`
	_, err := pool.Exec(ctx, q, p.Code, p.DiscountType, p.DiscountValue, p.AppliesTo, p.ExpiresAt)
	return err
}
