package registration

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campreg/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// Create writes the registration with its camper and add-on children in one
// transaction. Confirmed registrations consume capacity: the camp row is
// decremented with a guard, and domain.ErrCampFull is returned when no
// spots remain.
func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Registration, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if in.Status == domain.RegistrationConfirmed {
		cmd, err := tx.Exec(ctx, `
UPDATE camps
SET spots_remaining = spots_remaining - $1
WHERE id = $2 AND spots_remaining >= $1
`, len(in.Campers), in.CampID)
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			return nil, domain.ErrCampFull
		}
	}

	const regQuery = `
INSERT INTO registrations (
	camp_id, status, squad_id, promo_code,
	parent_first_name, parent_last_name, parent_email, parent_phone,
	parent_address, parent_city, parent_state, parent_zip,
	emergency_contact_name, emergency_contact_phone, emergency_contact_relationship,
	camp_subtotal_cents, sibling_discount_cents, addons_subtotal_cents,
	promo_discount_cents, total_cents
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
RETURNING id::text, created_at
`
	reg := domain.Registration{
		CampID:     in.CampID,
		Status:     in.Status,
		SquadID:    in.SquadID,
		PromoCode:  in.PromoCode,
		ParentInfo: in.Parent,
		Totals:     in.Totals,
	}
	err = tx.QueryRow(ctx, regQuery,
		in.CampID,
		in.Status,
		in.SquadID,
		in.PromoCode,
		in.Parent.FirstName,
		in.Parent.LastName,
		in.Parent.Email,
		in.Parent.Phone,
		in.Parent.Address,
		in.Parent.City,
		in.Parent.State,
		in.Parent.Zip,
		in.Parent.EmergencyContactName,
		in.Parent.EmergencyContactPhone,
		in.Parent.EmergencyContactRelationship,
		in.Totals.CampSubtotalCents,
		in.Totals.SiblingDiscountCents,
		in.Totals.AddOnsSubtotalCents,
		in.Totals.PromoDiscountCents,
		in.Totals.TotalCents,
	).Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		r.logger.Printf("registration repo: insert camp_id=%s error=%v", in.CampID, err)
		return nil, err
	}

	const camperQuery = `
INSERT INTO registration_campers (
	registration_id, camper_key, athlete_id, first_name, last_name,
	date_of_birth, sex, grade, tshirt_size, medical_notes, allergies,
	special_considerations, authorized_pickups
)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::date, $7, $8, $9, $10, $11, $12, $13)
`
	for _, c := range in.Campers {
		if _, err := tx.Exec(ctx, camperQuery,
			reg.ID,
			c.ID,
			c.AthleteID,
			c.FirstName,
			c.LastName,
			c.DateOfBirth,
			c.Sex,
			c.Grade,
			c.TShirtSize,
			c.MedicalNotes,
			c.Allergies,
			c.SpecialConsiderations,
			c.AuthorizedPickups,
		); err != nil {
			r.logger.Printf("registration repo: insert camper registration_id=%s error=%v", reg.ID, err)
			return nil, err
		}
	}

	const addOnQuery = `
INSERT INTO registration_addons (
	registration_id, addon_id, variant_id, camper_key, quantity,
	unit_price_cents, total_cents
)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	for _, a := range in.AddOns {
		if _, err := tx.Exec(ctx, addOnQuery,
			reg.ID,
			a.AddOnID,
			a.VariantID,
			a.CamperID,
			a.Quantity,
			a.UnitPriceCents,
			a.UnitPriceCents*int64(a.Quantity),
		); err != nil {
			r.logger.Printf("registration repo: insert addon registration_id=%s error=%v", reg.ID, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	reg.Campers = in.Campers
	reg.AddOns = in.AddOns
	r.logger.Printf("registration repo: created id=%s camp_id=%s status=%s campers=%d", reg.ID, reg.CampID, reg.Status, len(in.Campers))
	return &reg, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	const q = `
SELECT id::text, camp_id::text, status, squad_id, promo_code,
       parent_first_name, parent_last_name, parent_email, parent_phone,
       COALESCE(parent_address, ''), COALESCE(parent_city, ''),
       COALESCE(parent_state, ''), COALESCE(parent_zip, ''),
       emergency_contact_name, emergency_contact_phone, emergency_contact_relationship,
       camp_subtotal_cents, sibling_discount_cents, addons_subtotal_cents,
       promo_discount_cents, total_cents, created_at
FROM registrations
WHERE id = $1
`
	var reg domain.Registration
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&reg.ID,
		&reg.CampID,
		&reg.Status,
		&reg.SquadID,
		&reg.PromoCode,
		&reg.ParentInfo.FirstName,
		&reg.ParentInfo.LastName,
		&reg.ParentInfo.Email,
		&reg.ParentInfo.Phone,
		&reg.ParentInfo.Address,
		&reg.ParentInfo.City,
		&reg.ParentInfo.State,
		&reg.ParentInfo.Zip,
		&reg.ParentInfo.EmergencyContactName,
		&reg.ParentInfo.EmergencyContactPhone,
		&reg.ParentInfo.EmergencyContactRelationship,
		&reg.Totals.CampSubtotalCents,
		&reg.Totals.SiblingDiscountCents,
		&reg.Totals.AddOnsSubtotalCents,
		&reg.Totals.PromoDiscountCents,
		&reg.Totals.TotalCents,
		&reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("registration repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &reg, nil
}
