package athlete

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

const athleteColumns = `
id::text, parent_email, first_name, last_name, date_of_birth::text,
COALESCE(grade, ''), COALESCE(tshirt_size, ''), COALESCE(medical_notes, ''),
COALESCE(allergies, ''), created_at
`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Athlete, error) {
	var a domain.Athlete
	err := scanAthlete(r.pool.QueryRow(ctx, `SELECT `+athleteColumns+` FROM athletes WHERE id = $1`, id), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("athlete repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("athlete repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) ListByParentEmail(ctx context.Context, email string) ([]domain.Athlete, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+athleteColumns+` FROM athletes WHERE parent_email = $1 ORDER BY created_at ASC`, email)
	if err != nil {
		r.logger.Printf("athlete repo: list email=%s error=%v", email, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Athlete
	for rows.Next() {
		var a domain.Athlete
		if err := scanAthlete(rows, &a); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetParentProfile(ctx context.Context, email string) (*domain.ParentProfile, error) {
	const q = `
SELECT id::text, first_name, last_name, email, COALESCE(phone, ''),
       COALESCE(address, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(zip, ''),
       COALESCE(emergency_contact_name, ''), COALESCE(emergency_contact_phone, ''),
       COALESCE(emergency_contact_relationship, ''), created_at
FROM parent_profiles
WHERE email = $1
`
	var p domain.ParentProfile
	err := r.pool.QueryRow(ctx, q, email).Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.Phone,
		&p.Address,
		&p.City,
		&p.State,
		&p.Zip,
		&p.EmergencyContactName,
		&p.EmergencyContactPhone,
		&p.EmergencyContactRelationship,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("athlete repo: parent email=%s not found", email)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("athlete repo: parent email=%s error=%v", email, err)
		return nil, err
	}
	return &p, nil
}

func scanAthlete(row pgx.Row, a *domain.Athlete) error {
	return row.Scan(
		&a.ID,
		&a.ParentEmail,
		&a.FirstName,
		&a.LastName,
		&a.DateOfBirth,
		&a.Grade,
		&a.TShirtSize,
		&a.MedicalNotes,
		&a.Allergies,
		&a.CreatedAt,
	)
}
