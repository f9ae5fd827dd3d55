package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"barangay/internal/resident/models"
	"barangay/pkg/platform/sentinel"
)

const residentColumns = `id, first_name, middle_name, last_name, suffix, birthdate, gender, civil_status, citizenship, purok, contact, created_at`

// Postgres persists residents in PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Create(ctx context.Context, r *models.Resident) error {
	query := `
		INSERT INTO residents (` + residentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.pool.Exec(ctx, query,
		r.ID, r.FirstName, r.MiddleName, r.LastName, r.Suffix, r.Birthdate,
		r.Gender, r.CivilStatus, r.Citizenship, r.Purok, r.Contact, r.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert resident: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM residents WHERE id = $1`
	return scanResident(s.pool.QueryRow(ctx, query, id))
}

func (s *Postgres) FindByNameAndBirthdate(ctx context.Context, firstName, lastName string, birthdate time.Time) (*models.Resident, error) {
	query := `
		SELECT ` + residentColumns + `
		FROM residents
		WHERE lower(first_name) = lower($1)
		  AND lower(last_name) = lower($2)
		  AND birthdate = $3
		LIMIT 1
	`
	return scanResident(s.pool.QueryRow(ctx, query, firstName, lastName, birthdate))
}

func (s *Postgres) List(ctx context.Context, filter Filter) ([]*models.Resident, error) {
	query := `
		SELECT ` + residentColumns + `
		FROM residents
		WHERE ($1 = '' OR purok = $1)
		ORDER BY last_name, first_name
	`
	rows, err := s.pool.Query(ctx, query, filter.Purok)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	defer rows.Close()

	var out []*models.Resident
	for rows.Next() {
		r, err := scanResident(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResident(row rowScanner) (*models.Resident, error) {
	var r models.Resident
	err := row.Scan(&r.ID, &r.FirstName, &r.MiddleName, &r.LastName, &r.Suffix,
		&r.Birthdate, &r.Gender, &r.CivilStatus, &r.Citizenship, &r.Purok,
		&r.Contact, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan resident: %w", err)
	}
	return &r, nil
}
