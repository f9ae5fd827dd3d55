package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"barangay/internal/registration/models"
	"barangay/pkg/platform/sentinel"
)

const registrationColumns = `id, first_name, middle_name, last_name, suffix, birthdate, gender, civil_status, citizenship, purok, contact, status, processed_by, processed_at, created_at, updated_at`

// Postgres persists registrations in PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Create(ctx context.Context, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (` + registrationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := s.pool.Exec(ctx, query,
		reg.ID, reg.FirstName, reg.MiddleName, reg.LastName, reg.Suffix, reg.Birthdate,
		reg.Gender, reg.CivilStatus, reg.Citizenship, reg.Purok, reg.Contact,
		string(reg.Status), reg.ProcessedBy, reg.ProcessedAt, reg.CreatedAt, reg.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	return scanRegistration(s.pool.QueryRow(ctx, query, id))
}

func (s *Postgres) List(ctx context.Context, filter Filter) ([]*models.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`
	rows, err := s.pool.Query(ctx, query, string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var out []*models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (s *Postgres) Update(ctx context.Context, reg *models.Registration) error {
	query := `
		UPDATE registrations
		SET status = $2, processed_by = $3, processed_at = $4, updated_at = $5
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query,
		reg.ID, string(reg.Status), reg.ProcessedBy, reg.ProcessedAt, reg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*models.Registration, error) {
	var (
		reg    models.Registration
		status string
	)
	err := row.Scan(&reg.ID, &reg.FirstName, &reg.MiddleName, &reg.LastName, &reg.Suffix,
		&reg.Birthdate, &reg.Gender, &reg.CivilStatus, &reg.Citizenship, &reg.Purok,
		&reg.Contact, &status, &reg.ProcessedBy, &reg.ProcessedAt, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan registration: %w", err)
	}
	reg.Status = models.Status(status)
	return &reg, nil
}
