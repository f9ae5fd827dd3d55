package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"barangay/internal/clearance/policy"
	"barangay/internal/submission/models"
	"barangay/pkg/platform/sentinel"
)

// Postgres persists submissions in PostgreSQL. Form data is stored as JSONB.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Create(ctx context.Context, sub *models.Submission) error {
	form, err := json.Marshal(sub.FormData)
	if err != nil {
		return fmt.Errorf("marshal form data: %w", err)
	}
	query := `
		INSERT INTO submissions (id, clearance_type, name, form_data, resident_id, status, document_url, processed_by, processed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.pool.Exec(ctx, query,
		sub.ID, string(sub.Type), sub.Name, form, sub.ResidentID,
		string(sub.Status), sub.DocumentURL, sub.ProcessedBy, sub.ProcessedAt,
		sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	query := `
		SELECT id, clearance_type, name, form_data, resident_id, status, document_url, processed_by, processed_at, created_at, updated_at
		FROM submissions
		WHERE id = $1
	`
	return scanSubmission(s.pool.QueryRow(ctx, query, id))
}

func (s *Postgres) List(ctx context.Context, filter Filter) ([]*models.Submission, error) {
	query := `
		SELECT id, clearance_type, name, form_data, resident_id, status, document_url, processed_by, processed_at, created_at, updated_at
		FROM submissions
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`
	rows, err := s.pool.Query(ctx, query, string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []*models.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *Postgres) Update(ctx context.Context, sub *models.Submission) error {
	query := `
		UPDATE submissions
		SET status = $2, document_url = $3, processed_by = $4, processed_at = $5, updated_at = $6
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query,
		sub.ID, string(sub.Status), sub.DocumentURL, sub.ProcessedBy, sub.ProcessedAt, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var (
		sub          models.Submission
		clearanceTyp string
		status       string
		form         []byte
	)
	err := row.Scan(&sub.ID, &clearanceTyp, &sub.Name, &form, &sub.ResidentID,
		&status, &sub.DocumentURL, &sub.ProcessedBy, &sub.ProcessedAt,
		&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan submission: %w", err)
	}
	sub.Type = policy.Type(clearanceTyp)
	sub.Status = models.Status(status)
	if err := json.Unmarshal(form, &sub.FormData); err != nil {
		return nil, fmt.Errorf("unmarshal form data: %w", err)
	}
	return &sub, nil
}
