package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultListLimit = 100

// Postgres persists audit events in PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Append(ctx context.Context, event Event) error {
	query := `
		INSERT INTO audit_events (id, occurred_at, admin_id, action, subject, detail)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.pool.Exec(ctx, query,
		event.ID, event.OccurredAt, event.AdminID, event.Action, event.Subject, event.Detail)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *Postgres) List(ctx context.Context, filter Filter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `
		SELECT id, occurred_at, admin_id, action, subject, detail
		FROM audit_events
		WHERE ($1 = '' OR admin_id = $1)
		  AND ($2 = '' OR action = $2)
		ORDER BY occurred_at DESC
		LIMIT $3
	`
	rows, err := s.pool.Query(ctx, query, filter.AdminID, filter.Action, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.OccurredAt, &e.AdminID, &e.Action, &e.Subject, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
