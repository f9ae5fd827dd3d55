package audit

import "context"

// Filter narrows List results. Zero value returns the most recent events.
type Filter struct {
	AdminID string
	Action  string
	Limit   int
}

// Store is an append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context, filter Filter) ([]Event, error)
}
