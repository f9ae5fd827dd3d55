package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const defaultInboxSize = 256

// Publisher accepts audit events from domain logic and hands them to the
// Worker through a buffered channel. Emit never blocks request handling:
// when the inbox is full the event is dropped and logged.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{
		inbox:  make(chan Event, defaultInboxSize),
		logger: logger,
	}
}

// Emit queues an event, filling in ID and timestamp when unset.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, dropping event",
			"action", event.Action, "subject", event.Subject)
	}
}

// Inbox exposes the receive side for the Worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}
