// Package notify informs citizens about the outcome of their requests.
// Delivery is best-effort: callers log failures and move on.
package notify

import (
	"context"
	"log/slog"
)

// Notifier sends a short message to a citizen contact (mobile number or
// similar). Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, contact, message string) error
}

// LogNotifier writes notifications to the log. It stands in until an SMS
// gateway account is provisioned for the office.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, contact, message string) error {
	n.logger.InfoContext(ctx, "notification", "contact", contact, "message", message)
	return nil
}
