// Package audit records who did what in the office back room.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded in the trail.
const (
	ActionSubmissionReceived   = "submission_received"
	ActionDocumentGenerated    = "document_generated"
	ActionSubmissionRejected   = "submission_rejected"
	ActionRegistrationReceived = "registration_received"
	ActionRegistrationApproved = "registration_approved"
	ActionRegistrationRejected = "registration_rejected"
	ActionAdminLogin           = "admin_login"
	ActionAdminLogout          = "admin_logout"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID         uuid.UUID `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	AdminID    string    `json:"admin_id,omitempty"`
	Action     string    `json:"action"`
	Subject    string    `json:"subject,omitempty"`
	Detail     string    `json:"detail,omitempty"`
}
