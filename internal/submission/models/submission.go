// Package models holds clearance submissions and their lifecycle.
package models

import (
	"time"

	"github.com/google/uuid"

	"barangay/internal/clearance/policy"
	dErrors "barangay/pkg/domain-errors"
)

// Status is the submission lifecycle state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Submission is a citizen's request for a clearance document.
//
// Invariants:
//   - Type is one of the supported clearance types
//   - Name is non-empty
//   - Status transitions: pending -> approved (generate), pending -> rejected;
//     approved and rejected are terminal
//   - DocumentURL is only set together with StatusApproved
//
// Generation is idempotent at the status level (a terminal submission refuses
// further processing) but NOT at the document level: re-running generation on
// a still-pending submission creates a second external document.
type Submission struct {
	ID          uuid.UUID         `json:"id"`
	Type        policy.Type       `json:"clearance_type"`
	Name        string            `json:"name"`
	FormData    map[string]string `json:"form_data"`
	ResidentID  *uuid.UUID        `json:"resident_id,omitempty"`
	Status      Status            `json:"status"`
	DocumentURL string            `json:"document_url,omitempty"`
	ProcessedBy string            `json:"processed_by,omitempty"`
	ProcessedAt *time.Time        `json:"processed_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// New validates and constructs a pending submission.
func New(clearanceType policy.Type, name string, form map[string]string, residentID *uuid.UUID, now time.Time) (*Submission, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "submission name cannot be empty")
	}
	if _, err := policy.Parse(string(clearanceType)); err != nil {
		return nil, err
	}
	if form == nil {
		form = make(map[string]string)
	}
	return &Submission{
		ID:         uuid.New(),
		Type:       clearanceType,
		Name:       name,
		FormData:   form,
		ResidentID: residentID,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// CanProcess checks that the submission is still pending. Use with
// ApplyApproval or ApplyRejection.
func (s *Submission) CanProcess() error {
	if s.Status != StatusPending {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "submission is already %s", s.Status)
	}
	return nil
}

// ApplyApproval records the generated document and transitions to approved.
func (s *Submission) ApplyApproval(documentURL, processedBy string, now time.Time) {
	s.Status = StatusApproved
	s.DocumentURL = documentURL
	s.ProcessedBy = processedBy
	s.ProcessedAt = &now
	s.UpdatedAt = now
}

// ApplyRejection transitions to rejected.
func (s *Submission) ApplyRejection(processedBy string, now time.Time) {
	s.Status = StatusRejected
	s.ProcessedBy = processedBy
	s.ProcessedAt = &now
	s.UpdatedAt = now
}
