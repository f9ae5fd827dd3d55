// Package models holds resident registration requests and their lifecycle.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	residentmodels "barangay/internal/resident/models"
	dErrors "barangay/pkg/domain-errors"
)

// Status is the registration lifecycle state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Registration is a citizen's request to be added to the resident register.
// Approval creates the resident record; approved and rejected are terminal.
type Registration struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"first_name"`
	MiddleName  string     `json:"middle_name,omitempty"`
	LastName    string     `json:"last_name"`
	Suffix      string     `json:"suffix,omitempty"`
	Birthdate   time.Time  `json:"birthdate"`
	Gender      string     `json:"gender,omitempty"`
	CivilStatus string     `json:"civil_status,omitempty"`
	Citizenship string     `json:"citizenship,omitempty"`
	Purok       string     `json:"purok,omitempty"`
	Contact     string     `json:"contact,omitempty"`
	Status      Status     `json:"status"`
	ProcessedBy string     `json:"processed_by,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewRequest carries the citizen-supplied fields.
type NewRequest struct {
	FirstName   string    `json:"first_name"`
	MiddleName  string    `json:"middle_name"`
	LastName    string    `json:"last_name"`
	Suffix      string    `json:"suffix"`
	Birthdate   time.Time `json:"birthdate"`
	Gender      string    `json:"gender"`
	CivilStatus string    `json:"civil_status"`
	Citizenship string    `json:"citizenship"`
	Purok       string    `json:"purok"`
	Contact     string    `json:"contact"`
}

// New validates and constructs a pending registration.
func New(req NewRequest, now time.Time) (*Registration, error) {
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" || last == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "first and last name are required")
	}
	if req.Birthdate.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "birthdate is required")
	}
	if req.Birthdate.After(now) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "birthdate cannot be in the future")
	}
	return &Registration{
		ID:          uuid.New(),
		FirstName:   first,
		MiddleName:  strings.TrimSpace(req.MiddleName),
		LastName:    last,
		Suffix:      strings.TrimSpace(req.Suffix),
		Birthdate:   req.Birthdate,
		Gender:      req.Gender,
		CivilStatus: req.CivilStatus,
		Citizenship: req.Citizenship,
		Purok:       req.Purok,
		Contact:     req.Contact,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CanProcess checks that the registration is still pending.
func (r *Registration) CanProcess() error {
	if r.Status != StatusPending {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "registration is already %s", r.Status)
	}
	return nil
}

// ApplyApproval transitions to approved.
func (r *Registration) ApplyApproval(processedBy string, now time.Time) {
	r.Status = StatusApproved
	r.ProcessedBy = processedBy
	r.ProcessedAt = &now
	r.UpdatedAt = now
}

// ApplyRejection transitions to rejected.
func (r *Registration) ApplyRejection(processedBy string, now time.Time) {
	r.Status = StatusRejected
	r.ProcessedBy = processedBy
	r.ProcessedAt = &now
	r.UpdatedAt = now
}

// ToResident materializes the resident record created on approval.
func (r *Registration) ToResident(now time.Time) *residentmodels.Resident {
	return &residentmodels.Resident{
		ID:          uuid.New(),
		FirstName:   r.FirstName,
		MiddleName:  r.MiddleName,
		LastName:    r.LastName,
		Suffix:      r.Suffix,
		Birthdate:   r.Birthdate,
		Gender:      r.Gender,
		CivilStatus: r.CivilStatus,
		Citizenship: r.Citizenship,
		Purok:       r.Purok,
		Contact:     r.Contact,
		CreatedAt:   now,
	}
}
