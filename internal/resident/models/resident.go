// Package models holds the canonical resident records of the barangay.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Resident is the canonical person record. It is the source of truth for name
// parts wherever a clearance submission links one; free-text names are only a
// fallback.
type Resident struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	MiddleName  string    `json:"middle_name,omitempty"`
	LastName    string    `json:"last_name"`
	Suffix      string    `json:"suffix,omitempty"`
	Birthdate   time.Time `json:"birthdate"`
	Gender      string    `json:"gender"`
	CivilStatus string    `json:"civil_status"`
	Citizenship string    `json:"citizenship"`
	Purok       string    `json:"purok"`
	Contact     string    `json:"contact,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Age derives the resident's age at the given time.
func (r *Resident) Age(now time.Time) int {
	if r.Birthdate.IsZero() {
		return 0
	}
	age := now.Year() - r.Birthdate.Year()
	if now.YearDay() < r.Birthdate.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// FullName joins the name parts with single spaces, skipping empty parts.
func (r *Resident) FullName() string {
	parts := make([]byte, 0, 64)
	for _, p := range []string{r.FirstName, r.MiddleName, r.LastName, r.Suffix} {
		if p == "" {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, ' ')
		}
		parts = append(parts, p...)
	}
	return string(parts)
}
