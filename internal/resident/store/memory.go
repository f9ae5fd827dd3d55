// Package store persists the resident register.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"barangay/internal/resident/models"
	"barangay/pkg/platform/sentinel"
)

// Filter narrows List results. Zero value matches everything.
type Filter struct {
	Purok string
}

// InMemory is a mutex-guarded map store for tests and local development.
type InMemory struct {
	mu        sync.RWMutex
	residents map[uuid.UUID]*models.Resident
}

func NewInMemory() *InMemory {
	return &InMemory{residents: make(map[uuid.UUID]*models.Resident)}
}

func (s *InMemory) Create(_ context.Context, r *models.Resident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.residents[r.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *r
	s.residents[r.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.residents[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// FindByNameAndBirthdate matches case-insensitively on first and last name
// and on the calendar date of birth. Used for duplicate detection when
// approving registrations.
func (s *InMemory) FindByNameAndBirthdate(_ context.Context, firstName, lastName string, birthdate time.Time) (*models.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.residents {
		if strings.EqualFold(r.FirstName, firstName) &&
			strings.EqualFold(r.LastName, lastName) &&
			sameDate(r.Birthdate, birthdate) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// List returns residents matching the filter, sorted by last then first name.
func (s *InMemory) List(_ context.Context, filter Filter) ([]*models.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Resident, 0, len(s.residents))
	for _, r := range s.residents {
		if filter.Purok != "" && r.Purok != filter.Purok {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
