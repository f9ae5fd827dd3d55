// Package store persists resident registration requests.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"barangay/internal/registration/models"
	"barangay/pkg/platform/sentinel"
)

// Filter narrows List results. Zero value matches everything.
type Filter struct {
	Status models.Status
}

// InMemory is a mutex-guarded map store for tests and local development.
type InMemory struct {
	mu            sync.RWMutex
	registrations map[uuid.UUID]*models.Registration
}

func NewInMemory() *InMemory {
	return &InMemory{registrations: make(map[uuid.UUID]*models.Registration)}
}

func (s *InMemory) Create(_ context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registrations[reg.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *reg
	s.registrations[reg.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, ok := s.registrations[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *reg
	return &cp, nil
}

// List returns registrations matching the filter, newest first.
func (s *InMemory) List(_ context.Context, filter Filter) ([]*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Registration, 0, len(s.registrations))
	for _, reg := range s.registrations {
		if filter.Status != "" && reg.Status != filter.Status {
			continue
		}
		cp := *reg
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemory) Update(_ context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registrations[reg.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *reg
	s.registrations[reg.ID] = &cp
	return nil
}
