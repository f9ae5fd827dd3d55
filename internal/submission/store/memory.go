// Package store persists clearance submissions.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"barangay/internal/submission/models"
	"barangay/pkg/platform/sentinel"
)

// Filter narrows List results. Zero value matches everything.
type Filter struct {
	Status models.Status
}

// InMemory is a mutex-guarded map store for tests and local development.
type InMemory struct {
	mu          sync.RWMutex
	submissions map[uuid.UUID]*models.Submission
}

func NewInMemory() *InMemory {
	return &InMemory{submissions: make(map[uuid.UUID]*models.Submission)}
}

func (s *InMemory) Create(_ context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.submissions[sub.ID]; ok {
		return sentinel.ErrConflict
	}
	s.submissions[sub.ID] = clone(sub)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(sub), nil
}

// List returns submissions matching the filter, newest first.
func (s *InMemory) List(_ context.Context, filter Filter) ([]*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Submission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		if filter.Status != "" && sub.Status != filter.Status {
			continue
		}
		out = append(out, clone(sub))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemory) Update(_ context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.submissions[sub.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.submissions[sub.ID] = clone(sub)
	return nil
}

func clone(sub *models.Submission) *models.Submission {
	cp := *sub
	cp.FormData = make(map[string]string, len(sub.FormData))
	for k, v := range sub.FormData {
		cp.FormData[k] = v
	}
	if sub.ResidentID != nil {
		rid := *sub.ResidentID
		cp.ResidentID = &rid
	}
	if sub.ProcessedAt != nil {
		at := *sub.ProcessedAt
		cp.ProcessedAt = &at
	}
	return &cp
}
