// Package store persists staff accounts and sessions.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"barangay/internal/auth/models"
	"barangay/pkg/platform/sentinel"
)

// InMemoryAdmins is the account store. Accounts are seeded at startup from
// configuration; there is no self-service signup.
type InMemoryAdmins struct {
	mu     sync.RWMutex
	admins map[string]*models.Admin // keyed by lowercased username
}

func NewInMemoryAdmins() *InMemoryAdmins {
	return &InMemoryAdmins{admins: make(map[string]*models.Admin)}
}

func (s *InMemoryAdmins) Seed(admins ...*models.Admin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range admins {
		cp := *a
		s.admins[strings.ToLower(a.Username)] = &cp
	}
}

func (s *InMemoryAdmins) FindByUsername(_ context.Context, username string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.admins[strings.ToLower(username)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *InMemoryAdmins) FindByID(_ context.Context, id uuid.UUID) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.admins {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// InMemorySessions keeps sessions in a map. Expiry is enforced on read.
type InMemorySessions struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

func NewInMemorySessions() *InMemorySessions {
	return &InMemorySessions{sessions: make(map[uuid.UUID]*models.Session)}
}

func (s *InMemorySessions) Save(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

func (s *InMemorySessions) Find(_ context.Context, id uuid.UUID) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *session
	return &cp, nil
}

func (s *InMemorySessions) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
