package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"barangay/internal/resident/models"
	"barangay/pkg/platform/sentinel"
)

type ResidentStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *ResidentStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestResidentStoreSuite(t *testing.T) {
	suite.Run(t, new(ResidentStoreSuite))
}

func (s *ResidentStoreSuite) newResident(first, last, purok string) *models.Resident {
	return &models.Resident{
		ID:        uuid.New(),
		FirstName: first,
		LastName:  last,
		Birthdate: time.Date(1994, time.January, 15, 0, 0, 0, 0, time.UTC),
		Purok:     purok,
		CreatedAt: time.Now(),
	}
}

func (s *ResidentStoreSuite) TestCreateAndFind() {
	s.Run("creates and finds by ID", func() {
		r := s.newResident("Juan", "Dela Cruz", "2")
		s.Require().NoError(s.store.Create(s.ctx, r))

		found, err := s.store.FindByID(s.ctx, r.ID)
		s.Require().NoError(err)
		s.Equal("Juan", found.FirstName)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, uuid.New())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate ID", func() {
		r := s.newResident("Maria", "Reyes", "1")
		s.Require().NoError(s.store.Create(s.ctx, r))
		s.Require().ErrorIs(s.store.Create(s.ctx, r), sentinel.ErrConflict)
	})
}

func (s *ResidentStoreSuite) TestFindByNameAndBirthdate() {
	r := s.newResident("Juan", "Dela Cruz", "2")
	s.Require().NoError(s.store.Create(s.ctx, r))

	s.Run("case-insensitive match on name and date", func() {
		found, err := s.store.FindByNameAndBirthdate(s.ctx, "JUAN", "dela cruz", r.Birthdate)
		s.Require().NoError(err)
		s.Equal(r.ID, found.ID)
	})

	s.Run("time of day is ignored", func() {
		found, err := s.store.FindByNameAndBirthdate(s.ctx, "Juan", "Dela Cruz",
			r.Birthdate.Add(10*time.Hour))
		s.Require().NoError(err)
		s.Equal(r.ID, found.ID)
	})

	s.Run("different birthdate does not match", func() {
		_, err := s.store.FindByNameAndBirthdate(s.ctx, "Juan", "Dela Cruz",
			r.Birthdate.AddDate(1, 0, 0))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *ResidentStoreSuite) TestList() {
	s.Require().NoError(s.store.Create(s.ctx, s.newResident("Juan", "Dela Cruz", "2")))
	s.Require().NoError(s.store.Create(s.ctx, s.newResident("Maria", "Reyes", "1")))
	s.Require().NoError(s.store.Create(s.ctx, s.newResident("Ana", "Dela Cruz", "2")))

	s.Run("sorted by last then first name", func() {
		all, err := s.store.List(s.ctx, Filter{})
		s.Require().NoError(err)
		s.Require().Len(all, 3)
		s.Equal("Ana", all[0].FirstName)
		s.Equal("Juan", all[1].FirstName)
		s.Equal("Reyes", all[2].LastName)
	})

	s.Run("filtered by purok", func() {
		got, err := s.store.List(s.ctx, Filter{Purok: "2"})
		s.Require().NoError(err)
		s.Len(got, 2)
	})
}
