// Package service orchestrates the resident registration lifecycle: citizens
// apply, office staff approve into the register or reject.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"barangay/internal/audit"
	"barangay/internal/notify"
	"barangay/internal/platform/metrics"
	"barangay/internal/registration/models"
	"barangay/internal/registration/store"
	residentmodels "barangay/internal/resident/models"
	dErrors "barangay/pkg/domain-errors"
	"barangay/pkg/platform/sentinel"
	"barangay/pkg/requestcontext"
)

type RegistrationStore interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Registration, error)
	List(ctx context.Context, filter store.Filter) ([]*models.Registration, error)
	Update(ctx context.Context, reg *models.Registration) error
}

type ResidentStore interface {
	Create(ctx context.Context, r *residentmodels.Resident) error
	FindByNameAndBirthdate(ctx context.Context, firstName, lastName string, birthdate time.Time) (*residentmodels.Resident, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service orchestrates registrations over the stores and the notification
// channel.
type Service struct {
	registrations RegistrationStore
	residents     ResidentStore
	logger        *slog.Logger
	publisher     AuditPublisher
	notifier      notify.Notifier
	metrics       *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithNotifier(notifier notify.Notifier) Option {
	return func(s *Service) {
		s.notifier = notifier
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(registrations RegistrationStore, residents ResidentStore, opts ...Option) *Service {
	s := &Service{
		registrations: registrations,
		residents:     residents,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register files a new pending registration.
func (s *Service) Register(ctx context.Context, req models.NewRequest) (*models.Registration, error) {
	reg, err := models.New(req, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.registrations.Create(ctx, reg); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store registration")
	}

	s.emit(ctx, audit.Event{
		Action:  audit.ActionRegistrationReceived,
		Subject: reg.ID.String(),
	})
	return reg, nil
}

// List returns registrations, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]*models.Registration, error) {
	filter := store.Filter{}
	if status != "" {
		switch models.Status(status) {
		case models.StatusPending, models.StatusApproved, models.StatusRejected:
			filter.Status = models.Status(status)
		default:
			return nil, dErrors.Newf(dErrors.CodeValidation, "unknown status %q", status)
		}
	}
	regs, err := s.registrations.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
	}
	return regs, nil
}

// Get returns a single registration.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	reg, err := s.registrations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "registration not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registration")
	}
	return reg, nil
}

// Approve adds the applicant to the resident register and marks the
// registration approved. An existing resident with the same name and
// birthdate blocks the approval.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	reg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := reg.CanProcess(); err != nil {
		return nil, dErrors.New(dErrors.CodeConflict, err.Error())
	}

	_, err = s.residents.FindByNameAndBirthdate(ctx, reg.FirstName, reg.LastName, reg.Birthdate)
	if err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "a resident with the same name and birthdate already exists")
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check for existing resident")
	}

	now := requestcontext.Now(ctx)
	resident := reg.ToResident(now)
	if err := s.residents.Create(ctx, resident); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create resident")
	}

	reg.ApplyApproval(requestcontext.AdminID(ctx), now)
	if err := s.registrations.Update(ctx, reg); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update registration")
	}

	if s.metrics != nil {
		s.metrics.RegistrationsApproved.Inc()
	}
	s.emit(ctx, audit.Event{
		AdminID: reg.ProcessedBy,
		Action:  audit.ActionRegistrationApproved,
		Subject: reg.ID.String(),
		Detail:  resident.ID.String(),
	})
	s.notify(ctx, reg, "Your resident registration was approved. You are now in the barangay register.")
	return reg, nil
}

// Reject marks a pending registration rejected.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	reg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := reg.CanProcess(); err != nil {
		return nil, dErrors.New(dErrors.CodeConflict, err.Error())
	}

	reg.ApplyRejection(requestcontext.AdminID(ctx), requestcontext.Now(ctx))
	if err := s.registrations.Update(ctx, reg); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update registration")
	}

	s.emit(ctx, audit.Event{
		AdminID: reg.ProcessedBy,
		Action:  audit.ActionRegistrationRejected,
		Subject: reg.ID.String(),
	})
	s.notify(ctx, reg, "Your resident registration was declined. Please visit the barangay hall for details.")
	return reg, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if event.AdminID == "" {
		event.AdminID = requestcontext.AdminID(ctx)
	}
	s.logger.InfoContext(ctx, event.Action,
		"subject", event.Subject, "detail", event.Detail, "log_type", "audit")
	if s.publisher != nil {
		s.publisher.Emit(ctx, event)
	}
}

func (s *Service) notify(ctx context.Context, reg *models.Registration, message string) {
	if s.notifier == nil || reg.Contact == "" {
		return
	}
	if err := s.notifier.Notify(ctx, reg.Contact, message); err != nil {
		s.logger.WarnContext(ctx, "failed to notify applicant", "registration_id", reg.ID, "error", err)
	}
}
