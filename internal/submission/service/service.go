// Package service orchestrates the clearance submission lifecycle: citizens
// file requests, office staff generate documents or reject them.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"barangay/internal/audit"
	"barangay/internal/clearance/generator"
	"barangay/internal/clearance/policy"
	"barangay/internal/notify"
	"barangay/internal/platform/metrics"
	residentmodels "barangay/internal/resident/models"
	"barangay/internal/submission/models"
	"barangay/internal/submission/store"
	dErrors "barangay/pkg/domain-errors"
	"barangay/pkg/platform/sentinel"
	"barangay/pkg/requestcontext"
)

type SubmissionStore interface {
	Create(ctx context.Context, sub *models.Submission) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	List(ctx context.Context, filter store.Filter) ([]*models.Submission, error)
	Update(ctx context.Context, sub *models.Submission) error
}

type ResidentFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*residentmodels.Resident, error)
}

type DocumentGenerator interface {
	Generate(ctx context.Context, in policy.Input) (generator.Result, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service orchestrates submissions over the store, the document generator and
// the notification channel.
type Service struct {
	submissions SubmissionStore
	residents   ResidentFinder
	generator   DocumentGenerator
	logger      *slog.Logger
	publisher   AuditPublisher
	notifier    notify.Notifier
	metrics     *metrics.Metrics
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
func New(submissions SubmissionStore, residents ResidentFinder, gen DocumentGenerator, opts ...Option) *Service {
	s := &Service{
		submissions: submissions,
		residents:   residents,
		generator:   gen,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitRequest is the citizen-facing payload for filing a clearance request.
type SubmitRequest struct {
	Type       string            `json:"clearance_type"`
	Name       string            `json:"name"`
	FormData   map[string]string `json:"form_data"`
	ResidentID *uuid.UUID        `json:"resident_id,omitempty"`
}

// Submit files a new pending submission.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*models.Submission, error) {
	clearanceType, err := policy.Parse(req.Type)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}

	if req.ResidentID != nil {
		if _, err := s.residents.FindByID(ctx, *req.ResidentID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeValidation, "linked resident not found")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve resident")
		}
	}

	sub, err := models.New(clearanceType, name, req.FormData, req.ResidentID, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store submission")
	}

	if s.metrics != nil {
		s.metrics.SubmissionsReceived.Inc()
	}
	s.emit(ctx, audit.Event{
		Action:  audit.ActionSubmissionReceived,
		Subject: sub.ID.String(),
		Detail:  string(sub.Type),
	})
	return sub, nil
}

// List returns submissions, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]*models.Submission, error) {
	filter := store.Filter{}
	if status != "" {
		switch models.Status(status) {
		case models.StatusPending, models.StatusApproved, models.StatusRejected:
			filter.Status = models.Status(status)
		default:
			return nil, dErrors.Newf(dErrors.CodeValidation, "unknown status %q", status)
		}
	}
	subs, err := s.submissions.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list submissions")
	}
	return subs, nil
}

// Get returns a single submission.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	sub, err := s.submissions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "submission not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load submission")
	}
	return sub, nil
}

// GenerateDocument produces the clearance document for a pending submission
// and marks it approved. Any failure before the status update leaves the
// submission pending so staff can retry; a terminal submission is refused.
func (s *Service) GenerateDocument(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sub.CanProcess(); err != nil {
		return nil, dErrors.New(dErrors.CodeConflict, err.Error())
	}

	var res *residentmodels.Resident
	if sub.ResidentID != nil {
		res, err = s.residents.FindByID(ctx, *sub.ResidentID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load resident")
		}
	}

	result, err := s.generator.Generate(ctx, policy.Input{
		Type:     sub.Type,
		Name:     sub.Name,
		Form:     sub.FormData,
		Resident: res,
		Now:      requestcontext.Now(ctx),
	})
	if err != nil {
		return nil, err
	}

	sub.ApplyApproval(result.DocumentURL, requestcontext.AdminID(ctx), requestcontext.Now(ctx))
	if err := s.submissions.Update(ctx, sub); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update submission")
	}

	s.emit(ctx, audit.Event{
		AdminID: sub.ProcessedBy,
		Action:  audit.ActionDocumentGenerated,
		Subject: sub.ID.String(),
		Detail:  result.DocumentID,
	})
	s.notify(ctx, sub, res,
		fmt.Sprintf("Your %s request is ready for pickup at the barangay hall.", sub.Type.DisplayName()))
	return sub, nil
}

// Reject marks a pending submission rejected.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sub.CanProcess(); err != nil {
		return nil, dErrors.New(dErrors.CodeConflict, err.Error())
	}

	sub.ApplyRejection(requestcontext.AdminID(ctx), requestcontext.Now(ctx))
	if err := s.submissions.Update(ctx, sub); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update submission")
	}

	if s.metrics != nil {
		s.metrics.SubmissionsRejected.Inc()
	}
	s.emit(ctx, audit.Event{
		AdminID: sub.ProcessedBy,
		Action:  audit.ActionSubmissionRejected,
		Subject: sub.ID.String(),
	})
	s.notify(ctx, sub, nil,
		fmt.Sprintf("Your %s request was declined. Please visit the barangay hall for details.", sub.Type.DisplayName()))
	return sub, nil
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

// notify is best-effort: a missing contact or a delivery failure never fails
// the operation.
func (s *Service) notify(ctx context.Context, sub *models.Submission, res *residentmodels.Resident, message string) {
	if s.notifier == nil {
		return
	}
	contact := sub.FormData["contact"]
	if contact == "" && res != nil {
		contact = res.Contact
	}
	if contact == "" {
		return
	}
	if err := s.notifier.Notify(ctx, contact, message); err != nil {
		s.logger.WarnContext(ctx, "failed to notify citizen", "submission_id", sub.ID, "error", err)
	}
}
