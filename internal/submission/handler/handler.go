// Package handler exposes the submission endpoints: a public intake route for
// citizens and authenticated routes for office staff.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"barangay/internal/platform/middleware"
	"barangay/internal/submission/models"
	"barangay/internal/submission/service"
	dErrors "barangay/pkg/domain-errors"
	"barangay/pkg/platform/httputil"
)

// Service defines the submission operations the handler depends on.
type Service interface {
	Submit(ctx context.Context, req service.SubmitRequest) (*models.Submission, error)
	List(ctx context.Context, status string) ([]*models.Submission, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	GenerateDocument(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	Reject(ctx context.Context, id uuid.UUID) (*models.Submission, error)
}

type Handler struct {
	submissions Service
	logger      *slog.Logger
	validator   middleware.TokenValidator
}

func New(submissions Service, logger *slog.Logger, validator middleware.TokenValidator) *Handler {
	return &Handler{submissions: submissions, logger: logger, validator: validator}
}

// Register mounts the submission routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/clearance/submissions", h.handleSubmit)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth(h.validator, h.logger))
		admin.Get("/admin/submissions", h.handleList)
		admin.Get("/admin/submissions/{id}", h.handleGet)
		admin.Post("/admin/submissions/{id}/generate", h.handleGenerate)
		admin.Post("/admin/submissions/{id}/reject", h.handleReject)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	sub, err := h.submissions.Submit(ctx, req)
	if err != nil {
		h.logError(ctx, "failed to accept submission", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, sub)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	subs, err := h.submissions.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.logError(r.Context(), "failed to list submissions", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, subs)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sub, err := h.submissions.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sub)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sub, err := h.submissions.GenerateDocument(r.Context(), id)
	if err != nil {
		h.logError(r.Context(), "failed to generate document", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sub)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sub, err := h.submissions.Reject(r.Context(), id)
	if err != nil {
		h.logError(r.Context(), "failed to reject submission", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sub)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid submission id")
	}
	return id, nil
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"error", err.Error(),
		"request_id", middleware.GetRequestID(ctx),
	)
}
