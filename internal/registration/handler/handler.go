// Package handler exposes the registration endpoints: a public intake route
// for applicants and authenticated routes for office staff.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"barangay/internal/platform/middleware"
	"barangay/internal/registration/models"
	dErrors "barangay/pkg/domain-errors"
	"barangay/pkg/platform/httputil"
)

// Service defines the registration operations the handler depends on.
type Service interface {
	Register(ctx context.Context, req models.NewRequest) (*models.Registration, error)
	List(ctx context.Context, status string) ([]*models.Registration, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Registration, error)
	Approve(ctx context.Context, id uuid.UUID) (*models.Registration, error)
	Reject(ctx context.Context, id uuid.UUID) (*models.Registration, error)
}

type Handler struct {
	registrations Service
	logger        *slog.Logger
	validator     middleware.TokenValidator
}

func New(registrations Service, logger *slog.Logger, validator middleware.TokenValidator) *Handler {
	return &Handler{registrations: registrations, logger: logger, validator: validator}
}

// Register mounts the registration routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/residents/registrations", h.handleRegister)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth(h.validator, h.logger))
		admin.Get("/admin/registrations", h.handleList)
		admin.Get("/admin/registrations/{id}", h.handleGet)
		admin.Post("/admin/registrations/{id}/approve", h.handleApprove)
		admin.Post("/admin/registrations/{id}/reject", h.handleReject)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.NewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	reg, err := h.registrations.Register(r.Context(), req)
	if err != nil {
		h.logError(r.Context(), "failed to accept registration", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, reg)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	regs, err := h.registrations.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.logError(r.Context(), "failed to list registrations", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, regs)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reg, err := h.registrations.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reg, err := h.registrations.Approve(r.Context(), id)
	if err != nil {
		h.logError(r.Context(), "failed to approve registration", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reg, err := h.registrations.Reject(r.Context(), id)
	if err != nil {
		h.logError(r.Context(), "failed to reject registration", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid registration id")
	}
	return id, nil
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"error", err.Error(),
		"request_id", middleware.GetRequestID(ctx),
	)
}
