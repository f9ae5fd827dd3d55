// Package handler exposes the resident register to office staff.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"barangay/internal/platform/middleware"
	"barangay/internal/resident/models"
	"barangay/internal/resident/store"
	dErrors "barangay/pkg/domain-errors"
	"barangay/pkg/platform/httputil"
	"barangay/pkg/platform/sentinel"
)

// Store defines the resident reads the handler depends on.
type Store interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Resident, error)
	List(ctx context.Context, filter store.Filter) ([]*models.Resident, error)
}

type Handler struct {
	residents Store
	logger    *slog.Logger
	validator middleware.TokenValidator
}

func New(residents Store, logger *slog.Logger, validator middleware.TokenValidator) *Handler {
	return &Handler{residents: residents, logger: logger, validator: validator}
}

// Register mounts the resident routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth(h.validator, h.logger))
		admin.Get("/admin/residents", h.handleList)
		admin.Get("/admin/residents/{id}", h.handleGet)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := store.Filter{Purok: r.URL.Query().Get("purok")}
	residents, err := h.residents.List(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list residents",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(r.Context()))
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list residents"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, residents)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid resident id"))
		return
	}
	resident, err := h.residents.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "resident not found"))
			return
		}
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load resident"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resident)
}
