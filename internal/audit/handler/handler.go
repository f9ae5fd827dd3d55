// Package handler exposes the audit trail to office staff.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"barangay/internal/audit"
	"barangay/internal/platform/middleware"
	dErrors "barangay/pkg/domain-errors"
	"barangay/pkg/platform/httputil"
)

type Handler struct {
	events    audit.Store
	logger    *slog.Logger
	validator middleware.TokenValidator
}

func New(events audit.Store, logger *slog.Logger, validator middleware.TokenValidator) *Handler {
	return &Handler{events: events, logger: logger, validator: validator}
}

// Register mounts the audit routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth(h.validator, h.logger))
		admin.Get("/admin/audit", h.handleList)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := audit.Filter{
		AdminID: q.Get("admin_id"),
		Action:  q.Get("action"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		filter.Limit = limit
	}

	events, err := h.events.List(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list audit events",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, events)
}
