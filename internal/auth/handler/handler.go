// Package handler exposes the staff login and logout endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"barangay/internal/auth/service"
	"barangay/internal/platform/middleware"
	dErrors "barangay/pkg/domain-errors"
	"barangay/pkg/platform/httputil"
)

// Service defines the auth operations the handler depends on.
type Service interface {
	middleware.TokenValidator
	Login(ctx context.Context, username, password string) (*service.LoginResult, error)
	Logout(ctx context.Context) error
}

type Handler struct {
	auth   Service
	logger *slog.Logger
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// Register mounts the auth routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/login", h.handleLogin)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth(h.auth, h.logger))
		admin.Post("/admin/logout", h.handleLogout)
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to log out",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(r.Context()))
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
