package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangay/pkg/testutil"
)

type pingHandler struct{}

func (pingHandler) Register(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newTestRouter(health map[string]HealthChecker) http.Handler {
	return NewRouter(Config{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Handlers: []Registrar{pingHandler{}},
		Health:   health,
	})
}

func TestRouterMountsHandlers(t *testing.T) {
	r := newTestRouter(nil)
	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/ping"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(nil)
	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		r := newTestRouter(map[string]HealthChecker{
			"postgres": func(context.Context) error { return nil },
		})
		rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/readyz"))
		require.Equal(t, http.StatusOK, rr.Code)
		got := testutil.UnmarshalResponse[map[string]any](t, rr)
		assert.Equal(t, "ok", (*got)["status"])
	})

	t.Run("degraded when a dependency fails", func(t *testing.T) {
		r := newTestRouter(map[string]HealthChecker{
			"redis": func(context.Context) error { return errors.New("connection refused") },
		})
		rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/readyz"))
		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		got := testutil.UnmarshalResponse[map[string]any](t, rr)
		assert.Equal(t, "degraded", (*got)["status"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(nil)
	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	assert.Equal(t, http.StatusOK, rr.Code)
}
