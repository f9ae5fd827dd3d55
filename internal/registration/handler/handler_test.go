package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangay/internal/platform/middleware"
	"barangay/internal/registration/models"
	"barangay/internal/registration/service"
	"barangay/internal/registration/store"
	residentstore "barangay/internal/resident/store"
	"barangay/pkg/testutil"
)

type staticValidator struct{}

func (staticValidator) ValidateToken(string) (*middleware.TokenClaims, error) {
	return &middleware.TokenClaims{AdminID: "admin-1"}, nil
}

func newRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(store.NewInMemory(), residentstore.NewInMemory(), service.WithLogger(logger))
	r := chi.NewRouter()
	New(svc, logger, staticValidator{}).Register(r)
	return r
}

func authorized(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer token")
	return req
}

func registrationBody() map[string]any {
	return map[string]any{
		"first_name": "Juan",
		"last_name":  "Dela Cruz",
		"birthdate":  time.Date(1994, time.January, 15, 0, 0, 0, 0, time.UTC),
		"purok":      "2",
		"contact":    "09171234567",
	}
}

func TestRegistrationFlow(t *testing.T) {
	r := newRouter()

	rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodPost, "/residents/registrations", registrationBody()))
	require.Equal(t, http.StatusCreated, rr.Code)
	reg := testutil.UnmarshalResponse[models.Registration](t, rr)
	assert.Equal(t, models.StatusPending, reg.Status)

	rr = testutil.DoRequest(r, authorized(testutil.NewRequest(t, http.MethodGet, "/admin/registrations?status=pending")))
	require.Equal(t, http.StatusOK, rr.Code)
	regs := testutil.UnmarshalResponse[[]*models.Registration](t, rr)
	require.Len(t, *regs, 1)

	rr = testutil.DoRequest(r, authorized(testutil.NewRequest(t, http.MethodPost, "/admin/registrations/"+reg.ID.String()+"/approve")))
	require.Equal(t, http.StatusOK, rr.Code)
	approved := testutil.UnmarshalResponse[models.Registration](t, rr)
	assert.Equal(t, models.StatusApproved, approved.Status)
	assert.Equal(t, "admin-1", approved.ProcessedBy)

	// approving twice conflicts
	rr = testutil.DoRequest(r, authorized(testutil.NewRequest(t, http.MethodPost, "/admin/registrations/"+reg.ID.String()+"/approve")))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRegistrationValidation(t *testing.T) {
	r := newRouter()

	t.Run("malformed body", func(t *testing.T) {
		rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodPost, "/residents/registrations"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing names", func(t *testing.T) {
		body := registrationBody()
		body["last_name"] = ""
		rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodPost, "/residents/registrations", body))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRegistrationAdminRoutesRequireAuth(t *testing.T) {
	r := newRouter()
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/registrations"},
		{http.MethodGet, "/admin/registrations/" + uuid.NewString()},
		{http.MethodPost, "/admin/registrations/" + uuid.NewString() + "/approve"},
		{http.MethodPost, "/admin/registrations/" + uuid.NewString() + "/reject"},
	}
	for _, p := range paths {
		rr := testutil.DoRequest(r, testutil.NewRequest(t, p.method, p.path))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", p.method, p.path)
	}
}

func TestRejectRegistration(t *testing.T) {
	r := newRouter()

	rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodPost, "/residents/registrations", registrationBody()))
	require.Equal(t, http.StatusCreated, rr.Code)
	reg := testutil.UnmarshalResponse[models.Registration](t, rr)

	rr = testutil.DoRequest(r, authorized(testutil.NewRequest(t, http.MethodPost, "/admin/registrations/"+reg.ID.String()+"/reject")))
	require.Equal(t, http.StatusOK, rr.Code)
	rejected := testutil.UnmarshalResponse[models.Registration](t, rr)
	assert.Equal(t, models.StatusRejected, rejected.Status)
}
