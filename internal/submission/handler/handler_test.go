package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangay/internal/clearance/policy"
	"barangay/internal/platform/middleware"
	"barangay/internal/submission/models"
	"barangay/internal/submission/service"
	dErrors "barangay/pkg/domain-errors"
	"barangay/pkg/testutil"
)

type fakeService struct {
	submission *models.Submission
	list       []*models.Submission
	err        error

	lastStatus string
	generated  []uuid.UUID
	rejected   []uuid.UUID
}

func (f *fakeService) Submit(_ context.Context, _ service.SubmitRequest) (*models.Submission, error) {
	return f.submission, f.err
}

func (f *fakeService) List(_ context.Context, status string) ([]*models.Submission, error) {
	f.lastStatus = status
	return f.list, f.err
}

func (f *fakeService) Get(_ context.Context, _ uuid.UUID) (*models.Submission, error) {
	return f.submission, f.err
}

func (f *fakeService) GenerateDocument(_ context.Context, id uuid.UUID) (*models.Submission, error) {
	f.generated = append(f.generated, id)
	return f.submission, f.err
}

func (f *fakeService) Reject(_ context.Context, id uuid.UUID) (*models.Submission, error) {
	f.rejected = append(f.rejected, id)
	return f.submission, f.err
}

type staticValidator struct {
	claims *middleware.TokenClaims
	err    error
}

func (v *staticValidator) ValidateToken(string) (*middleware.TokenClaims, error) {
	return v.claims, v.err
}

func newRouter(svc *fakeService, validator middleware.TokenValidator) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	New(svc, logger, validator).Register(r)
	return r
}

func pendingSubmission(t *testing.T) *models.Submission {
	t.Helper()
	sub, err := models.New(policy.TypeBarangay, "Juan Dela Cruz",
		map[string]string{"purpose": "employment"}, nil, time.Now())
	require.NoError(t, err)
	return sub
}

func authorized(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer token")
	return req
}

func TestHandleSubmit(t *testing.T) {
	t.Run("accepts a valid submission", func(t *testing.T) {
		svc := &fakeService{submission: pendingSubmission(t)}
		r := newRouter(svc, &staticValidator{claims: &middleware.TokenClaims{AdminID: "admin-1"}})

		req := testutil.NewJSONRequest(t, http.MethodPost, "/clearance/submissions", map[string]any{
			"clearance_type": "barangay",
			"name":           "Juan Dela Cruz",
		})
		rr := testutil.DoRequest(r, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		got := testutil.UnmarshalResponse[models.Submission](t, rr)
		assert.Equal(t, models.StatusPending, got.Status)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		svc := &fakeService{}
		r := newRouter(svc, &staticValidator{})

		req := testutil.NewRequest(t, http.MethodPost, "/clearance/submissions")
		rr := testutil.DoRequest(r, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("maps validation errors", func(t *testing.T) {
		svc := &fakeService{err: dErrors.New(dErrors.CodeValidation, "unknown clearance type")}
		r := newRouter(svc, &staticValidator{})

		req := testutil.NewJSONRequest(t, http.MethodPost, "/clearance/submissions", map[string]any{
			"clearance_type": "passport",
			"name":           "Juan Dela Cruz",
		})
		rr := testutil.DoRequest(r, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	svc := &fakeService{submission: pendingSubmission(t)}
	r := newRouter(svc, &staticValidator{claims: &middleware.TokenClaims{AdminID: "admin-1"}})
	expired := newRouter(svc, &staticValidator{err: errors.New("expired")})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/submissions"},
		{http.MethodGet, "/admin/submissions/" + uuid.NewString()},
		{http.MethodPost, "/admin/submissions/" + uuid.NewString() + "/generate"},
		{http.MethodPost, "/admin/submissions/" + uuid.NewString() + "/reject"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rr := testutil.DoRequest(r, testutil.NewRequest(t, p.method, p.path))
			assert.Equal(t, http.StatusUnauthorized, rr.Code, "missing token")

			rr = testutil.DoRequest(expired, authorized(testutil.NewRequest(t, p.method, p.path)))
			assert.Equal(t, http.StatusUnauthorized, rr.Code, "invalid token")

			rr = testutil.DoRequest(r, authorized(testutil.NewRequest(t, p.method, p.path)))
			assert.NotEqual(t, http.StatusUnauthorized, rr.Code, "valid token")
		})
	}
}

func TestHandleList(t *testing.T) {
	svc := &fakeService{list: []*models.Submission{pendingSubmission(t)}}
	r := newRouter(svc, &staticValidator{claims: &middleware.TokenClaims{AdminID: "admin-1"}})

	req := authorized(testutil.NewRequest(t, http.MethodGet, "/admin/submissions?status=pending"))
	rr := testutil.DoRequest(r, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pending", svc.lastStatus)
	got := testutil.UnmarshalResponse[[]*models.Submission](t, rr)
	assert.Len(t, *got, 1)
}

func TestHandleGenerate(t *testing.T) {
	t.Run("returns the approved submission", func(t *testing.T) {
		sub := pendingSubmission(t)
		sub.ApplyApproval("https://docs.test/doc-1", "admin-1", time.Now())
		svc := &fakeService{submission: sub}
		r := newRouter(svc, &staticValidator{claims: &middleware.TokenClaims{AdminID: "admin-1"}})

		req := authorized(testutil.NewRequest(t, http.MethodPost, "/admin/submissions/"+sub.ID.String()+"/generate"))
		rr := testutil.DoRequest(r, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, svc.generated, 1)
		assert.Equal(t, sub.ID, svc.generated[0])
		got := testutil.UnmarshalResponse[models.Submission](t, rr)
		assert.Equal(t, "https://docs.test/doc-1", got.DocumentURL)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := &fakeService{}
		r := newRouter(svc, &staticValidator{claims: &middleware.TokenClaims{AdminID: "admin-1"}})

		req := authorized(testutil.NewRequest(t, http.MethodPost, "/admin/submissions/not-a-uuid/generate"))
		rr := testutil.DoRequest(r, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("terminal submission maps to conflict", func(t *testing.T) {
		svc := &fakeService{err: dErrors.New(dErrors.CodeConflict, "submission is already approved")}
		r := newRouter(svc, &staticValidator{claims: &middleware.TokenClaims{AdminID: "admin-1"}})

		req := authorized(testutil.NewRequest(t, http.MethodPost, "/admin/submissions/"+uuid.NewString()+"/generate"))
		rr := testutil.DoRequest(r, req)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestHandleReject(t *testing.T) {
	sub := pendingSubmission(t)
	sub.ApplyRejection("admin-1", time.Now())
	svc := &fakeService{submission: sub}
	r := newRouter(svc, &staticValidator{claims: &middleware.TokenClaims{AdminID: "admin-1"}})

	req := authorized(testutil.NewRequest(t, http.MethodPost, "/admin/submissions/"+sub.ID.String()+"/reject"))
	rr := testutil.DoRequest(r, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, svc.rejected, 1)
	got := testutil.UnmarshalResponse[models.Submission](t, rr)
	assert.Equal(t, models.StatusRejected, got.Status)
}
