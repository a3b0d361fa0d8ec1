package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/aeropizza/backend/internal/admin"
)

type mockAdminService struct {
	verifyTokenFunc func(token string) (uuid.UUID, error)
}

func (m *mockAdminService) Authenticate(ctx context.Context, email, password string) (string, *admin.Admin, error) {
	panic("not used")
}

func (m *mockAdminService) VerifyToken(token string) (uuid.UUID, error) {
	return m.verifyTokenFunc(token)
}

func (m *mockAdminService) Create(ctx context.Context, a *admin.Admin, password string) (*admin.Admin, error) {
	panic("not used")
}

func (m *mockAdminService) Update(ctx context.Context, a *admin.Admin, newPassword string) (*admin.Admin, error) {
	panic("not used")
}

func (m *mockAdminService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("not used")
}

func (m *mockAdminService) List(ctx context.Context) ([]admin.Admin, error) {
	panic("not used")
}

func (m *mockAdminService) Seed(ctx context.Context, seeds []admin.Seed) error {
	panic("not used")
}

func TestAdminAuth(t *testing.T) {
	adminID := uuid.Must(uuid.NewV4())
	svc := &mockAdminService{
		verifyTokenFunc: func(token string) (uuid.UUID, error) {
			if token == "good-token" {
				return adminID, nil
			}
			return uuid.Nil, admin.ErrInvalidToken
		},
	}

	var seenAdminID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAdminID = r.Header.Get("X-Admin-ID")
		w.WriteHeader(http.StatusOK)
	})
	protected := AdminAuth(svc)(next)

	t.Run("missing header", func(t *testing.T) {
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, adminID.String(), seenAdminID)
	})
}
