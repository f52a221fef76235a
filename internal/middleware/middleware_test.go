package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-dashboard/internal/models"
)

func stubLoadUser(t *testing.T, users map[int64]*models.User) {
	t.Helper()
	prev := LoadUser
	LoadUser = func(id int64) (*models.User, error) {
		if u, ok := users[id]; ok {
			return u, nil
		}
		return nil, sql.ErrNoRows
	}
	t.Cleanup(func() { LoadUser = prev })
}

// withSessionUser loads a session and stores userID in it before next runs.
func withSessionUser(sm *scs.SessionManager, userID int64, next http.Handler) http.Handler {
	return sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != 0 {
			sm.Put(r.Context(), string(UserIDContextKey), userID)
		}
		next.ServeHTTP(w, r)
	}))
}

func roleName(s string) *string { return &s }

func TestRequireAuthentication(t *testing.T) {
	sm := scs.New()
	admin := &models.User{ID: 7, Email: "a@example.com", RoleName: roleName(models.RoleAdmin)}
	stubLoadUser(t, map[int64]*models.User{7: admin})

	var seen *models.User
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		rr := httptest.NewRecorder()
		withSessionUser(sm, 0, RequireAuthentication(sm)(final)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})

	t.Run("unknown user is redirected", func(t *testing.T) {
		rr := httptest.NewRecorder()
		withSessionUser(sm, 99, RequireAuthentication(sm)(final)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Contains(t, rr.Header().Get("Location"), "session_invalid")
	})

	t.Run("known user reaches handler", func(t *testing.T) {
		seen = nil
		rr := httptest.NewRecorder()
		withSessionUser(sm, 7, RequireAuthentication(sm)(final)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Same(t, admin, seen)
	})
}

func TestInjectUserData(t *testing.T) {
	sm := scs.New()
	user := &models.User{ID: 3, Email: "u@example.com"}
	stubLoadUser(t, map[int64]*models.User{3: user})

	var authenticated bool
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authenticated, _ = r.Context().Value(IsAuthenticatedContextKey).(bool)
	})

	withSessionUser(sm, 0, InjectUserData(sm)(final)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, authenticated)

	withSessionUser(sm, 3, InjectUserData(sm)(final)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, authenticated)
}

func TestRequireRole(t *testing.T) {
	sm := scs.New()
	stubLoadUser(t, map[int64]*models.User{
		1: {ID: 1, RoleName: roleName(models.RoleAdmin)},
		2: {ID: 2, RoleName: roleName(models.RoleUser)},
		3: {ID: 3},
	})
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	chain := func(id int64) http.Handler {
		return withSessionUser(sm, id, RequireAuthentication(sm)(RequireRole(models.RoleAdmin)(ok)))
	}

	tests := []struct {
		name string
		id   int64
		want int
	}{
		{"admin allowed", 1, http.StatusOK},
		{"user forbidden", 2, http.StatusForbidden},
		{"no role forbidden", 3, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			chain(tt.id).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users", nil))
			assert.Equal(t, tt.want, rr.Code)
		})
	}

	rr := httptest.NewRecorder()
	RequireRole(models.RoleAdmin)(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(1, 2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another client has its own bucket
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, 0, l.Cleanup(time.Hour))
	assert.Equal(t, 2, l.Cleanup(-time.Second))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", ClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", ClientIP(req))
}

func TestRequestID(t *testing.T) {
	var fromCtx string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = RequestIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rr.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, fromCtx)

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, incoming, rr.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.NotEqual(t, "not-a-uuid", rr.Header().Get(RequestIDHeader))
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestNoSurfMiddlewareRejectsPostWithoutToken(t *testing.T) {
	h := NoSurfMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), false)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/dashboard/carousel/next", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
