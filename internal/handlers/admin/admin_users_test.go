package adminhandlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-dashboard/internal/carousel"
	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/handlers"
	"inventory-dashboard/internal/middleware"
	"inventory-dashboard/internal/models"
)

func newTestApp(t *testing.T) (*handlers.AppHandlers, *scs.SessionManager) {
	t.Helper()
	cfg := &config.Config{
		SiteName:      "Inventory Dashboard",
		CompanyName:   "Acme Corp",
		TemplatesPath: "../../../templates",
	}
	reg, err := carousel.NewRegistry(carousel.DefaultItems(), carousel.RegistryConfig{Clock: clockwork.NewFakeClock()})
	require.NoError(t, err)
	t.Cleanup(reg.Close)

	sm := scs.New()
	app, err := handlers.NewAppHandlers(cfg, sm, reg, func(context.Context) ([]models.Product, error) { return nil, nil })
	require.NoError(t, err)
	return app, sm
}

func stubListUsers(t *testing.T, fn func(limit, offset int) ([]*models.User, int, error)) {
	t.Helper()
	prev := listUsers
	listUsers = fn
	t.Cleanup(func() { listUsers = prev })
}

func adminRequest(target string) *http.Request {
	role := models.RoleAdmin
	req := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, &models.User{ID: 1, Email: "admin@example.com", RoleName: &role})
	return req.WithContext(ctx)
}

func TestUsersListPagination(t *testing.T) {
	app, sm := newTestApp(t)

	var gotLimit, gotOffset int
	stubListUsers(t, func(limit, offset int) ([]*models.User, int, error) {
		gotLimit, gotOffset = limit, offset
		return []*models.User{
			{ID: 11, Email: "one@example.com", CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
			{ID: 12, Email: "two@example.com", CreatedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)},
		}, 25, nil
	})

	rr := httptest.NewRecorder()
	sm.LoadAndSave(UsersListPageHandler(app)).ServeHTTP(rr, adminRequest("/users?page=2"))
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, DefaultUsersPerPage, gotLimit)
	assert.Equal(t, DefaultUsersPerPage, gotOffset)
	body := rr.Body.String()
	assert.Equal(t, 2, strings.Count(body, `class="user-row"`))
	assert.Contains(t, body, "one@example.com")
	assert.Contains(t, body, `href="/users?page=3"`)
}

func TestUsersListFailure(t *testing.T) {
	app, sm := newTestApp(t)
	stubListUsers(t, func(int, int) ([]*models.User, int, error) { return nil, 0, errors.New("db down") })

	rr := httptest.NewRecorder()
	sm.LoadAndSave(UsersListPageHandler(app)).ServeHTTP(rr, adminRequest("/users"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
