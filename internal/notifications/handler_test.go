package notifications_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platehub/backoffice/internal/notifications"
	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/platform/cache"
	"github.com/platehub/backoffice/internal/testing/webtest"
)

func newRouter(env *webtest.Env) (http.Handler, *notifications.BannerStore) {
	svc := notifications.NewService(env.API.Client)
	store := notifications.NewBannerStore(cache.NewVersioned(env.Redis, "notifications", time.Minute), time.Minute, env.Logger)
	h := notifications.NewHandler(env.Logger, svc, store, env.Presenter)
	r := chi.NewRouter()
	r.Route("/notifications", h.MountRoutes)
	r.Get("/api/banner", h.BannerJSON)
	return r, store
}

func TestListShowsNotifications(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleKitchen})
	env.API.Reply("GET /notifications", http.StatusOK, []map[string]any{
		{"id": 1, "title": "Low stock", "message": "Buns are running low", "is_read": false},
	})
	router, _ := newRouter(env)

	res := env.Get(t, router, "/notifications")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Buns are running low")
	assert.Equal(t, "Bearer test-token", env.API.CallsTo("GET /notifications")[0].Header.Get("X-Xano-Authorization"))
}

func TestMarkRead(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleKitchen})
	env.API.Reply("PATCH /notifications/4/read", http.StatusOK, map[string]any{"id": 4, "is_read": true})
	router, _ := newRouter(env)

	res := env.PostForm(t, router, "/notifications/4/read", nil)
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Len(t, env.API.CallsTo("PATCH /notifications/4/read"), 1)
}

func TestMarkAllReadFailureFlashes(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleKitchen})
	env.API.Reply("POST /notifications/read_all", http.StatusInternalServerError, map[string]any{"message": "db down"})
	router, _ := newRouter(env)

	res := env.PostForm(t, router, "/notifications/read-all", nil)
	assert.Equal(t, http.StatusSeeOther, res.Code)
	flash := env.Session(t).PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "danger", flash.Kind)
	assert.NotContains(t, flash.Message, "db down")
}

func TestBannerJSON(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleKitchen})
	router, store := newRouter(env)

	res := env.Get(t, router, "/api/banner")
	assert.Equal(t, http.StatusNoContent, res.Code)

	env.API.Reply("GET /banner", http.StatusOK, map[string]any{"message": "New menu live", "is_active": true})
	require.NoError(t, store.Refresh(context.Background(), notifications.NewService(env.API.Client)))
	res = env.Get(t, router, "/api/banner")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "New menu live")
}

func TestBannerJSONReportsUnreadableCache(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleKitchen})
	router, _ := newRouter(env)
	require.NoError(t, env.Miniredis.Set("notifications:banner", "{broken"))

	res := env.Get(t, router, "/api/banner")
	require.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "application/problem+json", res.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"type":"about:blank","title":"Internal Error","status":500}`, res.Body.String())
}
