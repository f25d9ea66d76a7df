package orders_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platehub/backoffice/internal/orders"
	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/testing/webtest"
)

type bumpCounter struct{ n int }

func (b *bumpCounter) Bump(context.Context) (int64, error) {
	b.n++
	return int64(b.n), nil
}

func newRouter(env *webtest.Env, stats orders.Invalidator) http.Handler {
	h := orders.NewHandler(env.Logger, orders.NewService(env.API.Client, stats), env.Presenter)
	h.SetClockForTest(func() time.Time { return time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC) })
	r := chi.NewRouter()
	r.Route("/transactions", h.MountRoutes)
	return r
}

func TestListDefaultsToTodayAndSelectedBranch(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{IsMultiBranch: true, Role: permissions.RoleOwner})
	env.WithSession(t, func(sess *shared.Session) {
		id := int64(2)
		shared.SelectBranch(sess, &id)
	})
	env.API.Reply("GET /orders", http.StatusOK, map[string]any{
		"items":      []map[string]any{{"id": 1, "order_number": "A-1001", "status": "pending", "total": 23.5}},
		"curPage":    1,
		"itemsTotal": 60,
	})

	res := env.Get(t, newRouter(env, nil), "/transactions?status=bogus&page=2")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "A-1001")

	q := env.API.CallsTo("GET /orders")[0].Query
	assert.Equal(t, "2024-03-09", q.Get("from"))
	assert.Equal(t, "2024-03-09", q.Get("to"))
	assert.Equal(t, "2", q.Get("branch_id"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Empty(t, q.Get("status"), "unknown statuses are dropped")
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleCashier})

	res := env.PostForm(t, newRouter(env, nil), "/transactions/5/status", url.Values{"status": {"teleported"}})
	require.Equal(t, http.StatusSeeOther, res.Code)
	assert.Empty(t, env.API.Calls())
	flash := env.Session(t).PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "Choose a valid status", flash.Message)
}

func TestUpdateStatusBumpsOverviewCache(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleKitchen})
	env.API.Reply("PATCH /orders/5/status", http.StatusOK, map[string]any{"id": 5, "status": "ready"})
	stats := &bumpCounter{}

	res := env.PostForm(t, newRouter(env, stats), "/transactions/5/status", url.Values{"status": {"ready"}})
	require.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/transactions/5", res.Header().Get("Location"))
	assert.Equal(t, 1, stats.n)
}

func TestAssignRiderNeedsDeliveryFlag(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleOwner})

	res := env.PostForm(t, newRouter(env, nil), "/transactions/5/rider", url.Values{"rider_id": {"3"}})
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestAssignRiderBumpsOverviewCache(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleManager, HasDelivery: true})
	env.API.Reply("PATCH /orders/5/rider", http.StatusOK, map[string]any{"id": 5, "rider_id": 3})
	stats := &bumpCounter{}

	res := env.PostForm(t, newRouter(env, stats), "/transactions/5/rider", url.Values{"rider_id": {"3"}})
	require.Equal(t, http.StatusSeeOther, res.Code)
	require.Len(t, env.API.CallsTo("PATCH /orders/5/rider"), 1)
	assert.Equal(t, 1, stats.n)
}

func TestDetailListsRidersForDeliveryOrders(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{HasDelivery: true, Role: permissions.RoleManager})
	env.API.Reply("GET /orders/5", http.StatusOK, map[string]any{"id": 5, "order_number": "A-5", "type": "delivery", "branch_id": 2, "status": "ready"})
	env.API.Reply("GET /riders", http.StatusOK, []map[string]any{{"id": 3, "name": "Mo Farah", "is_available": true}})

	res := env.Get(t, newRouter(env, nil), "/transactions/5")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Mo Farah")
	assert.Equal(t, "2", env.API.CallsTo("GET /riders")[0].Query.Get("branch_id"))
}
