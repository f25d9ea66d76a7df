package wizard_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platehub/backoffice/internal/menu"
	"github.com/platehub/backoffice/internal/menu/wizard"
	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/testing/webtest"
)

func newRouter(env *webtest.Env) http.Handler {
	h := wizard.NewHandler(env.Logger, menu.NewService(env.API.Client), env.Presenter)
	r := chi.NewRouter()
	r.Route("/inventory/foods/{id}/extras", h.MountRoutes)
	return r
}

func press(t *testing.T, env *webtest.Env, router http.Handler, action string, fields url.Values) int {
	t.Helper()
	form := url.Values{"action": {action}}
	for k, v := range fields {
		form[k] = v
	}
	return env.PostForm(t, router, "/inventory/foods/10/extras", form).Code
}

func TestWizardFlowSavesOnlyAtTheEnd(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleManager})
	env.API.Reply("GET /food/10", http.StatusOK, map[string]any{"id": 10, "name": "Smash Burger"})
	env.API.Reply("GET /food/10/extras_group", http.StatusOK, []map[string]any{})
	env.API.Reply("POST /food/10/extras_group", http.StatusOK, []map[string]any{{"id": 1, "name": "Sauces"}})
	router := newRouter(env)

	assert.Equal(t, http.StatusBadRequest, press(t, env, router, "next", nil), "no groups yet")
	assert.Equal(t, http.StatusBadRequest, press(t, env, router, "save", nil), "save refused without groups")

	require.Equal(t, http.StatusSeeOther, press(t, env, router, "add_group", nil))
	require.Equal(t, http.StatusSeeOther, press(t, env, router, "next", url.Values{
		"groups.0.name": {"Sauces"}, "groups.0.min": {"0"}, "groups.0.max": {"2"},
	}))
	require.Equal(t, http.StatusSeeOther, press(t, env, router, "add_extra:0", nil))
	assert.Equal(t, http.StatusBadRequest, press(t, env, router, "next", nil), "extra without a name")
	require.Equal(t, http.StatusSeeOther, press(t, env, router, "next", url.Values{
		"groups.0.extras.0.name": {"Aioli"}, "groups.0.extras.0.price": {"0.80"},
	}))

	draft := wizard.Load(env.Session(t), 10)
	require.Equal(t, wizard.StepReview, draft.Step)
	assert.Empty(t, env.API.CallsTo("POST /food/10/extras_group"))

	res := env.Get(t, router, "/inventory/foods/10/extras")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Aioli")

	require.Equal(t, http.StatusSeeOther, press(t, env, router, "save", nil))
	calls := env.API.CallsTo("POST /food/10/extras_group")
	require.Len(t, calls, 1)
	var sent struct {
		Groups []menu.ExtrasGroup `json:"groups"`
	}
	calls[0].JSON(t, &sent)
	require.Len(t, sent.Groups, 1)
	assert.Equal(t, "Sauces", sent.Groups[0].Name)
	assert.Equal(t, 2, sent.Groups[0].Max)
	assert.InDelta(t, 0.8, sent.Groups[0].Extras[0].Price, 0.0001)

	assert.Empty(t, env.Session(t).Get(wizard.SessionKey))
}

func TestWizardUnknownAction(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleManager})
	assert.Equal(t, http.StatusBadRequest, press(t, env, newRouter(env), "explode", nil))
}
