package team_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platehub/backoffice/internal/branches"
	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/team"
	"github.com/platehub/backoffice/internal/testing/webtest"
)

func newRouter(env *webtest.Env) http.Handler {
	h := team.NewHandler(env.Logger, team.NewService(env.API.Client), branches.NewService(env.API.Client, nil), env.Presenter)
	r := chi.NewRouter()
	r.Route("/team", h.MountRoutes)
	return r
}

func memberForm() url.Values {
	return url.Values{
		"first_name": {"Linus"},
		"last_name":  {"Pauling"},
		"email":      {"Linus@Example.com "},
		"role":       {"kitchen"},
		"branch_id":  {"3"},
		"is_active":  {"on"},
	}
}

func TestAddMemberWithInvalidEmailNeverCallsAPI(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{AllowTeamManagement: true, Role: permissions.RoleOwner})

	form := memberForm()
	form.Set("email", "linus-at-example")
	res := env.PostForm(t, newRouter(env), "/team", form)

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Enter a valid email address")
	assert.Empty(t, env.API.CallsTo("POST /team_member"))
}

func TestAddMemberRequiresNamesAndKnownRole(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{AllowTeamManagement: true, Role: permissions.RoleOwner})

	form := memberForm()
	form.Set("first_name", " ")
	form.Set("role", "owner")
	res := env.PostForm(t, newRouter(env), "/team", form)

	require.Equal(t, http.StatusBadRequest, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "First name is required")
	assert.Contains(t, body, "Choose a valid role")
	assert.Empty(t, env.API.CallsTo("POST /team_member"))
}

func TestAddMemberPostsNormalisedForm(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{AllowTeamManagement: true, Role: permissions.RoleOwner})
	env.API.Reply("POST /team_member", http.StatusOK, map[string]any{"id": 8, "first_name": "Linus", "last_name": "Pauling"})

	res := env.PostForm(t, newRouter(env), "/team", memberForm())
	require.Equal(t, http.StatusSeeOther, res.Code)

	var sent team.MemberForm
	env.API.CallsTo("POST /team_member")[0].JSON(t, &sent)
	assert.Equal(t, "linus@example.com", sent.Email)
	assert.Equal(t, "kitchen", sent.Role)
	require.NotNil(t, sent.BranchID)
	assert.EqualValues(t, 3, *sent.BranchID)

	flash := env.Session(t).PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "Linus Pauling was added to the team", flash.Message)
}

func TestListFiltersBySelectedBranch(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{AllowTeamManagement: true, IsMultiBranch: true, Role: permissions.RoleOwner})
	env.WithSession(t, func(sess *shared.Session) {
		id := int64(4)
		shared.SelectBranch(sess, &id)
	})
	env.API.Reply("GET /team_member", http.StatusOK, []map[string]any{{"id": 1, "first_name": "Rosalind", "last_name": "Franklin", "role": "manager"}})

	res := env.Get(t, newRouter(env), "/team")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Rosalind Franklin")
	assert.Equal(t, "4", env.API.CallsTo("GET /team_member")[0].Query.Get("branch_id"))
}

func TestAPIValidationMessageIsShown(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{AllowTeamManagement: true, Role: permissions.RoleOwner})
	env.API.Reply("POST /team_member", http.StatusBadRequest, map[string]any{"code": "ERROR_CODE_INPUT_ERROR", "message": "Email already in use"})

	res := env.PostForm(t, newRouter(env), "/team", memberForm())
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Email already in use")
}
