package permissions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platehub/backoffice/internal/shared"
)

func TestReportsNeedFlagAndRole(t *testing.T) {
	assert.False(t, CanViewReports(Flags{Role: RoleOwner}))
	assert.True(t, CanViewReports(Flags{Role: RoleOwner, HasReports: true}))
	assert.False(t, CanViewReports(Flags{Role: RoleCashier, HasReports: true}))
}

func TestTeamManagement(t *testing.T) {
	assert.True(t, CanManageTeam(Flags{Role: RoleOwner}))
	assert.False(t, CanManageTeam(Flags{Role: RoleAdmin}))
	assert.True(t, CanManageTeam(Flags{Role: RoleAdmin, AllowTeamManagement: true}))
	assert.False(t, CanManageTeam(Flags{Role: RoleManager, AllowTeamManagement: true}))
}

func TestSettingsOwnerOnly(t *testing.T) {
	assert.True(t, CanEditSettings(Flags{Role: "Admin"}))
	assert.False(t, CanEditSettings(Flags{Role: RoleAdmin, OwnerOnlySettings: true}))
	assert.True(t, CanEditSettings(Flags{Role: RoleOwner, OwnerOnlySettings: true}))
}

func TestBranchFilterAndRiders(t *testing.T) {
	assert.False(t, ShowBranchFilter(Flags{Role: RoleOwner}))
	assert.True(t, ShowBranchFilter(Flags{Role: RoleOwner, IsMultiBranch: true}))
	assert.False(t, ShowBranchFilter(Flags{Role: RoleManager, IsMultiBranch: true}))

	assert.True(t, ShowRiders(Flags{Role: RoleCashier, HasDelivery: true}))
	assert.False(t, ShowRiders(Flags{Role: RoleKitchen, HasDelivery: true}))
}

func TestInventoryToggle(t *testing.T) {
	assert.False(t, CanManageInventory(Flags{Role: RoleManager}))
	assert.True(t, CanManageInventory(Flags{Role: RoleKitchen, HasInventory: true}))
}

func TestJobsHealthIsForOwnersAndAdmins(t *testing.T) {
	assert.True(t, CanInspectJobs(Flags{Role: RoleOwner}))
	assert.True(t, CanInspectJobs(Flags{Role: RoleAdmin}))
	assert.False(t, CanInspectJobs(Flags{Role: RoleManager}))
	assert.False(t, CanInspectJobs(Flags{}))
}

func TestVisibleNavAndLanding(t *testing.T) {
	owner := Flags{Role: RoleOwner, HasReports: true}
	nav := VisibleNav(owner)
	require.NotEmpty(t, nav)
	assert.Equal(t, "/", nav[0].Path)
	assert.Equal(t, "/", DefaultLandingPath(owner))

	assert.Equal(t, "/transactions", DefaultLandingPath(Flags{Role: RoleCashier}))
	assert.Equal(t, "/notifications", DefaultLandingPath(Flags{}))
}

func TestGuardUsesSessionFlags(t *testing.T) {
	sess := &shared.Session{ID: "s1"}
	Store(sess, Flags{Role: RoleCashier})

	handler := Guard(nil, CanViewReports)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	Store(sess, Flags{Role: RoleOwner, HasReports: true})
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestFromSessionToleratesGarbage(t *testing.T) {
	sess := &shared.Session{ID: "s1"}
	sess.Set(SessionKey, "{not json")
	assert.Equal(t, Flags{}, FromSession(sess))
	assert.Equal(t, Flags{}, FromSession(nil))
}
