// Package permissions derives what the signed in member may see from the
// restaurant configuration flags and the member's role.
package permissions

import "strings"

// Roles known to the dashboard.
const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
	RoleKitchen = "kitchen"
	RoleRider   = "rider"
)

// Flags are the restaurant configuration switches plus the member role.
type Flags struct {
	IsMultiBranch       bool   `json:"is_multi_branch"`
	HasDelivery         bool   `json:"has_delivery"`
	HasInventory        bool   `json:"has_inventory"`
	HasReports          bool   `json:"has_reports"`
	AllowTeamManagement bool   `json:"allow_team_management"`
	OwnerOnlySettings   bool   `json:"owner_only_settings"`
	Role                string `json:"role"`
}

// NavItem is one entry of the dashboard sidebar.
type NavItem struct {
	Label string
	Path  string
}

func (f Flags) role() string {
	return strings.ToLower(strings.TrimSpace(f.Role))
}

func (f Flags) roleIn(roles ...string) bool {
	current := f.role()
	for _, r := range roles {
		if current == r {
			return true
		}
	}
	return false
}

// CanViewOverview gates the stats and charts screen.
func CanViewOverview(f Flags) bool {
	return f.roleIn(RoleOwner, RoleAdmin, RoleManager)
}

// CanManageMenu gates category, food and extras editing.
func CanManageMenu(f Flags) bool {
	return f.roleIn(RoleOwner, RoleAdmin, RoleManager)
}

// CanManageInventory gates stock availability toggles.
func CanManageInventory(f Flags) bool {
	return f.HasInventory && (CanManageMenu(f) || f.roleIn(RoleKitchen))
}

// CanViewTransactions gates the orders table.
func CanViewTransactions(f Flags) bool {
	return f.roleIn(RoleOwner, RoleAdmin, RoleManager, RoleCashier)
}

// CanUpdateOrders gates order status changes.
func CanUpdateOrders(f Flags) bool {
	return CanViewTransactions(f) || f.roleIn(RoleKitchen)
}

// CanViewReports gates the report generator.
func CanViewReports(f Flags) bool {
	return f.HasReports && f.roleIn(RoleOwner, RoleAdmin, RoleManager)
}

// CanManageTeam gates team member administration.
func CanManageTeam(f Flags) bool {
	if f.roleIn(RoleOwner) {
		return true
	}
	return f.AllowTeamManagement && f.roleIn(RoleAdmin)
}

// CanEditSettings gates restaurant and branch settings.
func CanEditSettings(f Flags) bool {
	if f.roleIn(RoleOwner) {
		return true
	}
	return !f.OwnerOnlySettings && f.roleIn(RoleAdmin)
}

// CanViewAudit gates the audit log.
func CanViewAudit(f Flags) bool {
	return f.roleIn(RoleOwner, RoleAdmin)
}

// CanInspectJobs gates the background queue health endpoint.
func CanInspectJobs(f Flags) bool {
	return f.roleIn(RoleOwner, RoleAdmin)
}

// ShowBranchFilter reports whether the branch selector appears.
// Managers and below are pinned to their own branch by the API.
func ShowBranchFilter(f Flags) bool {
	return f.IsMultiBranch && f.roleIn(RoleOwner, RoleAdmin)
}

// ShowRiders reports whether rider columns and assignment appear.
func ShowRiders(f Flags) bool {
	return f.HasDelivery && CanViewTransactions(f)
}

// VisibleNav lists the sidebar entries in display order.
func VisibleNav(f Flags) []NavItem {
	items := make([]NavItem, 0, 8)
	if CanViewOverview(f) {
		items = append(items, NavItem{Label: "Overview", Path: "/"})
	}
	if CanManageMenu(f) || CanManageInventory(f) {
		items = append(items, NavItem{Label: "Inventory", Path: "/inventory"})
	}
	if CanViewTransactions(f) {
		items = append(items, NavItem{Label: "Transactions", Path: "/transactions"})
	}
	if CanViewReports(f) {
		items = append(items, NavItem{Label: "Reports", Path: "/reports"})
	}
	if CanManageTeam(f) {
		items = append(items, NavItem{Label: "Team", Path: "/team"})
	}
	if CanEditSettings(f) {
		items = append(items, NavItem{Label: "Branches", Path: "/branches"})
		items = append(items, NavItem{Label: "Settings", Path: "/settings"})
	}
	if CanViewAudit(f) {
		items = append(items, NavItem{Label: "Audit log", Path: "/audit"})
	}
	items = append(items, NavItem{Label: "Notifications", Path: "/notifications"})
	return items
}

// DefaultLandingPath picks the first screen the member may open.
func DefaultLandingPath(f Flags) string {
	return VisibleNav(f)[0].Path
}
