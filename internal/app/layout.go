package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/platehub/backoffice/internal/branches"
	"github.com/platehub/backoffice/internal/notifications"
	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/view"
)

// BranchLister supplies the branch filter entries.
type BranchLister interface {
	Options(ctx context.Context, restaurantID int64) ([]branches.Option, error)
}

// LayoutProvider fills the page chrome from the session, the cached banner
// and the branch list.
type LayoutProvider struct {
	Banners  *notifications.BannerStore
	Branches BranchLister
	Logger   *slog.Logger
}

// Layout implements view.LayoutProvider.
func (p *LayoutProvider) Layout(r *http.Request) view.Layout {
	sess := shared.SessionFromContext(r.Context())
	if !sess.Authenticated() {
		return view.Layout{}
	}
	flags := permissions.FromSession(sess)
	layout := view.Layout{
		UserName: sess.Get(shared.SessionKeyDisplayName),
		Role:     flags.Role,
	}
	for _, item := range permissions.VisibleNav(flags) {
		layout.Nav = append(layout.Nav, view.NavItem{Label: item.Label, Path: item.Path})
	}
	if banner := p.Banners.Current(r.Context()); banner != nil {
		layout.Banner = &view.Banner{Message: banner.Message, Level: banner.Level, Link: banner.Link}
	}
	if permissions.ShowBranchFilter(flags) && p.Branches != nil {
		p.branchFilter(r.Context(), sess, &layout)
	}
	return layout
}

func (p *LayoutProvider) branchFilter(ctx context.Context, sess *shared.Session, layout *view.Layout) {
	options, err := p.Branches.Options(ctx, shared.RestaurantID(sess))
	if err != nil {
		// A page without the filter beats a failed page.
		if p.Logger != nil {
			p.Logger.Warn("load branch filter", slog.Any("error", err))
		}
		return
	}
	selected := shared.SelectedBranch(sess)
	layout.ShowBranchFilter = true
	layout.AllBranches = selected == nil
	for _, opt := range options {
		layout.Branches = append(layout.Branches, view.BranchOption{
			ID:       opt.ID,
			Name:     opt.Name,
			Selected: selected != nil && *selected == opt.ID,
		})
	}
}
