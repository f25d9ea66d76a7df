package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/platehub/backoffice/internal/audit"
	"github.com/platehub/backoffice/internal/auth"
	"github.com/platehub/backoffice/internal/branches"
	"github.com/platehub/backoffice/internal/menu"
	"github.com/platehub/backoffice/internal/menu/wizard"
	"github.com/platehub/backoffice/internal/notifications"
	"github.com/platehub/backoffice/internal/observability"
	"github.com/platehub/backoffice/internal/orders"
	"github.com/platehub/backoffice/internal/overview"
	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/reports"
	"github.com/platehub/backoffice/internal/settings"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/team"
	"github.com/platehub/backoffice/jobs"
	"github.com/platehub/backoffice/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Metrics        *observability.Metrics

	AuthHandler          *auth.Handler
	OverviewHandler      *overview.Handler
	MenuHandler          *menu.Handler
	ExtrasHandler        *wizard.Handler
	OrdersHandler        *orders.Handler
	ReportsHandler       *reports.Handler
	TeamHandler          *team.Handler
	BranchesHandler      *branches.Handler
	SettingsHandler      *settings.Handler
	NotificationsHandler *notifications.Handler
	AuditHandler         *audit.Handler
	JobHandler           *jobs.Handler
}

// NewRouter constructs the chi.Router with back office defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(RequireLogin)
		guard := func(check permissions.Check) func(http.Handler) http.Handler {
			return permissions.Guard(params.Logger, check)
		}

		r.Get("/", params.OverviewHandler.Show)

		r.Route("/inventory", func(r chi.Router) {
			r.Use(guard(func(f permissions.Flags) bool {
				return permissions.CanManageMenu(f) || permissions.CanManageInventory(f)
			}))
			params.MenuHandler.MountRoutes(r)
			r.With(guard(permissions.CanManageMenu)).Route("/foods/{id}/extras", params.ExtrasHandler.MountRoutes)
		})

		// Kitchen staff may open orders to move them along without seeing the table in the nav.
		r.With(guard(func(f permissions.Flags) bool {
			return permissions.CanViewTransactions(f) || permissions.CanUpdateOrders(f)
		})).Route("/transactions", params.OrdersHandler.MountRoutes)

		r.With(guard(permissions.CanViewReports)).Route("/reports", params.ReportsHandler.MountRoutes)
		r.With(guard(permissions.CanManageTeam)).Route("/team", params.TeamHandler.MountRoutes)

		r.Route("/branches", func(r chi.Router) {
			// The filter is allowed wherever it is shown, even when settings are owner only.
			r.Post("/select", params.BranchesHandler.Select)
			r.Group(func(r chi.Router) {
				r.Use(guard(permissions.CanEditSettings))
				params.BranchesHandler.MountRoutes(r)
			})
		})
		r.With(guard(permissions.CanEditSettings)).Route("/settings", params.SettingsHandler.MountRoutes)
		r.With(guard(permissions.CanViewAudit)).Route("/audit", params.AuditHandler.MountRoutes)

		r.Route("/notifications", params.NotificationsHandler.MountRoutes)
		r.Get("/api/banner", params.NotificationsHandler.BannerJSON)

		if params.JobHandler != nil {
			r.With(guard(permissions.CanInspectJobs)).Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler lets browsers keep static assets for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
