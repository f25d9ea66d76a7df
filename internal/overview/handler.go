package overview

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/platehub/backoffice/internal/orders"
	"github.com/platehub/backoffice/internal/overview/chart"
	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/view"
)

// RecentLimit is the number of orders listed under the charts.
const RecentLimit = 8

// RecentOrders loads the newest orders.
type RecentOrders interface {
	Recent(ctx context.Context, branch *int64, limit int) ([]orders.Order, error)
}

// Handler renders the overview page.
type Handler struct {
	logger  *slog.Logger
	service *Service
	orders  RecentOrders
	view    *view.Presenter
	now     func() time.Time
}

// NewHandler constructs the overview handler.
func NewHandler(logger *slog.Logger, service *Service, recent RecentOrders, presenter *view.Presenter) *Handler {
	return &Handler{logger: logger, service: service, orders: recent, view: presenter, now: time.Now}
}

type pageData struct {
	Stats        *Stats
	Range        shared.DateRange
	Recent       []orders.Order
	RevenueChart template.HTML
	OrdersChart  template.HTML
	Errors       shared.FieldErrors
}

// Show renders the dashboard. Members without overview access are sent to
// the first screen they may open.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	flags := permissions.FromRequest(r)
	if !permissions.CanViewOverview(flags) {
		http.Redirect(w, r, permissions.DefaultLandingPath(flags), http.StatusSeeOther)
		return
	}

	dateRange, rangeErr := shared.ParseDateRange(r.URL.Query(), h.now())
	if r.URL.Query().Get("from") == "" && r.URL.Query().Get("to") == "" {
		dateRange.From = dateRange.To.AddDate(0, 0, -6)
	}
	sess := shared.SessionFromContext(r.Context())
	branch := shared.SelectedBranch(sess)
	filter := Filter{RestaurantID: shared.RestaurantID(sess), BranchID: branch, Range: dateRange}

	data := pageData{Range: dateRange}
	if rangeErr != nil {
		data.Errors = shared.FormErrors(rangeErr)
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		stats, err := h.service.Stats(ctx, filter)
		data.Stats = stats
		return err
	})
	g.Go(func() error {
		recent, err := h.orders.Recent(ctx, branch, RecentLimit)
		data.Recent = recent
		return err
	})
	if err := g.Wait(); err != nil {
		h.view.Fail(w, r, "load overview", err)
		return
	}

	data.RevenueChart, data.OrdersChart = h.charts(data.Stats)
	h.view.Render(w, r, "pages/overview.html", "Overview", data, http.StatusOK)
}

func (h *Handler) charts(stats *Stats) (template.HTML, template.HTML) {
	if stats == nil || len(stats.Daily) == 0 {
		return "", ""
	}
	labels := make([]string, len(stats.Daily))
	revenue := make([]float64, len(stats.Daily))
	placed := make([]float64, len(stats.Daily))
	cancelled := make([]float64, len(stats.Daily))
	for i, d := range stats.Daily {
		labels[i] = dayLabel(d.Date)
		revenue[i] = d.Revenue
		placed[i] = float64(d.Orders)
		cancelled[i] = float64(d.Cancelled)
	}
	line, err := chart.Line(0, 0, revenue, labels, chart.Opts{
		Title:       "Revenue",
		Description: "Daily revenue",
		SeriesA:     "Revenue",
		Dots:        true,
	})
	if err != nil {
		h.logger.Warn("revenue chart", slog.Any("error", err))
	}
	bars, err := chart.Bars(0, 0, placed, cancelled, labels, chart.Opts{
		Title:       "Orders",
		Description: "Orders placed and cancelled per day",
		SeriesA:     "Orders",
		SeriesB:     "Cancelled",
	})
	if err != nil {
		h.logger.Warn("orders chart", slog.Any("error", err))
	}
	return line, bars
}

func dayLabel(date string) string {
	t, err := time.Parse(shared.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2")
}
