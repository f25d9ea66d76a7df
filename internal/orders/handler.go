package orders

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/view"
)

// Handler serves the transactions screens.
type Handler struct {
	logger  *slog.Logger
	service *Service
	view    *view.Presenter
	now     func() time.Time
}

// NewHandler constructs the transactions handler.
func NewHandler(logger *slog.Logger, service *Service, presenter *view.Presenter) *Handler {
	return &Handler{logger: logger, service: service, view: presenter, now: time.Now}
}

// MountRoutes registers transactions routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.show)
	r.With(permissions.Guard(h.logger, permissions.CanUpdateOrders)).Post("/{id}/status", h.updateStatus)
	r.With(permissions.Guard(h.logger, permissions.ShowRiders)).Post("/{id}/rider", h.assignRider)
}

type listData struct {
	Listing    *Listing
	Range      shared.DateRange
	Status     string
	Statuses   []string
	Query      url.Values
	ShowRiders bool
	Errors     shared.FieldErrors
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dateRange, rangeErr := shared.ParseDateRange(q, h.now())
	status := q.Get("status")
	if !ValidStatus(status) {
		status = ""
	}
	filter := Filter{
		Range:    dateRange,
		BranchID: shared.SelectedBranch(shared.SessionFromContext(r.Context())),
		Status:   status,
		Page:     shared.PageFromQuery(q),
	}
	listing, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.view.Fail(w, r, "list orders", err)
		return
	}

	query := url.Values{}
	dateRange.Apply(query)
	if status != "" {
		query.Set("status", status)
	}
	data := listData{
		Listing:    listing,
		Range:      dateRange,
		Status:     status,
		Statuses:   Statuses,
		Query:      query,
		ShowRiders: permissions.ShowRiders(permissions.FromRequest(r)),
	}
	if rangeErr != nil {
		data.Errors = shared.FormErrors(rangeErr)
	}
	h.view.Render(w, r, "pages/transactions/list.html", "Transactions", data, http.StatusOK)
}

type detailData struct {
	Order      *Order
	Statuses   []string
	Riders     []Rider
	CanUpdate  bool
	ShowRiders bool
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.view.Fail(w, r, "get order", err)
		return
	}
	flags := permissions.FromRequest(r)
	data := detailData{
		Order:      order,
		Statuses:   Statuses,
		CanUpdate:  permissions.CanUpdateOrders(flags),
		ShowRiders: permissions.ShowRiders(flags) && order.IsDelivery(),
	}
	if data.ShowRiders {
		branch := order.BranchID
		riders, err := h.service.ListRiders(r.Context(), &branch)
		if err != nil {
			// The order is still useful without the rider picker.
			h.logger.Warn("list riders", slog.Any("error", err))
		}
		data.Riders = riders
	}
	h.view.Render(w, r, "pages/transactions/detail.html", "Order "+order.OrderNumber, data, http.StatusOK)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	back := "/transactions/" + strconv.FormatInt(id, 10)
	order, err := h.service.UpdateStatus(r.Context(), id, r.PostFormValue("status"))
	if err != nil {
		h.writeFailed(w, r, "update order status", back, err)
		return
	}
	h.view.RedirectWithFlash(w, r, back, "success", "Order marked "+order.Status)
}

func (h *Handler) assignRider(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	back := "/transactions/" + strconv.FormatInt(id, 10)
	riderID, _ := strconv.ParseInt(r.PostFormValue("rider_id"), 10, 64)
	order, err := h.service.AssignRider(r.Context(), id, riderID)
	if err != nil {
		h.writeFailed(w, r, "assign rider", back, err)
		return
	}
	h.view.RedirectWithFlash(w, r, back, "success", "Assigned to "+order.RiderName)
}

func (h *Handler) writeFailed(w http.ResponseWriter, r *http.Request, action, back string, err error) {
	if view.Expired(err) {
		h.view.Fail(w, r, action, err)
		return
	}
	h.logger.Warn(action+" failed", slog.Any("error", err))
	h.view.RedirectWithFlash(w, r, back, "danger", shared.UserSafeMessage(err))
}
