package audit

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/platehub/backoffice/internal/platform/httpx"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/view"
)

const (
	defaultRangeDays = 7
	maxRangeDays     = 90
	exportsPerMinute = 10
)

// Handler renders the audit timeline.
type Handler struct {
	logger  *slog.Logger
	service *Service
	view    *view.Presenter
	now     func() time.Time
}

// NewHandler constructs the audit handler.
func NewHandler(logger *slog.Logger, service *Service, presenter *view.Presenter) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, view: presenter, now: time.Now}
}

// MountRoutes registers the timeline and its CSV export.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.timeline)
	r.With(httpx.LimitPerUser(exportsPerMinute, time.Minute)).Get("/export.csv", h.export)
}

type pageData struct {
	Filters Filters
	Result  *Result
	Query   url.Values
	Errors  shared.FieldErrors
}

func (h *Handler) timeline(w http.ResponseWriter, r *http.Request) {
	filters, err := h.parseFilters(r.URL.Query())
	data := pageData{Filters: filters}
	if err != nil {
		data.Errors = shared.FormErrors(err)
		h.view.Render(w, r, "pages/audit/list.html", "Audit log", data, http.StatusBadRequest)
		return
	}
	result, err := h.service.Timeline(r.Context(), filters)
	if err != nil {
		h.view.Fail(w, r, "load audit timeline", err)
		return
	}
	data.Result = result
	data.Query = url.Values{}
	filters.Apply(data.Query)
	h.view.Render(w, r, "pages/audit/list.html", "Audit log", data, http.StatusOK)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	filters, err := h.parseFilters(r.URL.Query())
	if err != nil {
		http.Error(w, shared.UserSafeMessage(err), http.StatusBadRequest)
		return
	}
	entries, err := h.service.Export(r.Context(), filters)
	if err != nil {
		h.view.Fail(w, r, "export audit timeline", err)
		return
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		h.view.ServerError(w, "encode audit csv", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\"audit-log.csv\"")
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("write csv", slog.Any("error", err))
	}
}

// parseFilters defaults to the last week and caps the window at 90 days.
func (h *Handler) parseFilters(q url.Values) (Filters, error) {
	dateRange, err := shared.ParseDateRange(q, h.now())
	if q.Get("from") == "" {
		dateRange.From = dateRange.To.AddDate(0, 0, -(defaultRangeDays - 1))
	}
	f := Filters{
		Range:  dateRange,
		Actor:  strings.TrimSpace(q.Get("actor")),
		Entity: strings.TrimSpace(q.Get("entity")),
		Action: strings.TrimSpace(q.Get("action")),
		Page:   shared.PageFromQuery(q),
	}
	if v := q.Get("per_page"); v != "" {
		f.PerPage, _ = strconv.Atoi(v)
	}
	if err != nil {
		return f, err
	}
	if f.Range.Days() > maxRangeDays {
		return f, shared.FieldErrors{"from": "Choose a range of at most 90 days"}
	}
	return f, nil
}
