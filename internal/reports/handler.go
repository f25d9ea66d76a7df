package reports

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/platehub/backoffice/internal/platform/gotenberg"
	"github.com/platehub/backoffice/internal/platform/httpx"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/view"
)

// ExportsPerMinute bounds CSV and PDF exports per member.
const ExportsPerMinute = 10

// PDFRenderer turns an HTML document into a PDF.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string, opts gotenberg.Options) ([]byte, error)
}

// Handler serves the report generator.
type Handler struct {
	logger  *slog.Logger
	service *Service
	pdf     PDFRenderer
	view    *view.Presenter
	now     func() time.Time
}

// NewHandler constructs the reports handler.
func NewHandler(logger *slog.Logger, service *Service, pdf PDFRenderer, presenter *view.Presenter) *Handler {
	return &Handler{logger: logger, service: service, pdf: pdf, view: presenter, now: time.Now}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.form)
	r.Group(func(r chi.Router) {
		r.Use(httpx.LimitPerUser(ExportsPerMinute, time.Minute))
		r.Get("/export.csv", h.exportCSV)
		r.Get("/export.pdf", h.exportPDF)
	})
}

type pageData struct {
	Types  []string
	Filter Filter
	Report *Report
	Query  url.Values
	Errors shared.FieldErrors
}

func (h *Handler) filter(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	dateRange, err := shared.ParseDateRange(q, h.now())
	f := Filter{
		Type:     q.Get("type"),
		Range:    dateRange,
		BranchID: shared.SelectedBranch(shared.SessionFromContext(r.Context())),
	}
	if err != nil {
		return f, err
	}
	return f, f.Validate()
}

func (h *Handler) form(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	data := pageData{Types: Types, Filter: f}
	if f.Type == "" && r.URL.Query().Get("from") == "" {
		// First visit: show the empty form.
		h.view.Render(w, r, "pages/reports/form.html", "Reports", data, http.StatusOK)
		return
	}
	if err != nil {
		data.Errors = shared.FormErrors(err)
		h.view.Render(w, r, "pages/reports/form.html", "Reports", data, http.StatusBadRequest)
		return
	}
	rep, err := h.service.Generate(r.Context(), f)
	if err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "generate report", err)
			return
		}
		h.logger.Warn("generate report", slog.Any("error", err))
		data.Errors = shared.FormErrors(err)
		h.view.Render(w, r, "pages/reports/form.html", "Reports", data, http.StatusBadGateway)
		return
	}
	data.Report = rep
	q := url.Values{"type": {f.Type}}
	f.Range.Apply(q)
	data.Query = q
	h.view.Render(w, r, "pages/reports/form.html", rep.Title, data, http.StatusOK)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) (*Report, bool) {
	f, err := h.filter(r)
	if err != nil {
		http.Error(w, shared.UserSafeMessage(err), http.StatusBadRequest)
		return nil, false
	}
	rep, err := h.service.Generate(r.Context(), f)
	if err != nil {
		h.view.Fail(w, r, "generate report", err)
		return nil, false
	}
	return rep, true
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.generate(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep); err != nil {
		h.view.ServerError(w, "write report csv", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+Filename(rep, "csv"))
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.generate(w, r)
	if !ok {
		return
	}
	html, err := h.view.Templates.RenderString("pages/reports/pdf.html", view.TemplateData{Title: rep.Title, Data: rep})
	if err != nil {
		h.view.ServerError(w, "render report html", err)
		return
	}
	pdf, err := h.pdf.RenderHTML(r.Context(), html, gotenberg.Options{Landscape: len(rep.Columns) > 4})
	if err != nil {
		h.logger.Error("render report pdf", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+Filename(rep, "pdf"))
	_, _ = w.Write(pdf)
}
