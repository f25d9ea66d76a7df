package branches

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/view"
)

// Handler serves branch management and the branch filter.
type Handler struct {
	logger  *slog.Logger
	service *Service
	view    *view.Presenter
}

// NewHandler constructs the branch handler.
func NewHandler(logger *slog.Logger, service *Service, presenter *view.Presenter) *Handler {
	return &Handler{logger: logger, service: service, view: presenter}
}

// MountRoutes registers branch CRUD routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/new", h.Form)
	r.Post("/", h.Create)
	r.Get("/{id}/edit", h.EditForm)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/delete", h.Delete)
}

type formData struct {
	ID     int64
	Form   BranchForm
	Errors shared.FieldErrors
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.view.Fail(w, r, "list branches", err)
		return
	}
	h.view.Render(w, r, "pages/branches/list.html", "Branches", map[string]any{
		"Branches": list,
	}, http.StatusOK)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "pages/branches/form.html", "New branch", formData{Form: EmptyForm()}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := parseForm(r)
	created, err := h.service.Create(r.Context(), form)
	if err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "create branch", err)
			return
		}
		h.logger.Warn("create branch failed", slog.Any("error", err))
		h.view.Render(w, r, "pages/branches/form.html", "New branch", formData{
			Form:   form,
			Errors: shared.FormErrors(err),
		}, http.StatusBadRequest)
		return
	}
	h.view.RedirectWithFlash(w, r, "/branches", "success", "Branch "+created.Name+" created")
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid branch ID", http.StatusBadRequest)
		return
	}
	branch, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.view.Fail(w, r, "get branch", err)
		return
	}
	h.view.Render(w, r, "pages/branches/form.html", "Edit branch", formData{ID: id, Form: FormFrom(*branch)}, http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid branch ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := parseForm(r)
	if _, err := h.service.Update(r.Context(), id, form); err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "update branch", err)
			return
		}
		h.logger.Warn("update branch failed", slog.Any("error", err), slog.Int64("id", id))
		h.view.Render(w, r, "pages/branches/form.html", "Edit branch", formData{
			ID:     id,
			Form:   form,
			Errors: shared.FormErrors(err),
		}, http.StatusBadRequest)
		return
	}
	h.view.RedirectWithFlash(w, r, "/branches", "success", "Branch updated")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid branch ID", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "delete branch", err)
			return
		}
		h.logger.Warn("delete branch failed", slog.Any("error", err), slog.Int64("id", id))
		h.view.RedirectWithFlash(w, r, "/branches", "danger", shared.UserSafeMessage(err))
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if selected := shared.SelectedBranch(sess); selected != nil && *selected == id {
		shared.SelectBranch(sess, nil)
	}
	h.view.RedirectWithFlash(w, r, "/branches", "success", "Branch deleted")
}

// Select stores the branch filter choice. An empty branch_id means all branches.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if !permissions.ShowBranchFilter(permissions.FromRequest(r)) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	var id *int64
	if raw := strings.TrimSpace(r.PostFormValue("branch_id")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid branch ID", http.StatusBadRequest)
			return
		}
		id = &parsed
	}
	shared.SelectBranch(shared.SessionFromContext(r.Context()), id)
	http.Redirect(w, r, returnPath(r.PostFormValue("return_to")), http.StatusSeeOther)
}

// returnPath only allows local absolute paths.
func returnPath(raw string) string {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}
	return raw
}

func parseForm(r *http.Request) BranchForm {
	form := BranchForm{
		Name:     r.PostFormValue("name"),
		Address:  r.PostFormValue("address"),
		Phone:    r.PostFormValue("phone"),
		IsActive: r.PostFormValue("is_active") == "on",
	}
	for _, day := range Weekdays {
		form.OpeningHours = append(form.OpeningHours, DayHours{
			Day:    day,
			Open:   r.PostFormValue(day + "_open"),
			Close:  r.PostFormValue(day + "_close"),
			Closed: r.PostFormValue(day+"_closed") == "on",
		})
	}
	return form
}
