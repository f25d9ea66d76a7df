package team

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/platehub/backoffice/internal/branches"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/view"
)

// BranchOptions lists the branches a member can be assigned to.
type BranchOptions interface {
	Options(ctx context.Context, restaurantID int64) ([]branches.Option, error)
}

// Handler serves the team screens.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	branches BranchOptions
	view     *view.Presenter
}

// NewHandler constructs the team handler.
func NewHandler(logger *slog.Logger, service *Service, branchOptions BranchOptions, presenter *view.Presenter) *Handler {
	return &Handler{logger: logger, service: service, branches: branchOptions, view: presenter}
}

// MountRoutes registers team routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/new", h.newForm)
	r.Post("/", h.create)
	r.Get("/{id}/edit", h.editForm)
	r.Post("/{id}", h.update)
	r.Post("/{id}/delete", h.delete)
}

type formData struct {
	ID       int64
	Form     MemberForm
	Roles    []string
	Branches []branches.Option
	Errors   shared.FieldErrors
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.List(r.Context(), shared.SelectedBranch(shared.SessionFromContext(r.Context())))
	if err != nil {
		h.view.Fail(w, r, "list team", err)
		return
	}
	h.view.Render(w, r, "pages/team/list.html", "Team", map[string]any{"Members": members}, http.StatusOK)
}

func (h *Handler) formData(r *http.Request, id int64, form MemberForm, errs shared.FieldErrors) formData {
	opts, err := h.branches.Options(r.Context(), shared.RestaurantID(shared.SessionFromContext(r.Context())))
	if err != nil {
		h.logger.Warn("load branch options", slog.Any("error", err))
	}
	return formData{ID: id, Form: form, Roles: Roles, Branches: opts, Errors: errs}
}

func (h *Handler) newForm(w http.ResponseWriter, r *http.Request) {
	form := MemberForm{Role: "cashier", IsActive: true, BranchID: shared.SelectedBranch(shared.SessionFromContext(r.Context()))}
	h.view.Render(w, r, "pages/team/form.html", "Add team member", h.formData(r, 0, form, nil), http.StatusOK)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := parseForm(r)
	member, err := h.service.Create(r.Context(), form)
	if err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "create member", err)
			return
		}
		h.logger.Warn("create member failed", slog.Any("error", err))
		h.view.Render(w, r, "pages/team/form.html", "Add team member", h.formData(r, 0, form, shared.FormErrors(err)), http.StatusBadRequest)
		return
	}
	h.view.RedirectWithFlash(w, r, "/team", "success", member.FullName()+" was added to the team")
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid member ID", http.StatusBadRequest)
		return
	}
	member, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.view.Fail(w, r, "get member", err)
		return
	}
	h.view.Render(w, r, "pages/team/form.html", "Edit team member", h.formData(r, id, FormFrom(*member), nil), http.StatusOK)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid member ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := parseForm(r)
	if _, err := h.service.Update(r.Context(), id, form); err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "update member", err)
			return
		}
		h.logger.Warn("update member failed", slog.Any("error", err), slog.Int64("id", id))
		h.view.Render(w, r, "pages/team/form.html", "Edit team member", h.formData(r, id, form, shared.FormErrors(err)), http.StatusBadRequest)
		return
	}
	h.view.RedirectWithFlash(w, r, "/team", "success", "Team member updated")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid member ID", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "delete member", err)
			return
		}
		h.logger.Warn("delete member failed", slog.Any("error", err), slog.Int64("id", id))
		h.view.RedirectWithFlash(w, r, "/team", "danger", shared.UserSafeMessage(err))
		return
	}
	h.view.RedirectWithFlash(w, r, "/team", "success", "Team member removed")
}

func parseForm(r *http.Request) MemberForm {
	form := MemberForm{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("phone"),
		Role:      r.PostFormValue("role"),
		IsActive:  r.PostFormValue("is_active") == "on",
	}
	if id, err := strconv.ParseInt(r.PostFormValue("branch_id"), 10, 64); err == nil && id > 0 {
		form.BranchID = &id
	}
	return form
}
