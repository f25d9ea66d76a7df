package menu

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/upload"
	"github.com/platehub/backoffice/internal/view"
	"github.com/platehub/backoffice/internal/xano"
)

// Handler serves the inventory grid and the category and food forms.
type Handler struct {
	logger  *slog.Logger
	service *Service
	view    *view.Presenter
}

// NewHandler constructs the menu handler.
func NewHandler(logger *slog.Logger, service *Service, presenter *view.Presenter) *Handler {
	return &Handler{logger: logger, service: service, view: presenter}
}

// MountRoutes registers inventory routes. Viewing needs menu or inventory
// rights; editing the menu needs menu rights.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.grid)
	r.With(permissions.Guard(h.logger, func(f permissions.Flags) bool {
		return permissions.CanManageMenu(f) || permissions.CanManageInventory(f)
	})).Post("/foods/{id}/availability", h.toggleAvailability)

	r.Group(func(r chi.Router) {
		r.Use(permissions.Guard(h.logger, permissions.CanManageMenu))
		r.Get("/categories", h.categories)
		r.Post("/categories", h.createCategory)
		r.Post("/categories/{id}", h.updateCategory)
		r.Post("/categories/{id}/delete", h.deleteCategory)
		r.Get("/foods/new", h.newFood)
		r.Post("/foods", h.createFood)
		r.Get("/foods/{id}/edit", h.editFood)
		r.Post("/foods/{id}", h.updateFood)
		r.Post("/foods/{id}/delete", h.deleteFood)
	})
}

type gridData struct {
	Categories []Category
	Foods      []Food
	Filter     FoodFilter
	CanEdit    bool
	CanToggle  bool
}

func (h *Handler) grid(w http.ResponseWriter, r *http.Request) {
	filter := FoodFilter{Search: strings.TrimSpace(r.URL.Query().Get("q"))}
	if id, err := strconv.ParseInt(r.URL.Query().Get("category"), 10, 64); err == nil && id > 0 {
		filter.CategoryID = id
	}
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.view.Fail(w, r, "list categories", err)
		return
	}
	foods, err := h.service.ListFoods(r.Context(), filter)
	if err != nil {
		h.view.Fail(w, r, "list foods", err)
		return
	}
	flags := permissions.FromRequest(r)
	h.view.Render(w, r, "pages/inventory/grid.html", "Inventory", gridData{
		Categories: categories,
		Foods:      foods,
		Filter:     filter,
		CanEdit:    permissions.CanManageMenu(flags),
		CanToggle:  permissions.CanManageMenu(flags) || permissions.CanManageInventory(flags),
	}, http.StatusOK)
}

type categoriesData struct {
	Categories []Category
	Form       CategoryForm
	Errors     shared.FieldErrors
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	h.renderCategories(w, r, CategoryForm{}, nil, http.StatusOK)
}

func (h *Handler) renderCategories(w http.ResponseWriter, r *http.Request, form CategoryForm, errs shared.FieldErrors, status int) {
	list, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.view.Fail(w, r, "list categories", err)
		return
	}
	h.view.Render(w, r, "pages/inventory/categories.html", "Categories", categoriesData{
		Categories: list,
		Form:       form,
		Errors:     errs,
	}, status)
}

func parseCategory(r *http.Request) CategoryForm {
	sortOrder, _ := strconv.Atoi(r.PostFormValue("sort_order"))
	return CategoryForm{
		Name:        r.PostFormValue("name"),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		SortOrder:   sortOrder,
	}
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := parseCategory(r)
	if _, err := h.service.CreateCategory(r.Context(), form); err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "create category", err)
			return
		}
		h.logger.Warn("create category failed", slog.Any("error", err))
		h.renderCategories(w, r, form, shared.FormErrors(err), http.StatusBadRequest)
		return
	}
	h.view.RedirectWithFlash(w, r, "/inventory/categories", "success", "Category created")
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if _, err := h.service.UpdateCategory(r.Context(), id, parseCategory(r)); err != nil {
		h.afterWriteFailure(w, r, "update category", "/inventory/categories", err)
		return
	}
	h.view.RedirectWithFlash(w, r, "/inventory/categories", "success", "Category updated")
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		h.afterWriteFailure(w, r, "delete category", "/inventory/categories", err)
		return
	}
	h.view.RedirectWithFlash(w, r, "/inventory/categories", "success", "Category deleted")
}

type foodData struct {
	ID         int64
	Food       *Food
	Form       FoodForm
	Categories []Category
	Errors     shared.FieldErrors
}

func (h *Handler) renderFood(w http.ResponseWriter, r *http.Request, title string, data foodData, status int) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.view.Fail(w, r, "list categories", err)
		return
	}
	data.Categories = categories
	h.view.Render(w, r, "pages/inventory/food_form.html", title, data, status)
}

func (h *Handler) newFood(w http.ResponseWriter, r *http.Request) {
	form := FoodForm{IsAvailable: true}
	if id, err := strconv.ParseInt(r.URL.Query().Get("category"), 10, 64); err == nil {
		form.CategoryID = id
	}
	h.renderFood(w, r, "Add menu item", foodData{Form: form}, http.StatusOK)
}

// parseFood reads the multipart item form and its optional image.
func (h *Handler) parseFood(w http.ResponseWriter, r *http.Request) (FoodForm, *xano.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxFormBytes)
	if err := r.ParseMultipartForm(upload.MaxFormBytes); err != nil && err != http.ErrNotMultipart {
		return FoodForm{}, nil, shared.FieldErrors{"image": "Images must be 5 MB or smaller"}
	}
	categoryID, _ := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	form := FoodForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		CategoryID:  categoryID,
		PriceRaw:    r.FormValue("price"),
		IsAvailable: r.FormValue("is_available") == "on",
	}
	image, err := upload.Image(r, "image")
	return form, image, err
}

func (h *Handler) createFood(w http.ResponseWriter, r *http.Request) {
	form, image, err := h.parseFood(w, r)
	if err == nil {
		_, err = h.service.CreateFood(r.Context(), form, image)
	}
	if err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "create food", err)
			return
		}
		h.logger.Warn("create food failed", slog.Any("error", err))
		h.renderFood(w, r, "Add menu item", foodData{Form: form, Errors: shared.FormErrors(err)}, http.StatusBadRequest)
		return
	}
	h.view.RedirectWithFlash(w, r, "/inventory", "success", "Menu item added")
}

func (h *Handler) editFood(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	food, err := h.service.GetFood(r.Context(), id)
	if err != nil {
		h.view.Fail(w, r, "get food", err)
		return
	}
	h.renderFood(w, r, "Edit menu item", foodData{ID: id, Food: food, Form: FoodFormFrom(*food)}, http.StatusOK)
}

func (h *Handler) updateFood(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	form, image, err := h.parseFood(w, r)
	if err == nil {
		_, err = h.service.UpdateFood(r.Context(), id, form, image)
	}
	if err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "update food", err)
			return
		}
		h.logger.Warn("update food failed", slog.Any("error", err), slog.Int64("id", id))
		h.renderFood(w, r, "Edit menu item", foodData{ID: id, Form: form, Errors: shared.FormErrors(err)}, http.StatusBadRequest)
		return
	}
	h.view.RedirectWithFlash(w, r, "/inventory", "success", "Menu item updated")
}

func (h *Handler) deleteFood(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteFood(r.Context(), id); err != nil {
		h.afterWriteFailure(w, r, "delete food", "/inventory", err)
		return
	}
	h.view.RedirectWithFlash(w, r, "/inventory", "success", "Menu item deleted")
}

func (h *Handler) toggleAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	available := r.PostFormValue("available") == "true"
	food, err := h.service.ToggleAvailability(r.Context(), id, available)
	if err != nil {
		h.afterWriteFailure(w, r, "toggle availability", "/inventory", err)
		return
	}
	msg := food.Name + " is now unavailable"
	if food.IsAvailable {
		msg = food.Name + " is available again"
	}
	h.view.RedirectWithFlash(w, r, "/inventory", "success", msg)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) afterWriteFailure(w http.ResponseWriter, r *http.Request, action, back string, err error) {
	if view.Expired(err) {
		h.view.Fail(w, r, action, err)
		return
	}
	h.logger.Warn(action+" failed", slog.Any("error", err))
	h.view.RedirectWithFlash(w, r, back, "danger", shared.UserSafeMessage(err))
}
