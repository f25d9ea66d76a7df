package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/upload"
	"github.com/platehub/backoffice/internal/view"
)

// Handler serves the restaurant settings screen.
type Handler struct {
	logger  *slog.Logger
	service *Service
	view    *view.Presenter
}

// NewHandler constructs the settings handler.
func NewHandler(logger *slog.Logger, service *Service, presenter *view.Presenter) *Handler {
	return &Handler{logger: logger, service: service, view: presenter}
}

// MountRoutes registers settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.show)
	r.Post("/", h.update)
	r.Post("/logo", h.uploadLogo)
}

type pageData struct {
	Restaurant *Restaurant
	Form       RestaurantForm
	Errors     shared.FieldErrors
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id := shared.RestaurantID(shared.SessionFromContext(r.Context()))
	restaurant, err := h.service.GetRestaurant(r.Context(), id)
	if err != nil {
		h.view.Fail(w, r, "load restaurant", err)
		return
	}
	h.view.Render(w, r, "pages/settings/edit.html", "Settings", pageData{
		Restaurant: restaurant,
		Form:       FormFrom(*restaurant),
	}, http.StatusOK)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	id := shared.RestaurantID(sess)
	form := RestaurantForm{
		Name:     r.PostFormValue("name"),
		Phone:    r.PostFormValue("phone"),
		Email:    r.PostFormValue("email"),
		Currency: r.PostFormValue("currency"),
		Config: Config{
			IsMultiBranch:       r.PostFormValue("is_multi_branch") == "on",
			HasDelivery:         r.PostFormValue("has_delivery") == "on",
			HasInventory:        r.PostFormValue("has_inventory") == "on",
			HasReports:          r.PostFormValue("has_reports") == "on",
			AllowTeamManagement: r.PostFormValue("allow_team_management") == "on",
			OwnerOnlySettings:   r.PostFormValue("owner_only_settings") == "on",
		},
	}

	restaurant, err := h.service.UpdateRestaurant(r.Context(), id, form)
	if err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "update restaurant", err)
			return
		}
		h.logger.Warn("update restaurant", slog.Any("error", err))
		h.view.Render(w, r, "pages/settings/edit.html", "Settings", pageData{
			Form:   form,
			Errors: shared.FormErrors(err),
		}, http.StatusBadRequest)
		return
	}

	// Flag changes take effect on the next request without a new login.
	role := permissions.FromSession(sess).Role
	permissions.Store(sess, restaurant.Flags(role))
	h.view.RedirectWithFlash(w, r, "/settings", "success", "Settings saved")
}

func (h *Handler) uploadLogo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxFormBytes)
	if err := r.ParseMultipartForm(upload.MaxFormBytes); err != nil {
		h.view.RedirectWithFlash(w, r, "/settings", "danger", "Images must be 5 MB or smaller")
		return
	}
	logo, err := upload.Image(r, "logo")
	if err == nil {
		id := shared.RestaurantID(shared.SessionFromContext(r.Context()))
		_, err = h.service.UploadLogo(r.Context(), id, logo)
	}
	if err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "upload logo", err)
			return
		}
		h.logger.Warn("upload logo", slog.Any("error", err))
		h.view.RedirectWithFlash(w, r, "/settings", "danger", shared.UserSafeMessage(err))
		return
	}
	h.view.RedirectWithFlash(w, r, "/settings", "success", "Logo updated")
}
