package wizard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/platehub/backoffice/internal/menu"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/view"
)

// Menu is what the wizard screen needs from the menu service.
type Menu interface {
	Saver
	GetFood(ctx context.Context, id int64) (*menu.Food, error)
	ListExtrasGroups(ctx context.Context, foodID int64) ([]menu.ExtrasGroup, error)
	DeleteExtrasGroup(ctx context.Context, groupID int64) error
}

// Handler drives the wizard with one POST per button press.
type Handler struct {
	logger *slog.Logger
	menu   Menu
	view   *view.Presenter
}

// NewHandler constructs the wizard handler.
func NewHandler(logger *slog.Logger, m Menu, presenter *view.Presenter) *Handler {
	return &Handler{logger: logger, menu: m, view: presenter}
}

// MountRoutes registers routes below /inventory/foods/{id}/extras.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.show)
	r.Post("/", h.act)
	r.Post("/{groupID}/delete", h.deleteGroup)
}

type pageData struct {
	Food     *menu.Food
	Existing []menu.ExtrasGroup
	Wizard   *Wizard
	Steps    []Step
	CanSave  bool
	Errors   shared.FieldErrors
}

func foodID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func extrasPath(id int64) string {
	return "/inventory/foods/" + strconv.FormatInt(id, 10) + "/extras"
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := foodID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	h.render(w, r, Load(shared.SessionFromContext(r.Context()), id), nil, http.StatusOK)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, wz *Wizard, errs shared.FieldErrors, status int) {
	food, err := h.menu.GetFood(r.Context(), wz.FoodID)
	if err != nil {
		h.view.Fail(w, r, "get food", err)
		return
	}
	existing, err := h.menu.ListExtrasGroups(r.Context(), wz.FoodID)
	if err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "list extras groups", err)
			return
		}
		h.logger.Warn("list extras groups", slog.Any("error", err))
	}
	h.view.Render(w, r, "pages/inventory/extras.html", "Extras for "+food.Name, pageData{
		Food:     food,
		Existing: existing,
		Wizard:   wz,
		Steps:    []Step{StepGroups, StepExtras, StepReview},
		CanSave:  wz.CanSave(),
		Errors:   errs,
	}, status)
}

func (h *Handler) act(w http.ResponseWriter, r *http.Request) {
	id, ok := foodID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	wz := Load(sess, id)
	wz.Bind(r.PostForm)

	action, args := parseAction(r.PostFormValue("action"))
	var err error
	switch action {
	case "next":
		err = wz.Next()
	case "back":
		wz.Back()
	case "add_group":
		wz.AddGroup()
	case "remove_group":
		wz.RemoveGroup(arg(args, 0))
	case "add_extra":
		wz.AddExtra(arg(args, 0))
	case "remove_extra":
		wz.RemoveExtra(arg(args, 0), arg(args, 1))
	case "reset":
		wz.Reset()
	case "save":
		h.save(w, r, sess, wz)
		return
	default:
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}

	// Keep typed input even when the step is refused.
	if storeErr := Store(sess, wz); storeErr != nil {
		h.view.ServerError(w, "store wizard", storeErr)
		return
	}
	if err != nil {
		h.render(w, r, wz, shared.FormErrors(err), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, extrasPath(id), http.StatusSeeOther)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, sess *shared.Session, wz *Wizard) {
	saved, err := wz.Save(r.Context(), h.menu)
	if err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "save extras", err)
			return
		}
		if storeErr := Store(sess, wz); storeErr != nil {
			h.logger.Warn("store wizard", slog.Any("error", storeErr))
		}
		errs := shared.FormErrors(err)
		if errors.Is(err, ErrCannotSave) {
			errs = shared.FieldErrors{"general": "Add at least one group and review it before saving"}
		} else {
			h.logger.Warn("save extras failed", slog.Any("error", err), slog.Int64("food_id", wz.FoodID))
		}
		h.render(w, r, wz, errs, http.StatusBadRequest)
		return
	}
	Clear(sess)
	h.view.RedirectWithFlash(w, r, extrasPath(wz.FoodID), "success", strconv.Itoa(len(saved))+" extras group(s) saved")
}

func (h *Handler) deleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := foodID(r)
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if !ok || err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.menu.DeleteExtrasGroup(r.Context(), groupID); err != nil {
		if view.Expired(err) {
			h.view.Fail(w, r, "delete extras group", err)
			return
		}
		h.logger.Warn("delete extras group failed", slog.Any("error", err))
		h.view.RedirectWithFlash(w, r, extrasPath(id), "danger", shared.UserSafeMessage(err))
		return
	}
	h.view.RedirectWithFlash(w, r, extrasPath(id), "success", "Extras group removed")
}

// parseAction splits button values such as "remove_extra:0:2".
func parseAction(raw string) (string, []string) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	return parts[0], parts[1:]
}

func arg(args []string, i int) int {
	if i >= len(args) {
		return -1
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return -1
	}
	return n
}
