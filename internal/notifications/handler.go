package notifications

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/platehub/backoffice/internal/platform/httpx"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/view"
)

// Handler serves the notification feed and the banner endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
	banners *BannerStore
	view    *view.Presenter
}

// NewHandler constructs the notifications handler.
func NewHandler(logger *slog.Logger, service *Service, banners *BannerStore, presenter *view.Presenter) *Handler {
	return &Handler{logger: logger, service: service, banners: banners, view: presenter}
}

// MountRoutes registers notification routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/read-all", h.markAllRead)
	r.Post("/{id}/read", h.markRead)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.view.Fail(w, r, "list notifications", err)
		return
	}
	h.view.Render(w, r, "pages/notifications/list.html", "Notifications", map[string]any{
		"Notifications": items,
		"Unread":        Unread(items),
	}, http.StatusOK)
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid notification ID", http.StatusBadRequest)
		return
	}
	if err := h.service.MarkRead(r.Context(), id); err != nil {
		h.writeFailed(w, r, "mark notification read", err)
		return
	}
	http.Redirect(w, r, "/notifications", http.StatusSeeOther)
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkAllRead(r.Context()); err != nil {
		h.writeFailed(w, r, "mark all notifications read", err)
		return
	}
	h.view.RedirectWithFlash(w, r, "/notifications", "success", "All notifications marked as read")
}

func (h *Handler) writeFailed(w http.ResponseWriter, r *http.Request, action string, err error) {
	if view.Expired(err) {
		h.view.Fail(w, r, action, err)
		return
	}
	h.logger.Warn(action+" failed", slog.Any("error", err))
	h.view.RedirectWithFlash(w, r, "/notifications", "danger", shared.UserSafeMessage(err))
}

// BannerJSON answers the cached banner for client side polling. No banner
// is 204.
func (h *Handler) BannerJSON(w http.ResponseWriter, r *http.Request) {
	banner, err := h.banners.Lookup(r.Context())
	if err != nil {
		h.logger.Warn("banner json", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if banner == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.JSON(w, http.StatusOK, banner)
}
