package view

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/xano"
)

// LayoutProvider builds the page chrome for a request.
type LayoutProvider interface {
	Layout(r *http.Request) Layout
}

// Presenter renders pages with CSRF token, flash and layout filled in.
type Presenter struct {
	Templates *Engine
	CSRF      *shared.CSRFManager
	Layouts   LayoutProvider
	Sessions  *shared.SessionManager
	Logger    *slog.Logger
}

// Render writes a full page with the given status.
func (p *Presenter) Render(w http.ResponseWriter, r *http.Request, template, title string, data any, status int) {
	sess := shared.SessionFromContext(r.Context())
	var csrfToken string
	if p.CSRF != nil && sess != nil {
		csrfToken, _ = p.CSRF.EnsureToken(r.Context(), sess)
	}
	var layout Layout
	if p.Layouts != nil {
		layout = p.Layouts.Layout(r)
	}
	for i := range layout.Nav {
		layout.Nav[i].Active = navActive(layout.Nav[i].Path, r.URL.Path)
	}
	viewData := TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       sess.PopFlash(),
		CurrentPath: r.URL.Path,
		Layout:      layout,
		Data:        data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := p.Templates.Render(w, template, viewData); err != nil && p.Logger != nil {
		p.Logger.Error("render template", slog.Any("error", err), slog.String("template", template))
	}
}

// navActive marks a section active on its own path and on pages below it.
func navActive(section, current string) bool {
	if section == current {
		return true
	}
	return section != "/" && strings.HasPrefix(current, section+"/")
}

// RedirectWithFlash queues a flash message and redirects with 303.
func (p *Presenter) RedirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// ServerError logs err and answers 500.
func (p *Presenter) ServerError(w http.ResponseWriter, context string, err error) {
	if p.Logger != nil {
		p.Logger.Error(context, slog.Any("error", err))
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Fail answers a request whose backend call failed. A rejected token ends the
// session and sends the user back to the login page.
func (p *Presenter) Fail(w http.ResponseWriter, r *http.Request, context string, err error) {
	var apiErr *xano.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized:
		if p.Sessions != nil {
			p.Sessions.Destroy(shared.SessionFromContext(r.Context()))
		}
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
	case errors.Is(err, xano.ErrUnauthorized):
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	case errors.Is(err, shared.ErrNotFound):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	default:
		p.ServerError(w, context, err)
	}
}

// Expired reports whether err means the API token is no longer accepted.
func Expired(err error) bool {
	var apiErr *xano.APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
