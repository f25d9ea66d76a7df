package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/view"
)

const (
	sessionKeyResetEmail = "reset_email"
	sessionKeyResetToken = "reset_token"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	view           *view.Presenter
	sessionManager *shared.SessionManager
	validator      *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, presenter *view.Presenter, sessions *shared.SessionManager) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		view:           presenter,
		sessionManager: sessions,
		validator:      shared.NewValidator(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/forgot", h.showForgot)
	r.Post("/forgot", h.handleForgot)
	r.Get("/verify", h.showVerify)
	r.Post("/verify", h.handleVerify)
	r.Get("/reset", h.showReset)
	r.Post("/reset", h.handleReset)
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type forgotForm struct {
	Email string `form:"email" validate:"required,email"`
}

type verifyForm struct {
	OTP string `form:"otp" validate:"required,len=6,numeric"`
}

type resetForm struct {
	Password     string `form:"password" validate:"required,min=8"`
	Confirmation string `form:"password_confirmation" validate:"required,eqfield=Password"`
}

type pageData struct {
	Form   any
	Email  string
	Errors shared.FieldErrors
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	if shared.SessionFromContext(r.Context()).Authenticated() {
		http.Redirect(w, r, permissions.DefaultLandingPath(permissions.FromRequest(r)), http.StatusSeeOther)
		return
	}
	h.view.Render(w, r, "pages/auth/login.html", "Sign in", pageData{Form: loginForm{}}, http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	form := loginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}

	var errs shared.FieldErrors
	if err := h.validator.Struct(form); err != nil {
		errs = shared.ValidationFieldErrors(err)
	}

	if len(errs) == 0 {
		login, err := h.service.Authenticate(r.Context(), form.Email, form.Password)
		if err == nil {
			h.startSession(sess, login)
			sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Welcome back, " + login.User.FirstName})
			http.Redirect(w, r, permissions.DefaultLandingPath(login.Flags), http.StatusSeeOther)
			return
		}
		if errors.Is(err, shared.ErrInvalidCredentials) {
			errs = shared.FieldErrors{"general": shared.UserSafeMessage(err)}
		} else {
			h.logger.Error("login", slog.Any("error", err))
			errs = shared.FieldErrors{"general": "We could not sign you in right now, please try again"}
		}
	}

	form.Password = ""
	h.view.Render(w, r, "pages/auth/login.html", "Sign in", pageData{Form: form, Errors: errs}, http.StatusBadRequest)
}

func (h *Handler) startSession(sess *shared.Session, login *Login) {
	sess.SetUser(strconv.FormatInt(login.User.ID, 10))
	sess.Set(shared.SessionKeyAuthToken, login.Token)
	sess.Set(shared.SessionKeyRestaurantID, strconv.FormatInt(login.User.RestaurantID, 10))
	sess.Set(shared.SessionKeyRole, login.User.Role)
	sess.Set(shared.SessionKeyDisplayName, login.User.DisplayName())
	permissions.Store(sess, login.Flags)
	// Members without the branch filter always work on their own branch.
	if !permissions.ShowBranchFilter(login.Flags) {
		shared.SelectBranch(sess, login.User.BranchID)
	}
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessionManager.Destroy(shared.SessionFromContext(r.Context()))
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (h *Handler) showForgot(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "pages/auth/forgot.html", "Forgot password", pageData{Form: forgotForm{}}, http.StatusOK)
}

func (h *Handler) handleForgot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := forgotForm{Email: strings.TrimSpace(r.PostFormValue("email"))}
	if err := h.validator.Struct(form); err != nil {
		h.view.Render(w, r, "pages/auth/forgot.html", "Forgot password", pageData{Form: form, Errors: shared.ValidationFieldErrors(err)}, http.StatusBadRequest)
		return
	}
	if err := h.service.ForgotPassword(r.Context(), form.Email); err != nil {
		h.logger.Warn("forgot password", slog.Any("error", err))
		h.view.Render(w, r, "pages/auth/forgot.html", "Forgot password", pageData{Form: form, Errors: shared.FormErrors(err)}, http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	sess.Set(sessionKeyResetEmail, form.Email)
	sess.Delete(sessionKeyResetToken)
	h.view.RedirectWithFlash(w, r, "/auth/verify", "info", "We sent a 6-digit code to "+form.Email)
}

func (h *Handler) showVerify(w http.ResponseWriter, r *http.Request) {
	email := shared.SessionFromContext(r.Context()).Get(sessionKeyResetEmail)
	if email == "" {
		http.Redirect(w, r, "/auth/forgot", http.StatusSeeOther)
		return
	}
	h.view.Render(w, r, "pages/auth/verify.html", "Enter code", pageData{Form: verifyForm{}, Email: email}, http.StatusOK)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	email := sess.Get(sessionKeyResetEmail)
	if email == "" {
		http.Redirect(w, r, "/auth/forgot", http.StatusSeeOther)
		return
	}
	form := verifyForm{OTP: strings.TrimSpace(r.PostFormValue("otp"))}
	err := h.validator.Struct(form)
	var resetToken string
	if err == nil {
		resetToken, err = h.service.VerifyOTP(r.Context(), email, form.OTP)
	}
	if err != nil {
		h.logger.Warn("verify otp", slog.Any("error", err))
		h.view.Render(w, r, "pages/auth/verify.html", "Enter code", pageData{Form: form, Email: email, Errors: otpErrors(err)}, http.StatusBadRequest)
		return
	}
	sess.Set(sessionKeyResetToken, resetToken)
	http.Redirect(w, r, "/auth/reset", http.StatusSeeOther)
}

func otpErrors(err error) shared.FieldErrors {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return shared.ValidationFieldErrors(err)
	}
	if errors.Is(err, shared.ErrValidation) {
		return shared.FieldErrors{"otp": "The code is invalid or has expired"}
	}
	return shared.FormErrors(err)
}

func (h *Handler) showReset(w http.ResponseWriter, r *http.Request) {
	if shared.SessionFromContext(r.Context()).Get(sessionKeyResetToken) == "" {
		http.Redirect(w, r, "/auth/forgot", http.StatusSeeOther)
		return
	}
	h.view.Render(w, r, "pages/auth/reset.html", "Choose a new password", pageData{Form: resetForm{}}, http.StatusOK)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	resetToken := sess.Get(sessionKeyResetToken)
	if resetToken == "" {
		http.Redirect(w, r, "/auth/forgot", http.StatusSeeOther)
		return
	}
	form := resetForm{
		Password:     r.PostFormValue("password"),
		Confirmation: r.PostFormValue("password_confirmation"),
	}
	err := h.validator.Struct(form)
	if err == nil {
		err = h.service.ResetPassword(r.Context(), resetToken, form.Password)
	}
	if err != nil {
		h.logger.Warn("reset password", slog.Any("error", err))
		h.view.Render(w, r, "pages/auth/reset.html", "Choose a new password", pageData{Form: resetForm{}, Errors: shared.ValidationFieldErrors(err)}, http.StatusBadRequest)
		return
	}
	sess.Delete(sessionKeyResetToken)
	sess.Delete(sessionKeyResetEmail)
	h.view.RedirectWithFlash(w, r, "/auth/login", "success", "Password updated, you can sign in now")
}
