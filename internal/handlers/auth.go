package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/diewo77/techfix/internal/auth"
	"github.com/diewo77/techfix/internal/authflow"
	"github.com/diewo77/techfix/internal/identity"
	"github.com/diewo77/techfix/internal/models"
	"github.com/diewo77/techfix/internal/policy"
	"github.com/diewo77/techfix/internal/validation"
	"github.com/diewo77/techfix/internal/view"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Identity is the subset of identity.Service the auth screens use.
type Identity interface {
	SignUp(ctx context.Context, email, password, name string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	Confirm(ctx context.Context, token string) (*models.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) (*models.User, error)
}

// AuthHandler serves the auth screen: sign-in, sign-up, password reset
// and the emailed confirmation and recovery links.
type AuthHandler struct {
	identity Identity
	sessions *auth.Sessions
	broker   *authflow.Broker
	profiles policy.ProfileCreator
	log      *zap.Logger
}

func NewAuthHandler(id Identity, sessions *auth.Sessions, broker *authflow.Broker, profiles policy.ProfileCreator, log *zap.Logger) *AuthHandler {
	return &AuthHandler{identity: id, sessions: sessions, broker: broker, profiles: profiles, log: log}
}

const adminEntry = "/admin"

func (h *AuthHandler) toast(w http.ResponseWriter, r *http.Request, t auth.Toast) {
	flashTo(h.sessions, h.log, w, r, t)
}

func (h *AuthHandler) render(w http.ResponseWriter, r *http.Request, status int, mode authflow.Mode, email, name string, v validation.Violations, toasts ...auth.Toast) {
	if v == nil {
		v = validation.Violations{}
	}
	data := map[string]any{
		"Mode":   mode,
		"Email":  email,
		"Name":   name,
		"Errors": v,
		"Toasts": toasts,
	}
	if err := view.RenderStatus(w, r, status, "auth.html", data); err != nil {
		renderError(h.log, w, "auth.html", err)
	}
}

// Page shows the auth screen; a visitor who already has a session goes
// straight to the admin entry.
func (h *AuthHandler) Page(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.SubjectFromContext(r.Context()); ok {
		http.Redirect(w, r, adminEntry, http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, authflow.ParseMode(r.URL.Query().Get("mode")), "", "", nil)
}

// establish binds the subject to the session within flow and reports
// whether the flow observed the session change.
func (h *AuthHandler) establish(w http.ResponseWriter, r *http.Request, flow *authflow.Flow, subject string) (bool, error) {
	if err := h.sessions.Establish(w, r.WithContext(flow.Bind(r.Context())), subject); err != nil {
		return false, err
	}
	_, ok := flow.Established()
	return ok, nil
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	flow := h.broker.Open(authflow.ModeSignIn)
	defer flow.Close()
	if err := flow.Begin(); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	v := validation.Violations{}
	validation.Required("email", email, v)
	validation.Required("password", password, v)
	if !v.Empty() {
		flow.Fail()
		h.render(w, r, http.StatusUnprocessableEntity, authflow.ModeSignIn, email, "", v)
		return
	}

	user, err := h.identity.SignIn(r.Context(), email, password)
	if err != nil {
		flow.Fail()
		h.render(w, r, http.StatusUnprocessableEntity, authflow.ModeSignIn, email, "", nil,
			auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: h.signInMessage(err)})
		return
	}

	ok, err := h.establish(w, r, flow, user.ID)
	if err != nil || !ok {
		h.log.Error("session not established", zap.String("user_id", user.ID), zap.Error(err))
		flow.Fail()
		h.render(w, r, http.StatusInternalServerError, authflow.ModeSignIn, email, "", nil,
			auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "error.internal"})
		return
	}
	h.toast(w, r, auth.Toast{Kind: auth.ToastSuccess, Title: "auth.welcome_title", Message: "auth.welcome"})
	http.Redirect(w, r, adminEntry, http.StatusSeeOther)
}

func (h *AuthHandler) signInMessage(err error) string {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		return "auth.invalid_credentials"
	case errors.Is(err, identity.ErrNotConfirmed):
		return "auth.not_confirmed"
	}
	h.log.Error("sign in", zap.Error(err))
	return "error.internal"
}

// SignUp registers a subject and writes its admin profile. A profile
// failure is reported but not repaired; the subject stays registered.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	flow := h.broker.Open(authflow.ModeSignUp)
	defer flow.Close()
	if err := flow.Begin(); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	user, err := h.identity.SignUp(r.Context(), email, password, name)
	if err != nil {
		flow.Fail()
		var verr *identity.ValidationError
		switch {
		case errors.As(err, &verr):
			h.render(w, r, http.StatusUnprocessableEntity, authflow.ModeSignUp, email, name, verr.Violations)
		case errors.Is(err, identity.ErrEmailTaken):
			h.render(w, r, http.StatusUnprocessableEntity, authflow.ModeSignUp, email, name, nil,
				auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "auth.email_taken"})
		default:
			h.log.Error("sign up", zap.Error(err))
			h.render(w, r, http.StatusUnprocessableEntity, authflow.ModeSignUp, email, name, nil,
				auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "auth.signup_failed"})
		}
		return
	}

	established := false
	if user.Confirmed() {
		if established, err = h.establish(w, r, flow, user.ID); err != nil {
			h.log.Error("session not established", zap.String("user_id", user.ID), zap.Error(err))
		}
	}

	profile := &models.AdminProfile{UserID: user.ID, Name: name, Email: user.Email}
	if err := h.profiles.Create(r.Context(), profile); err != nil {
		h.log.Error("admin profile not created after sign-up",
			zap.String("user_id", user.ID), zap.String("email", user.Email), zap.Error(err))
		failed := auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "auth.signup_failed"}
		if established {
			h.toast(w, r, failed)
			http.Redirect(w, r, adminEntry, http.StatusSeeOther)
			return
		}
		flow.Fail()
		h.render(w, r, http.StatusUnprocessableEntity, authflow.ModeSignUp, email, name, nil, failed)
		return
	}

	if established {
		h.toast(w, r, auth.Toast{Kind: auth.ToastSuccess, Title: "auth.welcome_title", Message: "auth.welcome"})
		http.Redirect(w, r, adminEntry, http.StatusSeeOther)
		return
	}
	h.toast(w, r, auth.Toast{Kind: auth.ToastSuccess, Title: "auth.signup_title_ok", Message: "auth.check_email"})
	http.Redirect(w, r, policy.AuthEntry, http.StatusSeeOther)
}

// RequestReset mails a reset link. The answer is the same whether or not
// the address is registered.
func (h *AuthHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		h.toast(w, r, auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "auth.reset_email_required"})
		http.Redirect(w, r, policy.AuthEntry, http.StatusSeeOther)
		return
	}
	if err := h.identity.RequestPasswordReset(r.Context(), email); err != nil {
		h.log.Error("password reset request", zap.Error(err))
		h.toast(w, r, auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "auth.reset_failed"})
	} else {
		h.toast(w, r, auth.Toast{Kind: auth.ToastSuccess, Title: "toast.success", Message: "auth.reset_sent"})
	}
	http.Redirect(w, r, policy.AuthEntry, http.StatusSeeOther)
}

// Confirm consumes the emailed confirmation link.
func (h *AuthHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.identity.Confirm(r.Context(), r.URL.Query().Get("token")); err != nil {
		h.log.Info("confirmation rejected", zap.Error(err))
		h.toast(w, r, auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "auth.token_invalid"})
	} else {
		h.toast(w, r, auth.Toast{Kind: auth.ToastSuccess, Title: "toast.success", Message: "auth.confirmed"})
	}
	http.Redirect(w, r, policy.AuthEntry, http.StatusSeeOther)
}

func (h *AuthHandler) renderRecover(w http.ResponseWriter, r *http.Request, status int, token string, v validation.Violations) {
	if v == nil {
		v = validation.Violations{}
	}
	if err := view.RenderStatus(w, r, status, "recover.html", map[string]any{"Token": token, "Errors": v}); err != nil {
		renderError(h.log, w, "recover.html", err)
	}
}

// RecoverPage asks for a new password.
func (h *AuthHandler) RecoverPage(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Redirect(w, r, policy.AuthEntry, http.StatusSeeOther)
		return
	}
	h.renderRecover(w, r, http.StatusOK, token, nil)
}

// Recover sets the new password from the emailed reset link.
func (h *AuthHandler) Recover(w http.ResponseWriter, r *http.Request) {
	token := r.FormValue("token")
	_, err := h.identity.ResetPassword(r.Context(), token, r.FormValue("password"))
	var verr *identity.ValidationError
	switch {
	case err == nil:
		h.toast(w, r, auth.Toast{Kind: auth.ToastSuccess, Title: "toast.success", Message: "auth.recover_done"})
	case errors.As(err, &verr):
		h.renderRecover(w, r, http.StatusUnprocessableEntity, token, verr.Violations)
		return
	case errors.Is(err, identity.ErrInvalidToken):
		h.toast(w, r, auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "auth.token_invalid"})
	default:
		h.log.Error("password reset", zap.Error(err))
		h.toast(w, r, auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "error.internal"})
	}
	http.Redirect(w, r, policy.AuthEntry, http.StatusSeeOther)
}

// SignOut ends the session and returns to the public page.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(w, r); err != nil {
		h.log.Warn("sign out", zap.Error(err))
	}
	h.toast(w, r, auth.Toast{Kind: auth.ToastInfo, Title: "toast.info", Message: "auth.signed_out"})
	http.Redirect(w, r, policy.PublicEntry, http.StatusSeeOther)
}
