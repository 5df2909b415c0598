package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"diary/internal/domain/session"
	"diary/internal/domain/user"
	"diary/internal/mail"
	"diary/internal/server/api/http/middleware/auth"
)

// Handler serves the browser-facing pages: the diary shell and the whole
// account lifecycle. All state it needs arrives through the constructor, so
// tests can drive it with fakes.
type Handler struct {
	users    user.Servicer
	sessions session.Servicer
	mailer   mail.Mailer
	baseURL  string
	log      *slog.Logger
}

func NewHandler(users user.Servicer, sessions session.Servicer, mailer mail.Mailer, baseURL string, log *slog.Logger) *Handler {
	return &Handler{
		users:    users,
		sessions: sessions,
		mailer:   mailer,
		baseURL:  baseURL,
		log:      log.With("component", "web"),
	}
}

func (h *Handler) SetupRoutes(r chi.Router) {
	r.Get("/", h.diary)
	r.Get("/register", h.registerForm)
	r.Post("/register", h.register)
	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)
	r.Get("/forgot-password", h.forgotPasswordForm)
	r.Post("/forgot-password", h.forgotPassword)
	r.Get("/reset-password/{token}", h.resetPasswordForm)
	r.Post("/reset-password/{token}", h.resetPassword)
}

// currentSession resolves the caller's session cookie. The returned token is
// needed again on logout to destroy the session.
func (h *Handler) currentSession(r *http.Request) (userID int, token string, ok bool) {
	c, err := r.Cookie(auth.SessionCookie)
	if err != nil || c.Value == "" {
		return 0, "", false
	}
	userID, err = h.sessions.Validate(r.Context(), c.Value)
	if err != nil {
		return 0, "", false
	}
	return userID, c.Value, true
}

func (h *Handler) redirectIfAuthenticated(w http.ResponseWriter, r *http.Request) bool {
	if _, _, ok := h.currentSession(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return true
	}
	return false
}

// diary is the protected application shell. Entries themselves travel over
// the JSON API, decrypted in the browser.
func (h *Handler) diary(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.currentSession(r); !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.render(w, "diary.html", pageData{Flashes: popFlashes(w, r)})
}

func (h *Handler) registerForm(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfAuthenticated(w, r) {
		return
	}
	h.render(w, "register.html", pageData{Flashes: popFlashes(w, r)})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfAuthenticated(w, r) {
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		setFlashes(w, []Flash{{Category: "danger", Message: "Both email and password are required."}})
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	_, err := h.users.Register(r.Context(), email, password)
	switch {
	case errors.Is(err, user.ErrDuplicateEmail):
		setFlashes(w, []Flash{{Category: "danger", Message: "Email already registered. Please log in or use a different one."}})
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case err != nil:
		h.log.Error("registration failed", "error", err)
		setFlashes(w, []Flash{{Category: "danger", Message: "An internal error occurred during registration. Please try again."}})
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	default:
		setFlashes(w, []Flash{{Category: "success", Message: "Registration successful! Please log in."}})
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfAuthenticated(w, r) {
		return
	}
	h.render(w, "login.html", pageData{Flashes: popFlashes(w, r)})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfAuthenticated(w, r) {
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	u, err := h.users.Authenticate(r.Context(), email, password)
	if err != nil {
		// Same message whatever went wrong.
		setFlashes(w, []Flash{{Category: "danger", Message: "Invalid email or password."}})
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	token, err := h.sessions.Create(r.Context(), u.ID)
	if err != nil {
		h.log.Error("failed to create session", "user_id", u.ID, "error", err)
		setFlashes(w, []Flash{{Category: "danger", Message: "An internal error occurred. Please try again."}})
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(session.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// Each login starts a fresh session, so this onboarding hint shows once
	// per session.
	setFlashes(w, []Flash{{Category: "success", Message: "Welcome! Please enter your master diary password to unlock your entries."}})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	_, token, ok := h.currentSession(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.sessions.Destroy(r.Context(), token); err != nil {
		h.log.Error("failed to destroy session", "error", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	setFlashes(w, []Flash{{Category: "success", Message: "You have been logged out."}})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) forgotPasswordForm(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfAuthenticated(w, r) {
		return
	}
	h.render(w, "forgot_password.html", pageData{Flashes: popFlashes(w, r)})
}

// forgotPassword acknowledges identically whether or not the email exists.
// Delivery problems surface as a warning but never fail the request.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfAuthenticated(w, r) {
		return
	}

	var flashes []Flash

	email := r.FormValue("email")
	if u, err := h.users.FindByEmail(r.Context(), email); err == nil {
		flashes = h.sendResetEmail(r, u)
	}

	flashes = append(flashes, Flash{
		Category: "info",
		Message:  "If your email is in our system, you will receive a password reset link shortly.",
	})
	setFlashes(w, flashes)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) sendResetEmail(r *http.Request, u user.User) []Flash {
	tok, err := h.users.IssueResetToken(u)
	if err != nil {
		h.log.Error("failed to issue reset token", "user_id", u.ID, "error", err)
		return nil
	}

	resetURL := h.baseURL + "/reset-password/" + tok

	switch err := h.mailer.SendPasswordReset(u.Email, resetURL); {
	case errors.Is(err, mail.ErrNotConfigured):
		return []Flash{{Category: "danger", Message: "Email service is not fully configured. Please contact the administrator."}}
	case err != nil:
		return []Flash{{Category: "danger", Message: "Password reset link could not be sent due to an email service error."}}
	default:
		return []Flash{{Category: "info", Message: "An email has been sent to " + u.Email + " with instructions to reset your password."}}
	}
}

func (h *Handler) resetPasswordForm(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfAuthenticated(w, r) {
		return
	}

	tok := chi.URLParam(r, "token")
	if _, err := h.users.RedeemResetToken(r.Context(), tok); err != nil {
		setFlashes(w, []Flash{{Category: "danger", Message: "That is an invalid or expired token."}})
		http.Redirect(w, r, "/forgot-password", http.StatusSeeOther)
		return
	}

	h.render(w, "reset_token.html", pageData{Flashes: popFlashes(w, r), Token: tok})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfAuthenticated(w, r) {
		return
	}

	tok := chi.URLParam(r, "token")
	u, err := h.users.RedeemResetToken(r.Context(), tok)
	if err != nil {
		setFlashes(w, []Flash{{Category: "danger", Message: "That is an invalid or expired token."}})
		http.Redirect(w, r, "/forgot-password", http.StatusSeeOther)
		return
	}

	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	if password == "" || password != confirm {
		h.render(w, "reset_token.html", pageData{
			Flashes: []Flash{{Category: "danger", Message: "Passwords must match."}},
			Token:   tok,
		})
		return
	}

	if err := h.users.SetPassword(r.Context(), u, password); err != nil {
		h.log.Error("failed to set password", "user_id", u.ID, "error", err)
		h.render(w, "reset_token.html", pageData{
			Flashes: []Flash{{Category: "danger", Message: "An internal error occurred. Please try again."}},
			Token:   tok,
		})
		return
	}

	setFlashes(w, []Flash{{Category: "success", Message: "Your password has been updated! Please log in with your new password."}})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
