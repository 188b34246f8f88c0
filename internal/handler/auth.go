package handler

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/mohmadimran/books-manager-frontend/internal/model"
	"github.com/mohmadimran/books-manager-frontend/internal/service"
	"github.com/mohmadimran/books-manager-frontend/internal/session"
)

// AuthHandler serves the login and signup pages and their form posts.
//
// ERROR DISPLAY CONTRACT:
// Exactly one error is shown at a time, in the form's inline message box.
// The service layer guarantees every error it returns carries a
// display-safe message (validation copy, the backend's message, or the
// per-flow fallback), so the handler can render err.Error() directly.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Store
	logger   *slog.Logger

	loginTmpl  *template.Template
	signupTmpl *template.Template
}

// loginView is the data for the login page.
type loginView struct {
	Title      string
	User       *model.User
	Error      string
	Email      string
	Registered bool // true right after a successful signup
}

// signupView is the data for the signup page. Passwords are never echoed
// back into the form.
type signupView struct {
	Title string
	User  *model.User
	Error string
	Name  string
	Email string
}

// NewAuthHandler parses the auth templates and wires dependencies.
func NewAuthHandler(
	auth *service.AuthService,
	sessions *session.Store,
	templateDir string,
	logger *slog.Logger,
) (*AuthHandler, error) {
	loginTmpl, err := parsePage(templateDir, "login.html")
	if err != nil {
		return nil, err
	}
	signupTmpl, err := parsePage(templateDir, "signup.html")
	if err != nil {
		return nil, err
	}

	return &AuthHandler{
		auth:       auth,
		sessions:   sessions,
		logger:     logger,
		loginTmpl:  loginTmpl,
		signupTmpl: signupTmpl,
	}, nil
}

// HandleRoot sends the visitor wherever their session allows.
//
// HTTP: GET /
func (h *AuthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if session.CanAccess(h.sessions.Current()) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLoginPage renders the login form.
//
// HTTP: GET /login
// An already-authenticated visitor is sent straight to the dashboard.
// ?registered=1 (set by a successful signup) shows the "please login" note.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if session.CanAccess(h.sessions.Current()) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	renderHTML(w, h.logger, h.loginTmpl, loginView{
		Title:      "Login — Books Manager",
		Registered: r.URL.Query().Get("registered") == "1",
	})
}

// HandleLogin processes the login form.
//
// HTTP: POST /login
// On failure the form is re-rendered with the single error message and the
// entered email (the password is deliberately dropped). On success the
// browser is redirected to the dashboard.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if _, err := h.auth.Login(r.Context(), email, password); err != nil {
		renderHTML(w, h.logger, h.loginTmpl, loginView{
			Title: "Login — Books Manager",
			Error: err.Error(),
			Email: email,
		})
		return
	}

	// POST → redirect → GET keeps a browser refresh from re-submitting
	// the credentials.
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleSignupPage renders the registration form.
//
// HTTP: GET /signup
func (h *AuthHandler) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, h.logger, h.signupTmpl, signupView{
		Title: "Create an Account — Books Manager",
	})
}

// HandleSignup processes the registration form.
//
// HTTP: POST /signup
// Success does NOT log the user in: they land on the login page with the
// "Signup successful! Please login." prompt.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirmPassword")

	if err := h.auth.Signup(r.Context(), name, email, password, confirm); err != nil {
		renderHTML(w, h.logger, h.signupTmpl, signupView{
			Title: "Create an Account — Books Manager",
			Error: err.Error(),
			Name:  name,
			Email: email,
		})
		return
	}

	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}

// HandleLogout clears the session and returns to the login page.
//
// HTTP: POST /logout
// POST, not GET: logout is state-changing, and GET links get pre-fetched
// by browsers.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		h.logger.Error("logout failed", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
