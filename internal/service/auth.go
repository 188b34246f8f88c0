// Package service contains the business logic layer of the application.
//
// THE LAYERS:
//
//	Handler (HTTP pages)  → parses forms, renders templates, redirects
//	Service (flows)       → validates, calls the remote API, updates the session
//	Client  (gateway)     → one HTTP round trip per call
//
// Handlers never talk to the API client directly, and the service never
// touches http.ResponseWriter. Services accept the client through small
// interfaces (AuthAPI, BookAPI) so tests can swap in fakes — the same
// dependency-injection shape the repository layer uses for SQLite.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mohmadimran/books-manager-frontend/internal/apperror"
	"github.com/mohmadimran/books-manager-frontend/internal/auth"
	"github.com/mohmadimran/books-manager-frontend/internal/model"
	"github.com/mohmadimran/books-manager-frontend/internal/session"
)

// Generic fallback messages, used when the backend fails without a usable
// message of its own. Exactly the copy shown to the user.
const (
	loginFallback  = "Login failed"
	signupFallback = "Signup failed"
)

// AuthAPI is the slice of the gateway client the auth flows need.
type AuthAPI interface {
	RegisterUser(ctx context.Context, name, email, password string) error
	LoginUser(ctx context.Context, email, password string) (*model.User, string, error)
}

// AuthService orchestrates the login and signup flows: local validation
// first (no network on failure), then the API call, then — for login
// only — session establishment.
type AuthService struct {
	api      AuthAPI
	sessions *session.Store
	logger   *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(api AuthAPI, sessions *session.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		api:      api,
		sessions: sessions,
		logger:   logger,
	}
}

// Login runs the full login flow.
//
// ORDER MATTERS:
//  1. Local validation — a failure stops here, the network is never touched.
//  2. API call — a failure surfaces the server's message or "Login failed";
//     the session is untouched.
//  3. Session establishment — only now does the app become authenticated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	if err := auth.ValidateLogin(email, password); err != nil {
		return nil, err
	}

	user, token, err := s.api.LoginUser(ctx, email, password)
	if err != nil {
		s.logger.Warn("login rejected by backend", slog.String("email", email))
		return nil, userFacing(err, loginFallback)
	}
	if user == nil || token == "" {
		// A 2xx with a gutted body — treat like any backend failure.
		return nil, userFacing(fmt.Errorf("login response missing user or token"), loginFallback)
	}

	if err := s.sessions.Establish(ctx, user, token); err != nil {
		return nil, userFacing(err, loginFallback)
	}

	s.logger.Info("user logged in", slog.String("user", user.Name))
	return user, nil
}

// Signup runs the registration flow. Registration never establishes a
// session — the user is prompted to log in afterwards.
func (s *AuthService) Signup(ctx context.Context, name, email, password, confirmPassword string) error {
	if err := auth.ValidateSignup(name, email, password, confirmPassword); err != nil {
		return err
	}

	if err := s.api.RegisterUser(ctx, name, email, password); err != nil {
		s.logger.Warn("signup rejected by backend", slog.String("email", email))
		return userFacing(err, signupFallback)
	}

	s.logger.Info("user registered", slog.String("email", email))
	return nil
}

// Logout clears the session store (and its persistence).
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// userFacing wraps err so that Error() returns something safe to show:
// the backend's own message when one exists, the per-flow fallback when
// it doesn't. The original error stays in the chain for errors.Is.
func userFacing(err error, fallback string) error {
	message := apperror.UserMessage(err)
	if message == "" {
		message = fallback
	}
	return &apperror.AppError{Err: err, Message: message}
}
