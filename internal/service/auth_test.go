package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohmadimran/books-manager-frontend/internal/apperror"
	"github.com/mohmadimran/books-manager-frontend/internal/model"
	"github.com/mohmadimran/books-manager-frontend/internal/session"
)

// mockAuthAPI implements AuthAPI in memory, recording calls so tests can
// assert that local validation failures never reach the network.
type mockAuthAPI struct {
	loginCalls  int
	signupCalls int

	loginUser  *model.User
	loginToken string
	loginErr   error
	signupErr  error
}

func (m *mockAuthAPI) LoginUser(_ context.Context, email, password string) (*model.User, string, error) {
	m.loginCalls++
	if m.loginErr != nil {
		return nil, "", m.loginErr
	}
	return m.loginUser, m.loginToken, nil
}

func (m *mockAuthAPI) RegisterUser(_ context.Context, name, email, password string) error {
	m.signupCalls++
	return m.signupErr
}

// memRepo is an in-memory session repository.
type memRepo struct {
	token, user string
}

func (m *memRepo) Load(context.Context) (string, string, error) { return m.token, m.user, nil }
func (m *memRepo) Save(_ context.Context, t, u string) error    { m.token, m.user = t, u; return nil }
func (m *memRepo) Clear(context.Context) error                  { m.token, m.user = "", ""; return nil }

func newTestAuthService(t *testing.T, api *mockAuthAPI) (*AuthService, *session.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	sessions := session.NewStore(&memRepo{}, logger)
	return NewAuthService(api, sessions, logger), sessions
}

func TestLogin_InvalidEmailNeverHitsNetwork(t *testing.T) {
	api := &mockAuthAPI{}
	svc, sessions := newTestAuthService(t, api)

	_, err := svc.Login(context.Background(), "bad-email", "whatever")

	require.Error(t, err)
	assert.Equal(t, "Invalid email format", err.Error())
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Zero(t, api.loginCalls, "validation failure must not reach the API")
	assert.False(t, sessions.IsAuthenticated())
}

func TestLogin_SuccessEstablishesSession(t *testing.T) {
	api := &mockAuthAPI{
		loginUser:  &model.User{ID: "u1", Name: "Imran", Email: "imran@example.com"},
		loginToken: "tok-1",
	}
	svc, sessions := newTestAuthService(t, api)

	user, err := svc.Login(context.Background(), "imran@example.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "Imran", user.Name)
	assert.True(t, sessions.IsAuthenticated())
	assert.Equal(t, "tok-1", sessions.Token())
}

func TestLogin_BackendFailurePrefersServerMessage(t *testing.T) {
	api := &mockAuthAPI{
		loginErr: apperror.Upstream(apperror.ErrUnauthorized, "Invalid credentials"),
	}
	svc, sessions := newTestAuthService(t, api)

	_, err := svc.Login(context.Background(), "imran@example.com", "wrong")

	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.False(t, sessions.IsAuthenticated(), "failed login must not touch the session")
}

func TestLogin_TransportFailureFallsBackToGenericMessage(t *testing.T) {
	api := &mockAuthAPI{loginErr: errors.New("connection refused")}
	svc, sessions := newTestAuthService(t, api)

	_, err := svc.Login(context.Background(), "imran@example.com", "secret1")

	require.Error(t, err)
	assert.Equal(t, "Login failed", err.Error())
	assert.False(t, sessions.IsAuthenticated())
}

func TestSignup_SuccessDoesNotEstablishSession(t *testing.T) {
	api := &mockAuthAPI{}
	svc, sessions := newTestAuthService(t, api)

	err := svc.Signup(context.Background(), "Imran", "imran@example.com", "abcdef", "abcdef")

	require.NoError(t, err)
	assert.Equal(t, 1, api.signupCalls)
	assert.False(t, sessions.IsAuthenticated(), "signup must not log the user in")
}

func TestSignup_ShortPasswordNeverHitsNetwork(t *testing.T) {
	api := &mockAuthAPI{}
	svc, _ := newTestAuthService(t, api)

	err := svc.Signup(context.Background(), "Imran", "imran@example.com", "abc12", "abc12")

	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters", err.Error())
	assert.Zero(t, api.signupCalls)
}

func TestSignup_MismatchedConfirmation(t *testing.T) {
	api := &mockAuthAPI{}
	svc, _ := newTestAuthService(t, api)

	err := svc.Signup(context.Background(), "Imran", "imran@example.com", "abcdef", "abcdeg")

	require.Error(t, err)
	assert.Equal(t, "Passwords do not match", err.Error())
	assert.Zero(t, api.signupCalls)
}

func TestSignup_BackendFailureFallsBack(t *testing.T) {
	api := &mockAuthAPI{signupErr: errors.New("boom")}
	svc, _ := newTestAuthService(t, api)

	err := svc.Signup(context.Background(), "Imran", "imran@example.com", "abcdef", "abcdef")

	require.Error(t, err)
	assert.Equal(t, "Signup failed", err.Error())
}

func TestLogout_ClearsSession(t *testing.T) {
	api := &mockAuthAPI{
		loginUser:  &model.User{ID: "u1", Name: "Imran"},
		loginToken: "tok",
	}
	svc, sessions := newTestAuthService(t, api)

	_, err := svc.Login(context.Background(), "imran@example.com", "secret1")
	require.NoError(t, err)
	require.True(t, sessions.IsAuthenticated())

	require.NoError(t, svc.Logout(context.Background()))
	assert.False(t, sessions.IsAuthenticated())
}
