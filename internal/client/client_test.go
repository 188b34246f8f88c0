package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohmadimran/books-manager-frontend/internal/apperror"
	"github.com/mohmadimran/books-manager-frontend/internal/model"
)

// capturedRequest records what the fake backend saw, so tests can assert
// on the exact wire traffic.
type capturedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   []byte
}

// newTestClient spins up an httptest server that records every request and
// replies with the given status and body.
func newTestClient(t *testing.T, tokens TokenSource, status int, responseBody string) (*Client, *[]capturedRequest) {
	t.Helper()

	var captured []capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured = append(captured, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(responseBody))
	}))
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	c, err := New(Config{BaseURL: server.URL, Tokens: tokens, Logger: logger})
	require.NoError(t, err)

	return c, &captured
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestDo_AttachesBearerTokenWhenPresent(t *testing.T) {
	c, captured := newTestClient(t, StaticToken("tok-123"), http.StatusOK, `[]`)

	_, err := c.ListBooks(context.Background())
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	assert.Equal(t, "Bearer tok-123", (*captured)[0].Auth)
}

func TestDo_NoAuthHeaderWhenAnonymous(t *testing.T) {
	c, captured := newTestClient(t, StaticToken(""), http.StatusOK, `[]`)

	_, err := c.ListBooks(context.Background())
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	assert.Empty(t, (*captured)[0].Auth)
}

func TestLoginUser_ParsesTokenAndUser(t *testing.T) {
	body := `{"token":"tok-xyz","user":{"id":"u1","name":"Imran","email":"imran@example.com"}}`
	c, captured := newTestClient(t, nil, http.StatusOK, body)

	user, token, err := c.LoginUser(context.Background(), "imran@example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "tok-xyz", token)
	require.NotNil(t, user)
	assert.Equal(t, "Imran", user.Name)

	require.Len(t, *captured, 1)
	assert.Equal(t, http.MethodPost, (*captured)[0].Method)
	assert.Equal(t, "/api/auth/login", (*captured)[0].Path)
	assert.JSONEq(t, `{"email":"imran@example.com","password":"secret1"}`, string((*captured)[0].Body))
}

func TestRegisterUser_PostsSignupBody(t *testing.T) {
	c, captured := newTestClient(t, nil, http.StatusCreated, `{}`)

	err := c.RegisterUser(context.Background(), "Imran", "imran@example.com", "secret1")
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	assert.Equal(t, "/api/auth/signup", (*captured)[0].Path)
	assert.JSONEq(t,
		`{"name":"Imran","email":"imran@example.com","password":"secret1"}`,
		string((*captured)[0].Body))
}

func TestListBooks_DecodesMongoIDs(t *testing.T) {
	body := `[{"_id":"b1","title":"Dune","author":"Herbert","tags":["sci-fi"],"status":"Reading"}]`
	c, _ := newTestClient(t, StaticToken("tok"), http.StatusOK, body)

	books, err := c.ListBooks(context.Background())
	require.NoError(t, err)

	require.Len(t, books, 1)
	assert.Equal(t, "b1", books[0].ID)
	assert.Equal(t, model.StatusReading, books[0].Status)
}

func TestUpdateBook_StatusOnlyPatchSendsJustStatus(t *testing.T) {
	// The inline status dropdown must not resend title/author/tags.
	c, captured := newTestClient(t, StaticToken("tok"), http.StatusOK, `{"_id":"42"}`)

	_, err := c.UpdateBook(context.Background(), "42", StatusPatch(model.StatusCompleted))
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	assert.Equal(t, http.MethodPut, (*captured)[0].Method)
	assert.Equal(t, "/api/books/42", (*captured)[0].Path)
	assert.JSONEq(t, `{"status":"Completed"}`, string((*captured)[0].Body))
}

func TestUpdateBook_FullPatchSendsAllFields(t *testing.T) {
	c, captured := newTestClient(t, StaticToken("tok"), http.StatusOK, `{"_id":"42"}`)

	in := BookInput{
		Title:  "Dune",
		Author: "Herbert",
		Tags:   []string{"fiction", "", "Sci-Fi"},
		Status: model.StatusWantToRead,
	}
	_, err := c.UpdateBook(context.Background(), "42", PatchFromInput(in))
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal((*captured)[0].Body, &sent))
	assert.Len(t, sent, 4)
}

func TestDeleteBook_IssuesDelete(t *testing.T) {
	c, captured := newTestClient(t, StaticToken("tok"), http.StatusOK, ``)

	require.NoError(t, c.DeleteBook(context.Background(), "b9"))

	require.Len(t, *captured, 1)
	assert.Equal(t, http.MethodDelete, (*captured)[0].Method)
	assert.Equal(t, "/api/books/b9", (*captured)[0].Path)
}

func TestAPIError_CarriesServerMessage(t *testing.T) {
	c, _ := newTestClient(t, nil, http.StatusBadRequest, `{"message":"Email already registered"}`)

	err := c.RegisterUser(context.Background(), "Imran", "imran@example.com", "secret1")
	require.Error(t, err)

	assert.Equal(t, "Email already registered", apperror.UserMessage(err))
	assert.True(t, errors.Is(err, apperror.ErrUnavailable))
}

func TestAPIError_Unauthorized(t *testing.T) {
	c, _ := newTestClient(t, StaticToken("expired"), http.StatusUnauthorized, `{"message":"invalid token"}`)

	_, err := c.ListBooks(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}

func TestAPIError_UnparseableBodyYieldsEmptyMessage(t *testing.T) {
	// A proxy error page instead of JSON: the flow falls back to its
	// generic message, so the client must report an empty one.
	c, _ := newTestClient(t, nil, http.StatusBadGateway, `<html>Bad Gateway</html>`)

	_, err := c.ListBooks(context.Background())
	require.Error(t, err)
	assert.Empty(t, apperror.UserMessage(err))
}
