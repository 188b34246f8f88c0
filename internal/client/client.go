// Package client is the typed HTTP client for the remote books-manager API.
//
// This is the only place in the app that speaks HTTP to the backend. It is
// configured once with a fixed base address and attaches the bearer token
// from the session store to every outgoing request — the Go equivalent of
// an axios instance with a request interceptor.
//
// DELIBERATELY THIN:
// No retries, no request deduplication, no caching. Every method is a
// single round trip; the collection view's reload-after-mutation cycle is
// built on that guarantee.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rs/xid"
	"github.com/tidwall/gjson"

	"github.com/mohmadimran/books-manager-frontend/internal/apperror"
)

// TokenSource supplies the current bearer token, or "" when the session is
// anonymous. The session store implements this; tests swap in a literal.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource, handy in tests.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Config holds client configuration.
type Config struct {
	BaseURL string
	Tokens  TokenSource  // optional: nil means every request is anonymous
	HTTP    *http.Client // optional: defaults to http.DefaultClient's behaviour
	Logger  *slog.Logger
}

// Client talks to the remote books-manager service.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Client. The base URL is the only required setting.
//
// NO CLIENT-SIDE TIMEOUT:
// We intentionally leave the http.Client's Timeout at zero and rely on the
// transport's defaults, matching the backend contract (the app defines no
// timeout policy of its own).
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("client: base URL is required")
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		tokens:  cfg.Tokens,
		http:    httpClient,
		logger:  logger,
	}, nil
}

// do performs one API round trip: marshal body, attach headers, execute,
// classify the response, decode into out.
//
// AUTH HEADER:
// When the token source has a token, we send "Authorization: Bearer <tok>".
// When it doesn't, the request goes out bare — protected endpoints will
// reject it server-side, which is the contract we want (the client never
// pre-judges auth state).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: building %s %s: %w", method, path, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	// Correlate client logs with backend logs.
	requestID := xid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("api request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("requestID", requestID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("client: reading %s %s response: %w", method, path, err)
	}

	c.logger.Debug("api request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", res.StatusCode),
		slog.String("requestID", requestID),
	)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.apiError(res.StatusCode, payload)
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("client: decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// apiError turns a non-2xx response into a domain error carrying the
// backend's human-readable message.
//
// WHY gjson?
// Error bodies are the least reliable part of any API — sometimes
// {"message": "..."}, sometimes HTML from a proxy, sometimes nothing.
// gjson extracts the message field leniently without failing the whole
// parse; a missing or malformed body just yields an empty message and the
// caller falls back to its per-flow generic text.
func (c *Client) apiError(status int, payload []byte) error {
	message := gjson.GetBytes(payload, "message").String()

	sentinel := apperror.ErrUnavailable
	switch status {
	case http.StatusUnauthorized:
		// An invalid/expired token surfaces like any other failure;
		// the session store is never cleared from here.
		sentinel = apperror.ErrUnauthorized
	case http.StatusNotFound:
		sentinel = apperror.ErrNotFound
	}

	return fmt.Errorf("client: api returned %d: %w", status, apperror.Upstream(sentinel, message))
}
