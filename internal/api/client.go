// Package api implements the typed client for the BookCourier backend REST
// API. It is the only place in the codebase that talks to the network: it
// attaches the bearer token, translates error responses into structured
// errors, and normalizes loosely-shaped payloads at the boundary.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/bookcourier/bookcourier/pkg/errors"
	"github.com/bookcourier/bookcourier/pkg/httpclient"
	"github.com/bookcourier/bookcourier/pkg/logger"
)

// HTTPDoer is the interface for executing HTTP requests. Both
// httpclient.Client and httpclient.CircuitBreakerClient satisfy it.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// TokenSource yields the current bearer token, or empty when signed out.
// session.Session satisfies it.
type TokenSource interface {
	Token() string
}

// Client is the typed BookCourier API client.
type Client struct {
	baseURL string
	http    HTTPDoer
	tokens  TokenSource
	logger  *slog.Logger
}

// NewClient creates a new API client. baseURL must not end with a slash.
func NewClient(baseURL string, doer HTTPDoer, tokens TokenSource, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
		tokens:  tokens,
		logger:  log,
	}
}

// newRequest builds a JSON API request. When authed is true the current
// bearer token is attached; a missing token fails fast with NotSignedIn
// before anything reaches the network.
func (c *Client) newRequest(ctx context.Context, method, path string, body any, authed bool) (*http.Request, error) {
	var reader io.Reader = http.NoBody
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		// Keep the body replayable for the retrying transport.
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(raw)), nil
		}
	}

	correlationID := logger.CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	req.Header.Set("X-Correlation-ID", correlationID)

	if authed {
		token := c.tokens.Token()
		if token == "" {
			return nil, apperrors.NotSignedIn()
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// do executes the request and decodes a successful JSON response into out
// (skipped when out is nil). Non-2xx responses are translated into
// AppErrors carrying the server's message.
func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call bookcourier api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpclient.ParseResponseError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// getJSON issues an authenticated or public GET and decodes the body.
func (c *Client) getJSON(ctx context.Context, path string, authed bool, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, authed)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

// envelope is the common success/message wrapper around API responses.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// reject converts a success=false envelope on a 2xx response into an error.
// Some endpoints report application-level failures this way.
func (e envelope) reject() error {
	if e.Success {
		return nil
	}
	msg := e.Message
	if msg == "" {
		msg = "request was not successful"
	}
	return &apperrors.AppError{
		Code:    "REQUEST_FAILED",
		Message: msg,
		Status:  http.StatusBadRequest,
		Err:     apperrors.ErrInvalidInput,
	}
}
