// Package api is the authenticated client for the travel-expense backend.
// Every call obtains a currently-valid access token from the session manager
// before dispatch, so requests are never sent with a token known to be stale.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/voyago/traveldesk/pkg/idx"
	"github.com/voyago/traveldesk/pkg/slogx"
)

// TokenSource is the slice of the session manager the client needs.
type TokenSource interface {
	GetValidAccessToken(ctx context.Context) (string, error)
}

// Client talks to the expense backend on behalf of the signed-in user.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	tokens TokenSource
}

// NewClient creates a backend client bound to the given token source.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		tokens: tokens,
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do performs an authenticated request. The token is acquired first: if the
// session is expired the request is never dispatched. The response body is
// returned raw; callers decode it via decodeJSON or expectStatus.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	token, err := c.tokens.GetValidAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	// The request id rides both the wire and the log line, so a backend
	// trace and a client log can be matched up.
	reqID := idx.New().String()
	ctx = slogx.WithRequestID(ctx, reqID)

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-Id", reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	slogx.FromContext(ctx).Debug("backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
	)

	return resp, nil
}

// decodeJSON decodes a response into target, expecting the given status.
// Any other status becomes a *BackendError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseBackendError(resp, body)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// expectStatus drains the response and checks the status code only.
func expectStatus(resp *http.Response, expectedStatus int) error {
	defer resp.Body.Close()

	if resp.StatusCode != expectedStatus {
		body, _ := io.ReadAll(resp.Body)
		return parseBackendError(resp, body)
	}

	return nil
}
