package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pos-kiosk-demo/internal/model"
	"pos-kiosk-demo/internal/parse"
)

// Client talks to the handoff server on behalf of the kiosk.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the server base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status fetches the polled view of a session.
func (c *Client) Status(ctx context.Context, sessionID string) (model.Status, error) {
	var status model.Status
	err := c.do(ctx, http.MethodGet, "/status/"+url.PathEscape(sessionID), nil, &status)
	return status, err
}

// Register creates the session with the amount shown on the kiosk.
func (c *Client) Register(ctx context.Context, sessionID, amount string) error {
	v, _ := parse.ParseAmount(amount)
	body := map[string]any{"sessionId": sessionID, "amount": v}
	return c.do(ctx, http.MethodPost, "/register-session", body, nil)
}

// AppReady tells the server the phone app has opened the session.
func (c *Client) AppReady(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodPost, "/app-ready/"+url.PathEscape(sessionID), nil, nil)
}

// HandoffComplete tells the server the phone app finished the handoff.
func (c *Client) HandoffComplete(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodPost, "/handoff-complete/"+url.PathEscape(sessionID), nil, nil)
}

// SimulateScan hits the QR entry point the way a phone camera would.
func (c *Client) SimulateScan(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodGet, "/scan/"+url.PathEscape(sessionID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		jsonBody, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: received status code %d", method, path, resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
