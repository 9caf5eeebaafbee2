package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps calls to the chatbot API for external callers (the terminal
// frontend, smoke tests)
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Chat sends one message and returns the recorded turn
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*Turn, error) {
	var turn Turn
	if err := c.doJSON(ctx, http.MethodPost, "/chat", req, &turn); err != nil {
		return nil, err
	}
	return &turn, nil
}

// History fetches every turn recorded for a session
func (c *Client) History(ctx context.Context, sessionID string) ([]Turn, error) {
	path := "/history/" + url.PathEscape(sessionID)

	var turns []Turn
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

// Health checks the API root endpoint
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/", nil, nil)
}

// doJSON is a helper to perform JSON requests against the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Failed requests carry the error envelope
		b, _ := io.ReadAll(resp.Body)

		var envelope ApiResponse[Turn]
		if err := json.Unmarshal(b, &envelope); err == nil && envelope.Message != "" {
			return fmt.Errorf("backend '%s %s' failed: %d (%s): %s", method, path, resp.StatusCode, envelope.Error, envelope.Message)
		}
		return fmt.Errorf("backend '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
