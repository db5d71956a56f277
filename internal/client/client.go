package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Envelope is the uniform wrapper the retail backend puts around every
// response: {status, data, message, error, meta}.
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Meta    json.RawMessage `json:"meta"`
}

// BackendError is the single failure path for collaborator calls.
// HTTP-level failures and envelope-level failures (status != "success")
// both land here, regardless of the HTTP status code.
type BackendError struct {
	Op      string
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Client talks to the retail backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// do performs one backend call and decodes the envelope's data field
// into out (when out is non-nil). Any failure returns a *BackendError.
func (c *Client) do(ctx context.Context, op, method, path string, userID string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &BackendError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &BackendError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &BackendError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &BackendError{Op: op, Err: fmt.Errorf("decode envelope: %w", err)}
	}

	if env.Status != "success" {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("backend returned status %q (http %d)", env.Status, resp.StatusCode)
		}
		return &BackendError{Op: op, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &BackendError{Op: op, Err: fmt.Errorf("decode data: %w", err)}
		}
	}
	return nil
}
