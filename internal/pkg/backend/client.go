package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnavailable covers network failures and responses that are not the
// backend's JSON envelope.
var ErrUnavailable = errors.New("backend is unavailable")

// APIError is a business failure reported by the backend (success:false).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error [%d]: %s", e.StatusCode, e.Message)
}

// Envelope is the backend's response wrapper.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error,omitempty"`
}

// Client talks to the recruitment backend. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client. A zero timeout means requests are
// bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and decodes the envelope's data into out (when non-nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, token string, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	return c.do(req, token, out)
}

// PostForm issues a multipart POST, the way the browser sends FormData.
func (c *Client) PostForm(ctx context.Context, path string, fields url.Values, token string, out interface{}) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range fields[k] {
			if err := writer.WriteField(k, v); err != nil {
				return fmt.Errorf("failed to write form field %s: %w", k, err)
			}
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, token, out)
}

func (c *Client) do(req *http.Request, token string, out interface{}) error {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Backend request failed", "method", req.Method, "path", req.URL.Path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	slog.Debug("Backend request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: unexpected response (status %d)", ErrUnavailable, resp.StatusCode)
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode, Message: env.failureMessage()}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: failed to decode data: %v", ErrUnavailable, err)
	}
	return nil
}

// failureMessage picks the most specific message the backend gave.
func (e Envelope) failureMessage() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	if len(e.Error) > 0 {
		var detail struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(e.Error, &detail); err == nil && strings.TrimSpace(detail.Message) != "" {
			return detail.Message
		}
		var text string
		if err := json.Unmarshal(e.Error, &text); err == nil && strings.TrimSpace(text) != "" {
			return text
		}
	}
	return "request failed"
}

// Message extracts what a user should see for err: the backend's own
// message for business failures, a generic text otherwise.
func Message(err error, generic string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return generic
}
