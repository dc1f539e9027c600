// internal/client/client.go
//
// HTTP client for the submission endpoint.
//
// Context
//   Client satisfies form.Submitter, so the terminal client drives the
//   same form.Submit gate the HTML page uses and only the transport
//   differs.  Non-200 replies come back as *ResponseError, which unwraps
//   to the matching feedback sentinel: errors.Is(err,
//   feedback.ErrMissingRequired) and errors.As(err, &*feedback.ValidationError)
//   work exactly as they do against the relay service in-process.
//
//------------------------------------------------------------------------------

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yanizio/feedback/internal/api"
	"github.com/yanizio/feedback/internal/feedback"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 30 * time.Second

	submitPath = "/api/feedback"
)

// Client posts submissions to a running service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New returns a Client for baseURL (scheme and host, no path).  Empty
// means DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResponseError is a non-200 reply.
type ResponseError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("feedback api: %d %s", e.Status, e.Message)
}

// Unwrap maps a 400 onto the feedback sentinels.
func (e *ResponseError) Unwrap() error {
	if e.Status != http.StatusBadRequest {
		return nil
	}
	if len(e.Fields) > 0 {
		return &feedback.ValidationError{Fields: e.Fields}
	}
	if e.Message == feedback.RequiredFieldsMessage {
		return feedback.ErrMissingRequired
	}
	return nil
}

// Submit posts s and returns the server's confirmation message.
func (c *Client) Submit(ctx context.Context, s feedback.Submission) (string, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post feedback: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, api.MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out api.Response
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", &ResponseError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return "", fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ResponseError{Status: resp.StatusCode, Message: out.Message, Fields: out.Fields}
	}
	return out.Message, nil
}
