package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/portfolio/backend/internal/model"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 15 * time.Second

// ErrEndpointNotConfigured is returned when no delivery endpoint is set.
var ErrEndpointNotConfigured = errors.New("contact: endpoint not configured")

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("contact: endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("contact: endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// Sender delivers a validated submission. Implementations make exactly one attempt.
type Sender interface {
	Send(ctx context.Context, s model.ContactSubmission) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, s model.ContactSubmission) error

func (f SenderFunc) Send(ctx context.Context, s model.ContactSubmission) error { return f(ctx, s) }

// HTTPSender posts submissions as JSON to a fixed endpoint.
type HTTPSender struct {
	Endpoint   string
	httpClient *http.Client
}

// NewHTTPSender creates an HTTPSender. timeout <= 0 selects DefaultTimeout.
func NewHTTPSender(endpoint string, timeout time.Duration) *HTTPSender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSender{
		Endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ Sender = (*HTTPSender)(nil)

// Send issues one POST with body {"name","email","message"}. Any 2xx response
// is a success; the response body is discarded.
func (c *HTTPSender) Send(ctx context.Context, s model.ContactSubmission) error {
	if c.Endpoint == "" {
		return ErrEndpointNotConfigured
	}

	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("contact: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("contact: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("contact: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
