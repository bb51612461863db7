// Package probe checks a greeter health endpoint from the outside, for use
// as a container HEALTHCHECK where no HTTP client binary is available.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Defaults for the probe.
const (
	DefaultURL     = "http://127.0.0.1:5000/healthz"
	DefaultTimeout = 3 * time.Second
	DefaultExpect  = "OK"

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 4 << 10
)

// Config holds configuration for one probe.
type Config struct {
	URL     string        // Health endpoint to query
	Timeout time.Duration // Whole-request timeout
	Expect  string        // Expected body, compared after trimming whitespace
}

// Result describes a successful probe.
type Result struct {
	StatusCode int
	Body       string
	RequestID  string
	Latency    time.Duration
}

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a new HTTP client with timeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Check performs a single GET against cfg.URL and verifies status and body.
func (c *HTTPClient) Check(ctx context.Context, cfg Config) (Result, error) {
	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	res := Result{RequestID: uuid.NewString()}
	req.Header.Set("X-Request-ID", res.RequestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("%w: read body: %w", ErrRequest, err)
	}
	res.Latency = time.Since(start)
	res.StatusCode = resp.StatusCode
	res.Body = string(body)

	if resp.StatusCode != http.StatusOK {
		return res, fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	if strings.TrimSpace(res.Body) != cfg.Expect {
		return res, fmt.Errorf("%w: got %q, want %q", ErrUnexpectedBody, res.Body, cfg.Expect)
	}
	return res, nil
}

// Run probes once with a client built from cfg.
func Run(ctx context.Context, cfg Config) (Result, error) {
	return NewHTTPClient(cfg.Timeout).Check(ctx, cfg)
}
