// Package classifier is the HTTP client for the remote handwriting
// classifier service.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/soocke/glyphpad/assets"
	"github.com/soocke/glyphpad/config"
	"github.com/soocke/glyphpad/domain/predict"
)

const (
	predictPath = "/predict"
	healthPath  = "/health"

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 1 << 20
	// maxErrorBody caps the body excerpt kept on a TransportError.
	maxErrorBody = 512

	DefaultTimeout = 30 * time.Second
)

// HealthStatus mirrors the service's /health body.
type HealthStatus struct {
	Status       string          `json:"status"`
	ModelsLoaded map[string]bool `json:"models_loaded"`
}

// Unloaded returns the known models the service reports as not loaded.
func (h *HealthStatus) Unloaded() []predict.ModelChoice {
	if h == nil {
		return nil
	}
	var out []predict.ModelChoice
	for _, m := range predict.Models() {
		if !h.ModelsLoaded[string(m)] {
			out = append(out, m)
		}
	}
	return out
}

// Client talks to one classifier base URL. Safe for concurrent use.
type Client struct {
	mu     sync.RWMutex
	base   *url.URL
	http   *http.Client
	logger *slog.Logger
	schema *jsonschema.Schema
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

// New returns a client for baseURL, e.g. http://localhost:5000.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := config.ParseEndpoint(baseURL)
	if err != nil {
		return nil, err
	}
	schema, err := assets.PredictionResponseSchema()
	if err != nil {
		return nil, err
	}
	c := &Client{base: u, http: &http.Client{Timeout: DefaultTimeout}, schema: schema}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Endpoint returns the configured base URL.
func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.base.String()
}

// Reconfigure points the client at a new base URL and timeout. Requests
// already in flight keep their original target. A non-positive timeout
// keeps the current one.
func (c *Client) Reconfigure(baseURL string, timeout time.Duration) error {
	u, err := config.ParseEndpoint(baseURL)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = u
	if timeout > 0 && timeout != c.http.Timeout {
		hc := *c.http
		hc.Timeout = timeout
		c.http = &hc
	}
	if c.logger != nil {
		c.logger.Info("classifier reconfigured", "endpoint", u.String(), "timeout", c.http.Timeout)
	}
	return nil
}

// target snapshots the URL for path and the http client to use.
func (c *Client) target(path string) (string, *http.Client) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.base.JoinPath(path).String(), c.http
}

// Classify posts req to /predict. Non-2xx responses yield
// *predict.TransportError. A 2xx body that is not valid JSON or violates the
// response schema yields *predict.UnexpectedFault.
func (c *Client) Classify(ctx context.Context, req predict.Request) (*predict.Payload, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	target, hc := c.target(predictPath)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	id := predict.RequestID(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", id)

	start := time.Now()
	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, &predict.UnexpectedFault{Err: fmt.Errorf("post %s: %w", predictPath, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &predict.UnexpectedFault{Err: fmt.Errorf("read response: %w", err)}
	}
	if c.logger != nil {
		c.logger.Debug("classifier response", "request_id", id, "status", resp.StatusCode, "bytes", len(raw), "elapsed", time.Since(start))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := string(raw)
		if len(excerpt) > maxErrorBody {
			excerpt = excerpt[:maxErrorBody]
		}
		return nil, &predict.TransportError{StatusCode: resp.StatusCode, Status: resp.Status, Body: excerpt}
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &predict.UnexpectedFault{Err: fmt.Errorf("decode response: %w", err)}
	}
	if err := c.schema.Validate(doc); err != nil {
		return nil, &predict.UnexpectedFault{Err: fmt.Errorf("invalid response: %w", err)}
	}
	var p predict.Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &predict.UnexpectedFault{Err: fmt.Errorf("decode response: %w", err)}
	}
	return &p, nil
}

// Health queries /health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	target, hc := c.target(healthPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", healthPath, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &predict.TransportError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	var h HealthStatus
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&h); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	if h.Status == "" {
		return nil, errors.New("decode health: missing status")
	}
	return &h, nil
}
