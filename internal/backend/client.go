// Package backend talks to the external storefront API that owns products,
// orders, users and content.
package backend

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
	"strings"

	"github.com/google/uuid"
	"github.com/wichananm65/storefront/internal/metrics"
)

const HeaderRequestID = "X-Request-ID"

// Client issues JSON requests against the backend base URL.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     *slog.Logger
	metrics *metrics.Metrics
}

func New(baseURL string, httpClient *http.Client, log *slog.Logger, m *metrics.Metrics) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: scheme and host required", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{baseURL: u, http: httpClient, log: log, metrics: m}, nil
}

// Do sends in (when non-nil) as JSON and decodes a 2xx response into out
// (when non-nil). token, when set, is sent as a bearer credential.
// Non-2xx responses return *APIError; transport failures wrap ErrUnavailable.
func (c *Client) Do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	reqID := uuid.NewString()
	req.Header.Set(HeaderRequestID, reqID)

	res, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveBackendRequest(method, 0)
		c.log.Warn("backend request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer res.Body.Close()
	c.metrics.ObserveBackendRequest(method, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", ErrUnavailable, method, path, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode, Message: errorMessage(raw)}
		c.log.Debug("backend rejected request", "method", method, "path", path, "status", res.StatusCode, "request_id", reqID)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Get is a shorthand for an unauthenticated GET.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, "", nil, out)
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL.String() + path
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
