package instana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client is a minimal HTTP client for the Instana REST API. Each method
// performs exactly one HTTP request; retries are the pipeline's concern.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
}

// NewClient returns a client for the given tenant. If httpClient is nil, a
// default with a 15s timeout is used. If log is nil, logging is disabled.
func NewClient(baseURL, token string, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
		log:     log.With("component", "instana"),
	}
}

// ApplicationMetricsV2 fetches aggregated application metrics over a time
// window, grouped per application.
func (c *Client) ApplicationMetricsV2(ctx context.Context, q MetricsQuery) (map[string]any, error) {
	return c.postJSON(ctx, "get_application_data_metrics_v2", "/api/application-monitoring/v2/metrics/applications", q)
}

// ServiceMetricsV2 fetches aggregated service metrics over a time window.
func (c *Client) ServiceMetricsV2(ctx context.Context, q MetricsQuery) (map[string]any, error) {
	return c.postJSON(ctx, "get_service_data_metrics_v2", "/api/application-monitoring/v2/metrics/services", q)
}

// EndpointMetricsV2 fetches aggregated endpoint metrics over a time window.
func (c *Client) EndpointMetricsV2(ctx context.Context, q MetricsQuery) (map[string]any, error) {
	return c.postJSON(ctx, "get_endpoint_data_metrics_v2", "/api/application-monitoring/v2/metrics/endpoints", q)
}

// WebsiteMetricsV2 fetches aggregated website beacon metrics.
func (c *Client) WebsiteMetricsV2(ctx context.Context, q WebsiteMetricsQuery) (map[string]any, error) {
	return c.postJSON(ctx, "get_website_metrics_v2", "/api/website-monitoring/v2/metrics", q)
}

// InfrastructureMetrics fetches infrastructure entity metrics matching a
// dynamic-focus query.
func (c *Client) InfrastructureMetrics(ctx context.Context, q InfraQuery) (map[string]any, error) {
	return c.postJSON(ctx, "get_infrastructure_metrics", "/api/infrastructure-monitoring/metrics", q)
}

// Events fetches the events that ended within the window reaching back
// windowSize milliseconds from the to timestamp.
func (c *Client) Events(ctx context.Context, to, windowSize int64) (map[string]any, error) {
	const op = "get_events"

	params := url.Values{}
	params.Set("to", strconv.FormatInt(to, 10))
	params.Set("windowSize", strconv.FormatInt(windowSize, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/events?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var events []any
	if err := c.do(op, req, &events); err != nil {
		return nil, err
	}
	return map[string]any{"events": events, "count": len(events)}, nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out map[string]any
	if err := c.do(op, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(op string, req *http.Request, out any) error {
	req.Header.Set("Authorization", "apiToken "+c.token)
	req.Header.Set("Accept", "application/json")

	c.log.Debug("calling Instana API", "operation", op, "url", req.URL.Path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
