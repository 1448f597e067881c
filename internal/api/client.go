package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/config"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
)

const (
	defaultBaseURL = "http://localhost:8000/api/v1"
	apiPrefix      = "/api/v1"

	maxMaintenanceLimit = 100
)

// Client talks to the industrial AI backend. Idempotent calls are retried
// on transport errors and 5xx with exponential backoff. AI queries are only
// retried when the connection could not be established.
type Client struct {
	baseURL string
	rootURL string
	rest    *resty.Client
	ai      *resty.Client
}

func New(cfg config.API) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.AITimeout <= 0 {
		cfg.AITimeout = 60 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = 500 * time.Millisecond
	}
	if cfg.RetryMaxWait < cfg.RetryWait {
		cfg.RetryMaxWait = cfg.RetryWait
	}
	return &Client{
		baseURL: base,
		rootURL: strings.TrimSuffix(base, apiPrefix),
		rest:    newRestClient(base, cfg, cfg.Timeout),
		ai:      newRestClient(base, cfg, cfg.AITimeout),
	}
}

func newRestClient(base string, cfg config.API, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		AddRetryCondition(shouldRetry).
		AddRetryHook(logRetry).
		SetLogger(restyLogger{}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
}

func shouldRetry(r *resty.Response, err error) bool {
	post := r != nil && r.Request != nil && r.Request.Method == http.MethodPost
	if err != nil {
		if post {
			return neverSent(err)
		}
		return true
	}
	if r == nil || r.Request == nil {
		return false
	}
	return r.StatusCode() >= http.StatusInternalServerError && !post
}

// neverSent reports whether err happened while dialing, before any bytes of
// the request left the client. Timeouts may fire after the backend has
// started working, so they never count.
func neverSent(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return false
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func logRetry(r *resty.Response, err error) {
	ev := log.Warn()
	method := ""
	if r != nil && r.Request != nil {
		method = r.Request.Method
		ev = ev.Str("method", method).Str("url", r.Request.URL).Int("status", r.StatusCode()).Int("attempt", r.Request.Attempt)
	}
	metrics.UpstreamRetriesTotal.WithLabelValues(method).Inc()
	ev.Err(err).Msg("backend request failed, retrying")
}

// BaseURL is the /api/v1 root the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) ListEquipment(ctx context.Context) ([]models.Equipment, error) {
	var out []models.Equipment
	if err := c.do(ctx, c.rest, call{method: http.MethodGet, path: "/equipment"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEquipment(ctx context.Context, id string) (*models.Equipment, error) {
	var out models.Equipment
	err := c.do(ctx, c.rest, call{
		method:     http.MethodGet,
		path:       "/equipment/{id}",
		pathParams: map[string]string{"id": id},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EquipmentByStatus(ctx context.Context, status models.EquipmentStatus) ([]models.Equipment, error) {
	var out []models.Equipment
	err := c.do(ctx, c.rest, call{
		method:     http.MethodGet,
		path:       "/equipment/status/{status}",
		pathParams: map[string]string{"status": string(status)},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EquipmentAlerts lists alerts raised for one piece of equipment. A nil
// filter returns resolved and unresolved alerts alike.
func (c *Client) EquipmentAlerts(ctx context.Context, id string, resolved *bool) ([]models.Alert, error) {
	var out []models.Alert
	err := c.do(ctx, c.rest, call{
		method:     http.MethodGet,
		path:       "/equipment/{id}/alerts",
		pathParams: map[string]string{"id": id},
		query:      resolvedParam(resolved),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EquipmentMaintenance returns the newest maintenance log entries, limit
// clamped to 1..100.
func (c *Client) EquipmentMaintenance(ctx context.Context, id string, limit int) ([]models.MaintenanceLog, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > maxMaintenanceLimit {
		limit = maxMaintenanceLimit
	}
	var out []models.MaintenanceLog
	err := c.do(ctx, c.rest, call{
		method:     http.MethodGet,
		path:       "/equipment/{id}/maintenance",
		pathParams: map[string]string{"id": id},
		query:      map[string]string{"limit": strconv.Itoa(limit)},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Executive(ctx context.Context) (*models.DashboardMetrics, error) {
	var out models.DashboardMetrics
	if err := c.do(ctx, c.rest, call{method: http.MethodGet, path: "/dashboard/executive"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Operator(ctx context.Context) (*models.OperatorMetrics, error) {
	var out models.OperatorMetrics
	if err := c.do(ctx, c.rest, call{method: http.MethodGet, path: "/dashboard/operator"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Alerts lists alerts across all equipment. A nil filter sends no
// resolved parameter.
func (c *Client) Alerts(ctx context.Context, resolved *bool) ([]models.Alert, error) {
	var out []models.Alert
	err := c.do(ctx, c.rest, call{
		method: http.MethodGet,
		path:   "/dashboard/alerts",
		query:  resolvedParam(resolved),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ResolveAlert(ctx context.Context, id string) (*models.ResolveResult, error) {
	var out models.ResolveResult
	err := c.do(ctx, c.rest, call{
		method:     http.MethodPatch,
		path:       "/dashboard/alerts/{id}/resolve",
		pathParams: map[string]string{"id": id},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.AlertID == "" {
		out.AlertID = id
	}
	return &out, nil
}

func (c *Client) Query(ctx context.Context, q models.QueryRequest) (*models.QueryResponse, error) {
	var out models.QueryResponse
	if err := c.do(ctx, c.ai, call{method: http.MethodPost, path: "/ai/query", body: q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AIHealth(ctx context.Context) (*models.AIHealth, error) {
	var out models.AIHealth
	if err := c.do(ctx, c.rest, call{method: http.MethodGet, path: "/ai/health"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping hits the backend's own /health endpoint, which sits outside /api/v1.
func (c *Client) Ping(ctx context.Context) (*models.Health, error) {
	var out models.Health
	err := c.do(ctx, c.rest, call{
		method: http.MethodGet,
		path:   c.rootURL + "/health",
		label:  "/health",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type call struct {
	method     string
	path       string
	label      string
	pathParams map[string]string
	query      map[string]string
	body       any
}

func (c *Client) do(ctx context.Context, rc *resty.Client, cl call, out any) error {
	label := cl.label
	if label == "" {
		label = cl.path
	}

	req := rc.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())
	if len(cl.pathParams) > 0 {
		req.SetPathParams(cl.pathParams)
	}
	if len(cl.query) > 0 {
		req.SetQueryParams(cl.query)
	}
	if cl.body != nil {
		req.SetBody(cl.body)
	}

	start := time.Now()
	resp, err := req.Execute(cl.method, cl.path)
	metrics.UpstreamRequestDuration.WithLabelValues(cl.method, label).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(cl.method, label, "transport_error").Inc()
		return fmt.Errorf("%s %s: %w", cl.method, label, err)
	}

	if !resp.IsSuccess() {
		outcome := "client_error"
		if resp.StatusCode() >= http.StatusInternalServerError {
			outcome = "server_error"
		}
		metrics.UpstreamRequestsTotal.WithLabelValues(cl.method, label, outcome).Inc()
		return &Error{
			Method:     cl.method,
			Path:       label,
			StatusCode: resp.StatusCode(),
			Detail:     detailFrom(resp.Body()),
		}
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(cl.method, label, "ok").Inc()

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s %s: %w", cl.method, label, err)
	}
	return nil
}

func resolvedParam(resolved *bool) map[string]string {
	if resolved == nil {
		return nil
	}
	return map[string]string{"resolved": strconv.FormatBool(*resolved)}
}

// Bool is a helper for the optional resolved filters.
func Bool(v bool) *bool { return &v }
