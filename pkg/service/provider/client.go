package provider

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/waterlens/tapcheck/pkg/domain/interfaces"
	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/domain/types"
	"github.com/waterlens/tapcheck/pkg/utils/metrics"
)

// Default upstream endpoints
const (
	DefaultEWGBaseURL = "https://ewgapi.waterdropfilter.com"
	DefaultEPABaseURL = "https://data.epa.gov/efservice"
	DefaultTimeout    = 10 * time.Second
)

// Provider names used in logs and metrics
const (
	NameEWGSystems      = "ewg_systems"
	NameEWGContaminants = "ewg_contaminants"
	NameEPAFacility     = "epa_facility"
)

// maxBodySize bounds how much of an upstream body is read
const maxBodySize = 8 << 20

// Client talks to the EWG (Waterdrop) and EPA Envirofacts APIs
type Client struct {
	httpClient *http.Client
	ewgBaseURL string
	epaBaseURL string
	clock      clockwork.Clock
	metrics    *metrics.Metrics
}

var _ interfaces.Provider = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithEWGBaseURL overrides the EWG API base URL
func WithEWGBaseURL(u string) Option {
	return func(client *Client) {
		client.ewgBaseURL = u
	}
}

// WithEPABaseURL overrides the EPA Envirofacts base URL
func WithEPABaseURL(u string) Option {
	return func(client *Client) {
		client.epaBaseURL = u
	}
}

// WithClock sets the clock used to time upstream requests
func WithClock(c clockwork.Clock) Option {
	return func(client *Client) {
		client.clock = c
	}
}

// WithMetrics records upstream request metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(client *Client) {
		client.metrics = m
	}
}

// New creates a provider client
func New(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		ewgBaseURL: DefaultEWGBaseURL,
		epaBaseURL: DefaultEPABaseURL,
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// FetchSystems implements interfaces.Provider
func (c *Client) FetchSystems(ctx context.Context, zip types.ZipCode) (*model.UpstreamResponse, error) {
	u := c.ewgBaseURL + "/zip_systems?" + url.Values{"zip": {zip.String()}}.Encode()
	return c.get(ctx, NameEWGSystems, u)
}

// FetchContaminants implements interfaces.Provider
func (c *Client) FetchContaminants(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error) {
	u := c.ewgBaseURL + "/information?" + url.Values{"pws": {pwsid.String()}}.Encode()
	return c.get(ctx, NameEWGContaminants, u)
}

// FetchFacility implements interfaces.Provider
func (c *Client) FetchFacility(ctx context.Context, pwsid types.PWSID) (*model.UpstreamResponse, error) {
	u := c.epaBaseURL + "/WATER_SYSTEM/PWSID/" + url.PathEscape(pwsid.String()) + "/json"
	return c.get(ctx, NameEPAFacility, u)
}

func (c *Client) get(ctx context.Context, name, fullURL string) (*model.UpstreamResponse, error) {
	logger := ctxlog.From(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create upstream request",
			goerr.V("provider", name),
			goerr.V("url", fullURL))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID(ctx))

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := c.clock.Since(start)
	if err != nil {
		c.metrics.ObserveUpstream(name, metrics.OutcomeTransportError, elapsed)
		return nil, goerr.Wrap(err, "upstream request failed",
			goerr.V("provider", name),
			goerr.V("url", fullURL),
			goerr.T(model.ErrTagUpstream))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.metrics.ObserveUpstream(name, metrics.OutcomeTransportError, elapsed)
		return nil, goerr.Wrap(err, "failed to read upstream response",
			goerr.V("provider", name),
			goerr.V("status", resp.StatusCode),
			goerr.T(model.ErrTagUpstream))
	}

	result := &model.UpstreamResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}

	outcome := metrics.OutcomeSuccess
	if !result.OK() {
		outcome = metrics.OutcomeStatusError
	}
	c.metrics.ObserveUpstream(name, outcome, elapsed)

	logger.Debug("Upstream response",
		"provider", name,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", elapsed,
	)

	return result, nil
}

// requestID propagates the inbound request ID, or creates one for calls
// that did not originate from an HTTP request.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
