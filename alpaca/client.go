package alpaca

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/restkit/api"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/resilience"
	"github.com/kbukum/restkit/version"
)

const instrumentationName = "github.com/kbukum/restkit/alpaca"

// Client talks to the Alpaca trading and market data APIs. It implements
// api.Client and api.DataClient and is safe for concurrent use.
type Client struct {
	http    *httpclient.Adapter
	restURL *url.URL
	dataURL *url.URL

	log     *logger.Logger
	tracer  trace.Tracer
	metrics *observability.ClientMetrics

	httpOpts []httpclient.Option
	meter    metric.Meter
}

var (
	_ api.Client[*RestError]     = (*Client)(nil)
	_ api.DataClient[*RestError] = (*Client)(nil)
)

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(instrumentationName) }
}

// WithMeterProvider sets the meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Client) { c.meter = mp.Meter(instrumentationName) }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpOpts = append(c.httpOpts, httpclient.WithHTTPClient(hc)) }
}

// New creates a client for cfg. The API roots are
// {scheme}://{host}/v2/ and {scheme}://{data_host}/v2/.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.GetGlobalLogger()
	}
	c.log = c.log.WithComponent("alpaca")
	if c.tracer == nil {
		c.tracer = observability.Tracer(instrumentationName)
	}
	if c.meter == nil {
		c.meter = observability.Meter(instrumentationName)
	}

	var err error
	if c.restURL, err = root(cfg.Scheme, cfg.Host); err != nil {
		return nil, err
	}
	if c.dataURL, err = root(cfg.Scheme, cfg.DataHost); err != nil {
		return nil, err
	}
	if c.metrics, err = observability.NewClientMetrics(c.meter); err != nil {
		return nil, fmt.Errorf("alpaca: %w", err)
	}

	limiter := resilience.RateLimiterConfig{
		Name:  "alpaca",
		Limit: cfg.RateLimit,
		Per:   time.Minute,
		OnLimit: func(name string, wait time.Duration) {
			c.log.Warn("rate limit reached, waiting", logger.Fields("limiter", name, logger.FieldDuration, wait.Milliseconds()))
		},
	}
	c.http, err = httpclient.New(httpclient.Config{
		Name:        "alpaca",
		Timeout:     cfg.Timeout,
		Auth:        SecretTokens(cfg.KeyID, cfg.SecretKey),
		TLS:         cfg.TLS,
		Headers:     map[string]string{"User-Agent": version.UserAgent("restkit-alpaca")},
		Retry:       c.retryConfig(cfg.Retry),
		RateLimiter: &limiter,
	}, c.httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("alpaca: %w", err)
	}
	return c, nil
}

func root(scheme, host string) (*url.URL, error) {
	u, err := url.Parse(fmt.Sprintf("%s://%s/v2/", scheme, host))
	if err != nil {
		return nil, fmt.Errorf("alpaca: invalid host %q: %w", host, err)
	}
	return u, nil
}

// retryConfig completes a retry config loaded from a file, whose hooks are
// always nil.
func (c *Client) retryConfig(in *resilience.RetryConfig) *resilience.RetryConfig {
	if in == nil {
		return nil
	}
	out := *in
	if out.RetryIf == nil {
		out.RetryIf = httpclient.IsRetryable
	}
	if out.DelayHint == nil {
		out.DelayHint = httpclient.RetryAfter
	}
	if out.OnRetry == nil {
		out.OnRetry = func(attempt int, err error, delay time.Duration) {
			c.log.Warn("retrying request", logger.Fields(
				"attempt", attempt,
				logger.FieldError, err.Error(),
				logger.FieldDuration, delay.Milliseconds(),
			))
		}
	}
	return &out
}

// RestEndpoint joins path onto the trading API root.
func (c *Client) RestEndpoint(path string) (*url.URL, *Error) {
	return c.join(c.restURL, path)
}

// DataEndpoint joins path onto the market data API root.
func (c *Client) DataEndpoint(path string) (*url.URL, *Error) {
	return c.join(c.dataURL, path)
}

func (c *Client) join(base *url.URL, path string) (*url.URL, *Error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, api.NewURLParseError[*RestError](err)
	}
	u := base.ResolveReference(ref)
	c.log.Debug("REST api call", logger.Fields(logger.FieldURL, u.String()))
	return u, nil
}

// Rest sends req. Any response is returned as is, whatever its status; the
// error is set only when no response was received.
func (c *Client) Rest(ctx context.Context, req *api.Request, body []byte) (*api.Response, *Error) {
	base := c.urlBase(req.URL)
	ctx, span := c.tracer.Start(ctx, observability.SpanRESTRequest,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL.String()),
			attribute.String(observability.AttrURLBase, base),
		),
	)
	defer span.End()

	c.metrics.RequestStarted(ctx)
	start := time.Now()
	rsp, err := c.http.Do(ctx, httpclient.Request{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header,
		Body:   body,
	})
	elapsed := time.Since(start)

	info := observability.RequestInfo{Method: req.Method, URLBase: base}
	log := c.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldURL, req.URL.String(),
		logger.FieldURLBase, base,
		logger.FieldDuration, elapsed.Milliseconds(),
	))

	// A retry cut short by ctx returns the previous attempt's response.
	if rsp == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		apiErr := transportError(err)
		info.ErrorKind = apiErr.Kind.String()
		c.metrics.RecordRequest(ctx, info, elapsed)
		span.SetAttributes(attribute.String(observability.AttrErrorKind, info.ErrorKind))
		observability.SetSpanError(ctx, apiErr)
		log.WithError(apiErr).Warn("request failed")
		return nil, apiErr
	}

	info.Status = rsp.StatusCode
	if !rsp.IsSuccess() {
		info.ErrorKind = "status"
	}
	c.metrics.RecordRequest(ctx, info, elapsed)
	span.SetAttributes(attribute.Int("http.response.status_code", rsp.StatusCode))
	log.Debug("request completed", logger.Fields(logger.FieldStatus, rsp.StatusCode))

	return &api.Response{
		StatusCode: rsp.StatusCode,
		Header:     rsp.Header,
		Body:       rsp.Body,
	}, nil
}

func (c *Client) urlBase(u *url.URL) string {
	if strings.HasPrefix(u.String(), c.dataURL.String()) {
		return api.URLBaseData.String()
	}
	return api.URLBaseAPIV2.String()
}

// Close releases idle connections.
func (c *Client) Close(ctx context.Context) error {
	return c.http.Close(ctx)
}

// String shows the API roots only; credentials are never printed.
func (c *Client) String() string {
	return fmt.Sprintf("alpaca.Client{rest_url: %s, data_url: %s}", c.restURL, c.dataURL)
}

// Query runs ep through c and decodes the response into T.
func Query[T any](ctx context.Context, ep api.Endpoint, c *Client) (T, error) {
	return api.Query[T, *RestError](ctx, ep, c)
}

// QueryRaw runs ep through c and returns the raw response body.
func QueryRaw(ctx context.Context, ep api.Endpoint, c *Client) ([]byte, error) {
	return api.QueryRaw[*RestError](ctx, ep, c)
}
