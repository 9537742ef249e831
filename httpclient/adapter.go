package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/kbukum/restkit/resilience"
)

// Adapter is a configurable HTTP adapter with built-in auth, TLS, rate
// limiting and retry. It is safe for concurrent use.
type Adapter struct {
	httpClient *http.Client
	config     Config
	baseURL    *url.URL
	rl         *resilience.RateLimiter
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithHTTPClient replaces the underlying *http.Client. Timeout and redirect
// settings of the given client are kept as they are.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *Adapter) { a.httpClient = hc }
}

// New creates a new HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	c := &Adapter{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
	}
	if !cfg.FollowRedirects {
		c.httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	if cfg.BaseURL != "" {
		// Validate has already parsed it.
		c.baseURL, _ = url.Parse(cfg.BaseURL)
	}
	if cfg.RateLimiter != nil {
		c.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do executes an HTTP request and returns the complete response. A response
// with a non-2xx status is returned together with its classified *Error, so
// callers that interpret statuses themselves can ignore the error when the
// response is non-nil. Only idempotent methods are retried.
func (c *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	if c.config.Retry != nil && idempotent(req.Method) {
		return resilience.Retry(ctx, *c.config.Retry, func() (*Response, error) {
			return c.doOnce(ctx, req)
		})
	}
	return c.doOnce(ctx, req)
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Adapter) Unwrap() *http.Client {
	return c.httpClient
}

// Name returns the configured client name.
func (c *Adapter) Name() string {
	return c.config.Name
}

// Close releases idle connections.
func (c *Adapter) Close(_ context.Context) error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// GetConfig returns the adapter's configuration.
func (c *Adapter) GetConfig() Config {
	return c.config
}

func (c *Adapter) doOnce(ctx context.Context, req Request) (*Response, error) {
	if c.rl != nil {
		if err := c.rl.Wait(ctx); err != nil {
			return nil, NewTimeoutError(err)
		}
	}
	return c.executeRequest(ctx, req)
}

func (c *Adapter) executeRequest(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}
	if classErr := ClassifyStatusCode(resp.StatusCode, resp.Header, body); classErr != nil {
		return result, classErr
	}
	return result, nil
}

// buildRequest constructs an *http.Request from the adapter config and request.
func (c *Adapter) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	target, err := c.resolve(req.URL)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("parse url: %v", err))
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	// Request-level auth overrides client-level auth.
	auth := c.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	if err := auth.apply(httpReq); err != nil {
		return nil, err
	}
	return httpReq, nil
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete, "":
		return true
	default:
		return false
	}
}

func (c *Adapter) resolve(raw string) (string, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if c.baseURL == nil || ref.IsAbs() {
		return ref.String(), nil
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}
