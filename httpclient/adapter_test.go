package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/restkit/resilience"
)

func newTestAdapter(t *testing.T, srv *httptest.Server, mutate func(*Config)) *Adapter {
	t.Helper()
	cfg := Config{BaseURL: srv.URL + "/v2/", Timeout: 5 * time.Second}
	if mutate != nil {
		mutate(&cfg)
	}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func TestAdapter_Do_ResolvesAndSends(t *testing.T) {
	var gotPath, gotQuery, gotBody, gotCT, gotDefault, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotCT = r.Header.Get("Content-Type")
		gotDefault = r.Header.Get("X-Default")
		gotAuth = r.Header.Get("X-Key")
		w.Header().Set("X-Reply", "yes")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv, func(c *Config) {
		c.Headers = map[string]string{"X-Default": "d"}
		c.Auth = HeaderAuth(Header{Name: "X-Key", Value: "k"})
	})

	resp, err := a.Do(context.Background(), Request{
		Method: http.MethodPost,
		URL:    "orders?limit=2",
		Header: http.Header{"Content-Type": []string{"application/json"}},
		Body:   []byte(`{"qty":1}`),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode != http.StatusCreated || string(resp.Body) != `{"ok":true}` {
		t.Errorf("unexpected response: %d %s", resp.StatusCode, resp.Body)
	}
	if resp.Header.Get("X-Reply") != "yes" {
		t.Errorf("response headers not kept: %v", resp.Header)
	}
	if gotPath != "/v2/orders" || gotQuery != "limit=2" {
		t.Errorf("unexpected target %s?%s", gotPath, gotQuery)
	}
	if gotBody != `{"qty":1}` || gotCT != "application/json" {
		t.Errorf("unexpected body %q (%s)", gotBody, gotCT)
	}
	if gotDefault != "d" || gotAuth != "k" {
		t.Errorf("default headers or auth missing: %q %q", gotDefault, gotAuth)
	}
}

func TestAdapter_Do_ReturnsResponseWithStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"forbidden"}`))
	}))
	defer srv.Close()

	resp, err := newTestAdapter(t, srv, nil).Do(context.Background(), Request{Method: http.MethodGet, URL: "account"})
	if !IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden || string(resp.Body) != `{"message":"forbidden"}` {
		t.Errorf("expected the 403 response alongside the error, got %+v", resp)
	}
}

func TestAdapter_Do_DoesNotFollowRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v2/new" {
			t.Error("redirect was followed")
		}
		w.Header().Set("Location", "/v2/new")
		w.WriteHeader(http.StatusMovedPermanently)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	resp, err := newTestAdapter(t, srv, nil).Do(context.Background(), Request{Method: http.MethodGet, URL: "old"})
	if resp == nil || resp.StatusCode != http.StatusMovedPermanently {
		t.Fatalf("expected 301 response, got %+v (%v)", resp, err)
	}
	if resp.Header.Get("Location") != "/v2/new" {
		t.Errorf("location lost: %v", resp.Header)
	}
}

func TestAdapter_Do_RetriesWithRetryAfter(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	var delays []time.Duration
	a := newTestAdapter(t, srv, func(c *Config) {
		c.Retry = DefaultRetryConfig()
		c.Retry.OnRetry = func(_ int, _ error, d time.Duration) { delays = append(delays, d) }
	})

	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, URL: "assets"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode != http.StatusOK || calls.Load() != 2 {
		t.Errorf("expected success on second call, got %d after %d calls", resp.StatusCode, calls.Load())
	}
	if len(delays) != 1 {
		t.Fatalf("expected one retry, got %d", len(delays))
	}
}

func TestAdapter_Do_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv, func(c *Config) { c.Retry = DefaultRetryConfig() })
	_, _ = a.Do(context.Background(), Request{Method: http.MethodGet, URL: "x"})
	if calls.Load() != 1 {
		t.Errorf("expected a single call, got %d", calls.Load())
	}
}

func TestAdapter_Do_NoRetryForPost(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv, func(c *Config) { c.Retry = DefaultRetryConfig() })
	resp, err := a.Do(context.Background(), Request{Method: http.MethodPost, URL: "orders", Body: []byte(`{}`)})
	if !IsServerError(err) || resp == nil || resp.StatusCode != http.StatusBadGateway {
		t.Errorf("expected the 502 response, got %+v (%v)", resp, err)
	}
	if calls.Load() != 1 {
		t.Errorf("POST must not be retried, got %d calls", calls.Load())
	}
}

func TestAdapter_Do_AuthErrorBeforeSend(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv, func(c *Config) {
		c.Auth = HeaderAuth(Header{Name: "X-Secret", Value: "bad\r\nvalue", Secret: true})
	})
	_, err := a.Do(context.Background(), Request{Method: http.MethodGet, URL: "x"})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	if calls.Load() != 0 {
		t.Error("request should not have been sent")
	}
}

func TestAdapter_Do_RequestAuthOverrides(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv, func(c *Config) { c.Auth = BearerAuth("client") })
	_, err := a.Do(context.Background(), Request{Method: http.MethodGet, URL: "x", Auth: BearerAuth("request")})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Bearer request" {
		t.Errorf("got %q", got)
	}
}

func TestAdapter_Do_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	a := newTestAdapter(t, srv, nil)
	srv.Close()

	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, URL: "x"})
	if resp != nil {
		t.Errorf("expected no response, got %+v", resp)
	}
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestAdapter_Do_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := newTestAdapter(t, srv, nil).Do(ctx, Request{Method: http.MethodGet, URL: "slow"})
	if !IsTimeout(err) {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestAdapter_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	var limited atomic.Int32
	a := newTestAdapter(t, srv, func(c *Config) {
		c.RateLimiter = &resilience.RateLimiterConfig{
			Name:    "test",
			Limit:   1,
			Per:     time.Hour,
			OnLimit: func(string, time.Duration) { limited.Add(1) },
		}
	})

	if _, err := a.Do(context.Background(), Request{Method: http.MethodGet, URL: "x"}); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := a.Do(ctx, Request{Method: http.MethodGet, URL: "x"})
	if !IsTimeout(err) {
		t.Errorf("expected rate limiter wait to time out, got %v", err)
	}
	if limited.Load() != 1 {
		t.Errorf("expected OnLimit once, got %d", limited.Load())
	}
}

func TestAdapter_AbsoluteURLBypassesBase(t *testing.T) {
	var hit atomic.Bool
	other := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hit.Store(true) }))
	defer other.Close()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	if _, err := newTestAdapter(t, srv, nil).Do(context.Background(), Request{Method: http.MethodGet, URL: other.URL + "/x"}); err != nil {
		t.Fatal(err)
	}
	if !hit.Load() {
		t.Error("absolute URL was not used")
	}
}
