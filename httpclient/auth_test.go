package httpclient

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func newReq(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://example.com/path", nil)
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestBearerAuth(t *testing.T) {
	req := newReq(t)
	if err := BearerAuth("my-token").apply(req); err != nil {
		t.Fatal(err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer my-token" {
		t.Errorf("got %q, want %q", got, "Bearer my-token")
	}
}

func TestBasicAuth(t *testing.T) {
	req := newReq(t)
	if err := BasicAuth("user", "pass").apply(req); err != nil {
		t.Fatal(err)
	}
	u, p, ok := req.BasicAuth()
	if !ok || u != "user" || p != "pass" {
		t.Errorf("basic auth not set correctly: user=%q pass=%q ok=%v", u, p, ok)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	req := newReq(t)
	if err := APIKeyAuth("secret-key").apply(req); err != nil {
		t.Fatal(err)
	}
	if got := req.Header.Get("X-API-Key"); got != "secret-key" {
		t.Errorf("got %q, want %q", got, "secret-key")
	}

	req = newReq(t)
	if err := APIKeyAuthQuery("secret-key", "api_key").apply(req); err != nil {
		t.Fatal(err)
	}
	if got := req.URL.Query().Get("api_key"); got != "secret-key" {
		t.Errorf("got %q, want %q", got, "secret-key")
	}
}

func TestHeaderAuth(t *testing.T) {
	auth := HeaderAuth(
		Header{Name: "X-Key-Id", Value: "id"},
		Header{Name: "X-Secret", Value: "s3cr3t", Secret: true},
	)
	req := newReq(t)
	if err := auth.apply(req); err != nil {
		t.Fatal(err)
	}
	if req.Header.Get("X-Key-Id") != "id" || req.Header.Get("X-Secret") != "s3cr3t" {
		t.Errorf("headers not set: %v", req.Header)
	}
}

func TestHeaderAuth_InvalidValue(t *testing.T) {
	tests := []struct {
		name   string
		header Header
	}{
		{"newline in value", Header{Name: "X-Secret", Value: "abc\ndef"}},
		{"nul in value", Header{Name: "X-Secret", Value: "abc\x00"}},
		{"space in name", Header{Name: "X Secret", Value: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HeaderAuth(tt.header).apply(newReq(t))
			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected *AuthError, got %v", err)
			}
			if strings.Contains(err.Error(), tt.header.Value) {
				t.Errorf("error leaks the header value: %q", err.Error())
			}
		})
	}
}

func TestCustomAuth(t *testing.T) {
	req := newReq(t)
	auth := CustomAuth(func(req *http.Request) error {
		req.Header.Set("X-Custom", "value")
		return nil
	})
	if err := auth.apply(req); err != nil {
		t.Fatal(err)
	}
	if got := req.Header.Get("X-Custom"); got != "value" {
		t.Errorf("got %q, want %q", got, "value")
	}

	boom := errors.New("no credentials")
	err := CustomAuth(func(*http.Request) error { return boom }).apply(newReq(t))
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped custom error, got %v", err)
	}
}

func TestNilAuth(t *testing.T) {
	var auth *AuthConfig
	if err := auth.apply(newReq(t)); err != nil {
		t.Errorf("nil auth should be a no-op, got %v", err)
	}
}

func TestAuthConfig_StringRedacts(t *testing.T) {
	tests := []struct {
		auth   *AuthConfig
		want   string
		secret string
	}{
		{nil, "none", ""},
		{BearerAuth("tok"), "bearer(***)", "tok"},
		{BasicAuth("user", "pw"), "basic(user:***)", "pw"},
		{APIKeyAuth("k"), "api_key(X-API-Key=***)", ""},
		{
			HeaderAuth(Header{Name: "A", Value: "public"}, Header{Name: "B", Value: "hidden", Secret: true}),
			"headers(A=public, B=***)",
			"hidden",
		},
	}
	for _, tt := range tests {
		got := tt.auth.String()
		if got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if tt.secret != "" && strings.Contains(got, tt.secret) {
			t.Errorf("String() leaks %q", tt.secret)
		}
	}
}
