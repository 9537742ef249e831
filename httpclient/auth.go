package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer uses Bearer token authentication.
	AuthBearer
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic
	// AuthAPIKey uses a single API key header or query parameter.
	AuthAPIKey
	// AuthHeaders sets a fixed list of headers, such as a key id and secret pair.
	AuthHeaders
	// AuthCustom uses a custom authentication function.
	AuthCustom
)

// Header is a single name/value pair set by AuthHeaders.
type Header struct {
	Name  string
	Value string
	// Secret marks values that must never appear in logs.
	Secret bool
}

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the bearer token (AuthBearer).
	Token string
	// Username is the basic auth username (AuthBasic).
	Username string
	// Password is the basic auth password (AuthBasic).
	Password string
	// Key is the API key value (AuthAPIKey).
	Key string
	// In specifies where to place the API key: "header" (default) or "query" (AuthAPIKey).
	In string
	// Name is the header or query parameter name (AuthAPIKey). Defaults to "X-API-Key".
	Name string
	// Headers are set in order (AuthHeaders).
	Headers []Header
	// Apply is a custom function to modify the request (AuthCustom).
	Apply func(*http.Request) error
}

// AuthError reports a credential that cannot be sent as an HTTP header.
type AuthError struct {
	Header string
	Err    error
}

// Error implements the error interface. The offending value is never included.
func (e *AuthError) Error() string {
	if e.Header == "" {
		return fmt.Sprintf("httpclient: auth: %v", e.Err)
	}
	return fmt.Sprintf("httpclient: auth: header %q: %v", e.Header, e.Err)
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error { return e.Err }

var (
	errInvalidHeaderName  = errors.New("invalid header name")
	errInvalidHeaderValue = errors.New("invalid header value")
)

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// APIKeyAuth creates an API key auth config sent via the X-API-Key header.
func APIKeyAuth(key string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: "X-API-Key"}
}

// APIKeyAuthQuery creates an API key auth config sent via query parameter.
func APIKeyAuthQuery(key, paramName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "query", Name: paramName}
}

// HeaderAuth creates an auth config that sets every header in order.
func HeaderAuth(headers ...Header) *AuthConfig {
	return &AuthConfig{Type: AuthHeaders, Headers: headers}
}

// CustomAuth creates a custom auth config with a request modifier function.
func CustomAuth(fn func(*http.Request) error) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

// String describes the config with every credential redacted.
func (a *AuthConfig) String() string {
	if a == nil {
		return "none"
	}
	switch a.Type {
	case AuthBearer:
		return "bearer(***)"
	case AuthBasic:
		return fmt.Sprintf("basic(%s:***)", a.Username)
	case AuthAPIKey:
		return fmt.Sprintf("api_key(%s=***)", a.keyName())
	case AuthHeaders:
		parts := make([]string, len(a.Headers))
		for i, h := range a.Headers {
			v := h.Value
			if h.Secret {
				v = "***"
			}
			parts[i] = h.Name + "=" + v
		}
		return "headers(" + strings.Join(parts, ", ") + ")"
	case AuthCustom:
		return "custom"
	default:
		return "none"
	}
}

func (a *AuthConfig) keyName() string {
	if a.Name == "" {
		return "X-API-Key"
	}
	return a.Name
}

// apply applies authentication to an HTTP request. Header values that
// would be rejected by the transport are reported as an *AuthError before
// anything is sent.
func (a *AuthConfig) apply(req *http.Request) error {
	if a == nil {
		return nil
	}
	switch a.Type {
	case AuthBearer:
		return setHeader(req.Header, "Authorization", "Bearer "+a.Token)
	case AuthBasic:
		req.SetBasicAuth(a.Username, a.Password)
	case AuthAPIKey:
		if a.In == "query" {
			q := req.URL.Query()
			q.Set(a.keyName(), a.Key)
			req.URL.RawQuery = q.Encode()
			return nil
		}
		return setHeader(req.Header, a.keyName(), a.Key)
	case AuthHeaders:
		for _, h := range a.Headers {
			if err := setHeader(req.Header, h.Name, h.Value); err != nil {
				return err
			}
		}
	case AuthCustom:
		if a.Apply != nil {
			if err := a.Apply(req); err != nil {
				return &AuthError{Err: err}
			}
		}
	}
	return nil
}

func setHeader(h http.Header, name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return &AuthError{Header: name, Err: errInvalidHeaderName}
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return &AuthError{Header: name, Err: errInvalidHeaderValue}
	}
	h.Set(name, value)
	return nil
}
