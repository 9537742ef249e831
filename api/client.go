package api

import (
	"context"
	"net/http"
	"net/url"
)

// RestClient resolves endpoint paths against the REST API root of a
// transport. E is the error type of the transport.
type RestClient[E error] interface {
	// RestEndpoint joins a relative endpoint path onto the client's API root.
	// A malformed join is reported as KindURLParse.
	RestEndpoint(path string) (*url.URL, *Error[E])
}

// DataClient is implemented by clients that can also resolve URLBaseData.
type DataClient[E error] interface {
	// DataEndpoint joins a relative endpoint path onto the market-data root.
	DataEndpoint(path string) (*url.URL, *Error[E])
}

// Client executes fully-formed requests. Implementations attach
// authentication, own connection management and wrap their own failures
// in a KindClient error.
type Client[E error] interface {
	RestClient[E]

	// Rest sends req with body and returns the complete response. A nil
	// *Error means the exchange succeeded, whatever the status code.
	Rest(ctx context.Context, req *Request, body []byte) (*Response, *Error[E])
}

// Request is an outbound request built by the executors.
type Request struct {
	// Method is the HTTP method.
	Method string
	// URL is the absolute request URL including the query string.
	URL *url.URL
	// Header holds request headers; Content-Type is set when a body exists.
	Header http.Header
}

// Response is a normalized transport response.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Header holds the response headers.
	Header http.Header
	// Body is the complete response body.
	Body []byte
}

// IsSuccess reports whether the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
