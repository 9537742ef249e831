// Package apitest provides an in-memory api.Client and a configurable
// endpoint for testing code built on the api package.
//
//	client := apitest.NewClient("https://api.example.com/v2/")
//	client.Respond(http.StatusOK, `{"id":"1"}`)
//
//	got, err := api.Query[Thing, *apitest.Error](ctx, apitest.Endpoint{Route: "things/1"}, client)
package apitest

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/kbukum/restkit/api"
)

// Error is the transport error type of Client.
type Error struct {
	Msg string
}

// Error implements the error interface.
func (e *Error) Error() string { return "apitest: " + e.Msg }

// RecordedRequest is a request observed by Client.
type RecordedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

type reply struct {
	rsp *api.Response
	err *Error
}

// Client is a scripted api.Client. Replies are returned in the order they
// were queued; once the queue is empty Client answers 200 with "{}".
// Client only resolves api.URLBaseAPIV2; use DataClient for URLBaseData.
type Client struct {
	root *url.URL

	mu       sync.Mutex
	replies  []reply
	requests []RecordedRequest
}

var _ api.Client[*Error] = (*Client)(nil)

// NewClient creates a client rooted at root. It panics if root does not
// parse, as it is meant for tests only.
func NewClient(root string) *Client {
	u, err := url.Parse(root)
	if err != nil {
		panic("apitest: invalid root URL: " + err.Error())
	}
	return &Client{root: u}
}

// Respond queues a response. headers are alternating key/value pairs.
func (c *Client) Respond(status int, body string, headers ...string) *Client {
	h := make(http.Header)
	for i := 0; i+1 < len(headers); i += 2 {
		h.Add(headers[i], headers[i+1])
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies = append(c.replies, reply{rsp: &api.Response{
		StatusCode: status,
		Header:     h,
		Body:       []byte(body),
	}})
	return c
}

// Fail queues a transport failure.
func (c *Client) Fail(msg string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies = append(c.replies, reply{err: &Error{Msg: msg}})
	return c
}

// Requests returns the requests sent so far.
func (c *Client) Requests() []RecordedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]RecordedRequest, len(c.requests))
	copy(out, c.requests)
	return out
}

// RestEndpoint joins path onto the client root.
func (c *Client) RestEndpoint(path string) (*url.URL, *api.Error[*Error]) {
	return join(c.root, path)
}

// Rest records the request and returns the next queued reply.
func (c *Client) Rest(_ context.Context, req *api.Request, body []byte) (*api.Response, *api.Error[*Error]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, RecordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   append([]byte(nil), body...),
	})

	if len(c.replies) == 0 {
		return &api.Response{StatusCode: http.StatusOK, Header: make(http.Header), Body: []byte("{}")}, nil
	}
	next := c.replies[0]
	c.replies = c.replies[1:]
	if next.err != nil {
		return nil, api.NewClientError(next.err)
	}
	return next.rsp, nil
}

// DataClient is a Client that also resolves api.URLBaseData.
type DataClient struct {
	*Client
	dataRoot *url.URL
}

var _ api.DataClient[*Error] = (*DataClient)(nil)

// NewDataClient creates a client with a REST root and a market-data root.
func NewDataClient(root, dataRoot string) *DataClient {
	u, err := url.Parse(dataRoot)
	if err != nil {
		panic("apitest: invalid data root URL: " + err.Error())
	}
	return &DataClient{Client: NewClient(root), dataRoot: u}
}

// DataEndpoint joins path onto the data root.
func (c *DataClient) DataEndpoint(path string) (*url.URL, *api.Error[*Error]) {
	return join(c.dataRoot, path)
}

func join(root *url.URL, path string) (*url.URL, *api.Error[*Error]) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, api.NewURLParseError[*Error](err)
	}
	return root.ResolveReference(ref), nil
}

// Endpoint is an api.Endpoint whose parts are plain fields.
type Endpoint struct {
	Verb       string
	Route      string
	Base       api.URLBase
	Params     *api.QueryParams
	Payload    *api.Body
	PayloadErr error
}

// Method returns Verb, defaulting to GET.
func (e Endpoint) Method() string {
	if e.Verb == "" {
		return http.MethodGet
	}
	return e.Verb
}

// Path returns Route.
func (e Endpoint) Path() string { return e.Route }

// URLBase returns Base.
func (e Endpoint) URLBase() api.URLBase { return e.Base }

// Parameters returns Params.
func (e Endpoint) Parameters() *api.QueryParams { return e.Params }

// Body returns Payload, or PayloadErr when set.
func (e Endpoint) Body() (*api.Body, error) {
	if e.PayloadErr != nil {
		return nil, e.PayloadErr
	}
	return e.Payload, nil
}
