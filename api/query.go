package api

import (
	"context"
	"net/http"
	"reflect"

	"github.com/goccy/go-json"
)

// Query executes ep against client and decodes the JSON response into T.
//
// Responses are classified in a fixed order: a body that is not valid JSON
// is a KindService error whatever the status; any other non-2xx response,
// redirects included, is a KindService error carrying status and body; a
// body that does not decode into T is a KindDataType error.
func Query[T any, E error](ctx context.Context, ep Endpoint, client Client[E]) (T, error) {
	var zero T

	rsp, apiErr := send(ctx, ep, client)
	if apiErr != nil {
		return zero, apiErr
	}

	// TODO: a 2xx with a malformed body is reported with its success status;
	// a dedicated KindJSON error would describe it better.
	if !json.Valid(rsp.Body) {
		return zero, NewServiceError[E](rsp.StatusCode, rsp.Body)
	}
	if !rsp.IsSuccess() {
		return zero, NewServiceError[E](rsp.StatusCode, rsp.Body)
	}

	var out T
	if err := json.Unmarshal(rsp.Body, &out); err != nil {
		return zero, NewDataTypeError[E](typeName[T](), err)
	}
	return out, nil
}

// send resolves the endpoint URL, builds the request and hands it to the
// client.
func send[E error](ctx context.Context, ep Endpoint, client Client[E]) (*Response, *Error[E]) {
	u, apiErr := EndpointFor[E](client, ep.URLBase(), ep.Path())
	if apiErr != nil {
		return nil, apiErr
	}
	if params := ep.Parameters(); params != nil {
		params.AddToURL(u)
	}

	req := &Request{
		Method: ep.Method(),
		URL:    u,
		Header: make(http.Header),
	}

	body, err := ep.Body()
	if err != nil {
		return nil, NewBodyError[E](err)
	}
	var data []byte
	if body != nil {
		req.Header.Set("Content-Type", body.ContentType)
		data = body.Data
	}

	return client.Rest(ctx, req, data)
}

func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	if name := t.String(); name != "" {
		return name
	}
	return "<anonymous>"
}
