package api

import (
	"context"

	"github.com/goccy/go-json"
)

// QueryRaw executes ep against client and returns the undecoded response
// body of a 2xx response.
//
// A non-2xx response, redirects included, is a KindServiceMessage error when
// its body carries a message (a JSON string or an object with a "message"
// field) and a KindService error otherwise.
func QueryRaw[E error](ctx context.Context, ep Endpoint, client Client[E]) ([]byte, error) {
	rsp, apiErr := send(ctx, ep, client)
	if apiErr != nil {
		return nil, apiErr
	}

	if !rsp.IsSuccess() {
		if msg, ok := errorMessage(rsp.Body); ok {
			return nil, NewServiceMessageError[E](msg)
		}
		return nil, NewServiceError[E](rsp.StatusCode, rsp.Body)
	}

	return rsp.Body, nil
}

// errorMessage extracts the message of an error response body.
func errorMessage(body []byte) (string, bool) {
	var msg *string
	if err := json.Unmarshal(body, &msg); err == nil && msg != nil {
		return *msg, true
	}
	var obj struct {
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(body, &obj); err == nil && obj.Message != nil {
		return *obj.Message, true
	}
	return "", false
}
