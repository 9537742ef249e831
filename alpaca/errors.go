package alpaca

import (
	"errors"
	"fmt"

	"github.com/kbukum/restkit/api"
	"github.com/kbukum/restkit/httpclient"
)

// RestErrorKind classifies a RestError.
type RestErrorKind int

const (
	// RestErrorCommunication reports that no response was received.
	RestErrorCommunication RestErrorKind = iota
	// RestErrorHTTP reports a request that could not be constructed.
	RestErrorHTTP
)

// String returns the kind name.
func (k RestErrorKind) String() string {
	switch k {
	case RestErrorCommunication:
		return "communication"
	case RestErrorHTTP:
		return "http"
	default:
		return fmt.Sprintf("RestErrorKind(%d)", int(k))
	}
}

// RestError is the transport error type of Client.
type RestError struct {
	Kind RestErrorKind
	Err  error
}

// Error implements the error interface.
func (e *RestError) Error() string {
	switch e.Kind {
	case RestErrorHTTP:
		return fmt.Sprintf("alpaca: http error: %v", e.Err)
	default:
		return fmt.Sprintf("alpaca: communication with alpaca: %v", e.Err)
	}
}

// Unwrap returns the underlying transport error.
func (e *RestError) Unwrap() error { return e.Err }

// Error is the error type of every call made through Client.
type Error = api.Error[*RestError]

// transportError maps an adapter failure that produced no response.
func transportError(err error) *Error {
	var authErr *httpclient.AuthError
	if errors.As(err, &authErr) {
		return api.NewAuthError[*RestError](authErr)
	}
	var httpErr *httpclient.Error
	if errors.As(err, &httpErr) && httpErr.Code == httpclient.ErrCodeValidation {
		return api.NewClientError(&RestError{Kind: RestErrorHTTP, Err: err})
	}
	return api.NewClientError(&RestError{Kind: RestErrorCommunication, Err: err})
}
