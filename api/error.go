package api

import (
	"errors"
	"fmt"
)

// Kind classifies an Error. Exactly one kind is active per error.
type Kind int

const (
	// KindClient wraps a failure of the transport itself.
	KindClient Kind = iota
	// KindAuth reports that authentication headers could not be built.
	KindAuth
	// KindURLParse reports a malformed endpoint URL.
	KindURLParse
	// KindBody reports that the request body could not be encoded.
	KindBody
	// KindService reports a response whose body carries no usable error
	// information: the status and raw bytes are kept.
	KindService
	// KindServiceMessage reports an error message returned by the service.
	KindServiceMessage
	// KindJSON reports a response body that is not valid JSON.
	KindJSON
	// KindMovedPermanently reports a 301 response.
	KindMovedPermanently
	// KindDataType reports a response that does not match the target type.
	KindDataType
	// KindUnsupportedURLBase reports an endpoint whose URL base the client
	// cannot resolve.
	KindUnsupportedURLBase
)

// KindUser is the first kind reserved for packages that extend the
// taxonomy with their own error kinds.
const KindUser Kind = 100

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindClient:
		return "client"
	case KindAuth:
		return "auth"
	case KindURLParse:
		return "url_parse"
	case KindBody:
		return "body"
	case KindService:
		return "service"
	case KindServiceMessage:
		return "service_message"
	case KindJSON:
		return "json"
	case KindMovedPermanently:
		return "moved_permanently"
	case KindDataType:
		return "data_type"
	case KindUnsupportedURLBase:
		return "unsupported_url_base"
	default:
		if k >= KindUser {
			return fmt.Sprintf("user(%d)", int(k))
		}
		return "unknown"
	}
}

// Error is the failure type of every API operation. E is the error type of
// the transport; it is only populated for KindClient. The remaining fields
// are populated according to Kind.
type Error[E error] struct {
	// Kind selects the active variant.
	Kind Kind
	// Client is the transport error (KindClient).
	Client E
	// Err is the underlying cause (KindAuth, KindURLParse, KindBody,
	// KindJSON, KindDataType, and user kinds).
	Err error
	// StatusCode is the HTTP status (KindService).
	StatusCode int
	// Data is the raw response body (KindService).
	Data []byte
	// Message is the service error message (KindServiceMessage).
	Message string
	// Location is the redirect target (KindMovedPermanently). Empty when the
	// response carried no Location header.
	Location string
	// TypeName names the type that could not be decoded (KindDataType).
	TypeName string
	// URLBase is the base the client could not resolve (KindUnsupportedURLBase).
	URLBase URLBase
}

// Error implements the error interface.
func (e *Error[E]) Error() string {
	switch e.Kind {
	case KindClient:
		return fmt.Sprintf("api: client error: %v", e.Client)
	case KindAuth:
		return fmt.Sprintf("api: failed to authenticate: %v", e.Err)
	case KindURLParse:
		return fmt.Sprintf("api: failed to parse url: %v", e.Err)
	case KindBody:
		return fmt.Sprintf("api: failed to create form data: %v", e.Err)
	case KindService:
		return fmt.Sprintf("api: service error (HTTP %d)", e.StatusCode)
	case KindServiceMessage:
		return fmt.Sprintf("api: service error: %s", e.Message)
	case KindJSON:
		return fmt.Sprintf("api: could not parse JSON response: %v", e.Err)
	case KindMovedPermanently:
		location := e.Location
		if location == "" {
			location = "<UNKNOWN>"
		}
		return fmt.Sprintf("api: moved permanently to: %s", location)
	case KindDataType:
		return fmt.Sprintf("api: could not parse %s data from JSON: %v", e.TypeName, e.Err)
	case KindUnsupportedURLBase:
		return fmt.Sprintf("api: unsupported URL base: %s", e.URLBase)
	default:
		if e.Err != nil {
			return fmt.Sprintf("api: %s: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("api: %s", e.Kind)
	}
}

// Unwrap returns the transport error for KindClient and the underlying
// cause otherwise.
func (e *Error[E]) Unwrap() error {
	if e.Kind == KindClient {
		return e.Client
	}
	return e.Err
}

// ErrorKind returns the active kind.
func (e *Error[E]) ErrorKind() Kind { return e.Kind }

// NewClientError wraps a transport error.
func NewClientError[E error](err E) *Error[E] {
	return &Error[E]{Kind: KindClient, Client: err}
}

// NewAuthError reports an authentication header failure.
func NewAuthError[E error](err error) *Error[E] {
	return &Error[E]{Kind: KindAuth, Err: err}
}

// NewURLParseError reports a malformed URL.
func NewURLParseError[E error](err error) *Error[E] {
	return &Error[E]{Kind: KindURLParse, Err: err}
}

// NewBodyError reports a body encoding failure.
func NewBodyError[E error](err error) *Error[E] {
	return &Error[E]{Kind: KindBody, Err: err}
}

// NewServiceError reports a response carrying the given status and a body
// without usable error information. data is copied.
func NewServiceError[E error](status int, data []byte) *Error[E] {
	return &Error[E]{Kind: KindService, StatusCode: status, Data: append([]byte(nil), data...)}
}

// NewServiceMessageError reports an error message sent by the service.
func NewServiceMessageError[E error](msg string) *Error[E] {
	return &Error[E]{Kind: KindServiceMessage, Message: msg}
}

// NewJSONError reports a response that failed JSON parsing.
func NewJSONError[E error](err error) *Error[E] {
	return &Error[E]{Kind: KindJSON, Err: err}
}

// NewMovedPermanentlyError reports a 301 response. location is empty when
// the response had no Location header.
func NewMovedPermanentlyError[E error](location string) *Error[E] {
	return &Error[E]{Kind: KindMovedPermanently, Location: location}
}

// NewDataTypeError reports that a response could not be decoded into the
// named type.
func NewDataTypeError[E error](typeName string, err error) *Error[E] {
	return &Error[E]{Kind: KindDataType, TypeName: typeName, Err: err}
}

// NewUnsupportedURLBaseError reports an unresolvable URL base.
func NewUnsupportedURLBaseError[E error](base URLBase) *Error[E] {
	return &Error[E]{Kind: KindUnsupportedURLBase, URLBase: base}
}

// MapClient converts err to an Error over a different transport error type.
// Only the KindClient payload passes through f; every other field is
// carried over unchanged.
func MapClient[E, W error](err *Error[E], f func(E) W) *Error[W] {
	if err == nil {
		return nil
	}
	out := &Error[W]{
		Kind:       err.Kind,
		Err:        err.Err,
		StatusCode: err.StatusCode,
		Data:       err.Data,
		Message:    err.Message,
		Location:   err.Location,
		TypeName:   err.TypeName,
		URLBase:    err.URLBase,
	}
	if err.Kind == KindClient {
		out.Client = f(err.Client)
	}
	return out
}

// MapClientErr applies MapClient when err is an *Error[E] and returns any
// other error unchanged.
func MapClientErr[E, W error](err error, f func(E) W) error {
	var apiErr *Error[E]
	if errors.As(err, &apiErr) {
		return MapClient(apiErr, f)
	}
	return err
}

// IsKind reports whether err is an API error of kind k, regardless of the
// transport error type.
func IsKind(err error, k Kind) bool {
	var kinded interface{ ErrorKind() Kind }
	return errors.As(err, &kinded) && kinded.ErrorKind() == k
}

// KindOf returns the kind of the first API error in err's chain.
func KindOf(err error) (Kind, bool) {
	var kinded interface{ ErrorKind() Kind }
	if errors.As(err, &kinded) {
		return kinded.ErrorKind(), true
	}
	return 0, false
}

// AsError returns the first *Error[E] in err's chain.
func AsError[E error](err error) (*Error[E], bool) {
	var apiErr *Error[E]
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
