package api

// Endpoint describes one REST API call independently of any transport.
// Implementations are immutable values; executors only read them.
type Endpoint interface {
	// Method is the HTTP method of the call.
	Method() string
	// Path is the path of the endpoint relative to its URL base.
	Path() string
	// URLBase selects the root URL the path is joined onto.
	URLBase() URLBase
	// Parameters returns the query parameters to append to the URL.
	Parameters() *QueryParams
	// Body returns the request body, or nil when the call has none.
	// Encoding failures are reported as *BodyError.
	Body() (*Body, error)
}

// Defaults provides the optional parts of Endpoint. Embed it in endpoint
// types that only need to supply Method and Path.
type Defaults struct{}

// URLBase returns URLBaseAPIV2.
func (Defaults) URLBase() URLBase { return URLBaseAPIV2 }

// Parameters returns an empty parameter list.
func (Defaults) Parameters() *QueryParams { return &QueryParams{} }

// Body returns no body.
func (Defaults) Body() (*Body, error) { return nil, nil }
