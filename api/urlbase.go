package api

import (
	"fmt"
	"net/url"
)

// URLBase identifies the root URL an endpoint is resolved against.
// The set is closed: clients resolve the bases they know and report
// KindUnsupportedURLBase for everything else.
type URLBase int

const (
	// URLBaseAPIV2 is the versioned REST API root.
	URLBaseAPIV2 URLBase = iota
	// URLBaseData is the versioned market-data API root. Only clients
	// implementing DataClient can resolve it.
	URLBaseData
)

// String returns the base name.
func (b URLBase) String() string {
	switch b {
	case URLBaseAPIV2:
		return "api_v2"
	case URLBaseData:
		return "data_v2"
	default:
		return fmt.Sprintf("url_base(%d)", int(b))
	}
}

// EndpointFor resolves path against the root that base selects on client.
// Resolution never performs network I/O.
func EndpointFor[E error](client RestClient[E], base URLBase, path string) (*url.URL, *Error[E]) {
	switch base {
	case URLBaseAPIV2:
		return client.RestEndpoint(path)
	case URLBaseData:
		if dc, ok := client.(DataClient[E]); ok {
			return dc.DataEndpoint(path)
		}
	}
	return nil, NewUnsupportedURLBaseError[E](base)
}
