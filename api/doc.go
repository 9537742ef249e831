// Package api describes REST endpoints declaratively and executes them
// against any transport that implements Client.
//
// An Endpoint supplies the method, path, query parameters, optional body and
// URL base of a single call. The executors drive an endpoint through a
// client and either decode the response into a typed value or hand back the
// raw bytes:
//
//	account, err := api.Query[trading.AccountInfo, *alpaca.RestError](ctx, trading.Account{}, client)
//
//	raw, err := api.QueryRaw[*alpaca.RestError](ctx, contracts, client)
//
// Every failure is reported as a single *Error[E], where E is the error type
// of the transport. Use errors.As or IsKind to classify it.
//
// # Writing Endpoints
//
// Embed Defaults to pick up the default URL base, empty parameters and no
// body, then implement Method and Path:
//
//	type Clock struct{ api.Defaults }
//
//	func (Clock) Method() string { return http.MethodGet }
//	func (Clock) Path() string   { return "clock" }
//
// A pointer to an endpoint is itself an endpoint, so executors accept both.
package api
