// Package alpaca is an api.Client for the Alpaca trading and market data
// REST APIs.
//
// The client authenticates with an API key pair sent in the
// APCA-API-KEY-ID and APCA-API-SECRET-KEY headers. Requests are rate
// limited to the account quota, idempotent requests may be retried, and
// every request is traced, counted and logged without credentials.
//
//	client, err := alpaca.New(alpaca.Config{KeyID: id, SecretKey: secret})
//	if err != nil {
//	    return err
//	}
//	account, err := alpaca.Query[trading.AccountInfo](ctx, trading.Account{}, client)
//
// Redirects are not followed, so a moved endpoint surfaces as an
// api.KindService error carrying the 3xx status rather than a silent second
// request.
package alpaca
