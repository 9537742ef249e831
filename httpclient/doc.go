// Package httpclient provides the HTTP transport used by API clients:
// header-based authentication, TLS, rate limiting and retry with
// Retry-After support, and status classification.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com/v2/",
//	    Timeout: 30 * time.Second,
//	    Auth: httpclient.HeaderAuth(
//	        httpclient.Header{Name: "X-Key-Id", Value: keyID},
//	        httpclient.Header{Name: "X-Secret", Value: secret, Secret: true},
//	    ),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    URL:    "account",
//	})
//
// Do returns the response even when its status is not 2xx; the
// accompanying *Error classifies the status.
//
// # With Resilience
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL:     "https://api.example.com/v2/",
//	    Retry:       httpclient.DefaultRetryConfig(),
//	    RateLimiter: httpclient.DefaultRateLimiterConfig("my-api"),
//	})
package httpclient
