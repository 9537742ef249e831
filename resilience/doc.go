// Package resilience provides the client-side protection used by the HTTP
// transport: a token-bucket RateLimiter that keeps callers under an API's
// request quota, and Retry, which repeats an operation with exponential
// backoff or a server-provided delay.
//
//	rl := resilience.NewRateLimiter(resilience.DefaultRateLimiterConfig("alpaca"))
//	if err := rl.Wait(ctx); err != nil {
//	    return err
//	}
//
//	rsp, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (*Response, error) {
//	    return send(ctx, req)
//	})
package resilience
