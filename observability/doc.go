// Package observability sets up OpenTelemetry tracing and metrics exported
// over OTLP/HTTP, and provides the request instruments used by API clients.
//
//	shutdown, err := observability.Setup(ctx, observability.DefaultConfig("alpaca"))
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "alpaca.rest")
//	defer span.End()
//
//	metrics, err := observability.NewClientMetrics(observability.Meter("alpaca"))
//	metrics.RecordRequest(ctx, observability.RequestInfo{Method: "GET", Status: 200}, elapsed)
//
// Without Setup the global no-op providers are used, so instrumented code
// costs nothing when telemetry is off.
package observability
