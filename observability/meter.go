package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/restkit/logger"
)

// InitMeter installs an OTLP/HTTP meter provider as the global provider.
// The provider must be shut down on exit to flush pending metrics.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, err
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.WithComponent("observability").Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// RequestInfo describes a finished API request.
type RequestInfo struct {
	Method  string
	URLBase string
	// Status is the HTTP status, or 0 when no response was received.
	Status int
	// ErrorKind classifies a failed request; empty on success.
	ErrorKind string
}

// ClientMetrics holds the instruments recorded by an API client.
type ClientMetrics struct {
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestActive   metric.Int64UpDownCounter
	errorTotal      metric.Int64Counter
}

// NewClientMetrics creates the client instruments on meter.
func NewClientMetrics(meter metric.Meter) (*ClientMetrics, error) {
	requestTotal, err := meter.Int64Counter("client.request.total",
		metric.WithDescription("Total number of API requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating client.request.total counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("client.request.duration",
		metric.WithDescription("Duration of API requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating client.request.duration histogram: %w", err)
	}

	requestActive, err := meter.Int64UpDownCounter("client.request.active",
		metric.WithDescription("Number of in-flight API requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating client.request.active counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("client.error.total",
		metric.WithDescription("Failed API requests by error kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating client.error.total counter: %w", err)
	}

	return &ClientMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestActive:   requestActive,
		errorTotal:      errorTotal,
	}, nil
}

// RequestStarted increments the in-flight count.
func (m *ClientMetrics) RequestStarted(ctx context.Context) {
	m.requestActive.Add(ctx, 1)
}

// RecordRequest decrements the in-flight count and records the request.
func (m *ClientMetrics) RecordRequest(ctx context.Context, info RequestInfo, duration time.Duration) {
	base := []attribute.KeyValue{
		attribute.String("method", info.Method),
		attribute.String("url_base", info.URLBase),
	}
	m.requestActive.Add(ctx, -1)
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(append(base, attribute.String("status", statusLabel(info.Status)))...))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(base...))
	if info.ErrorKind != "" {
		m.errorTotal.Add(ctx, 1, metric.WithAttributes(append(base, attribute.String("kind", info.ErrorKind))...))
	}
}

func statusLabel(status int) string {
	if status == 0 {
		return "none"
	}
	return strconv.Itoa(status)
}
