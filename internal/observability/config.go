// Package observability wires OpenTelemetry tracing and metrics into the
// filter parsing pipeline. When no providers are configured every operation
// is a no-op, so instrumented code paths never need nil checks.
package observability

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies this library's tracer.
const TracerName = "github.com/nlstn/go-odata-filter"

// MeterName identifies this library's meter.
const MeterName = "github.com/nlstn/go-odata-filter"

// Config holds the observability configuration for the filter parser.
type Config struct {
	// TracerProvider is the OpenTelemetry tracer provider.
	// If nil, tracing is disabled.
	TracerProvider trace.TracerProvider

	// MeterProvider is the OpenTelemetry meter provider.
	// If nil, metrics collection is disabled.
	MeterProvider metric.MeterProvider

	// ServiceName is used to identify this service in traces.
	ServiceName string

	tracer  *Tracer
	metrics *Metrics
}

// Option is a functional option for configuring observability.
type Option func(*Config)

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Config) {
		c.MeterProvider = mp
	}
}

// WithServiceName sets the service name for identification.
func WithServiceName(name string) Option {
	return func(c *Config) {
		c.ServiceName = name
	}
}

// NewConfig creates an observability configuration from the given options.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		ServiceName: "odata-filter",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.TracerProvider != nil {
		c.tracer = NewTracer(c.TracerProvider, c.ServiceName)
	}
	if c.MeterProvider != nil {
		c.metrics = NewMetrics(c.MeterProvider)
	}
	return c
}

// Tracer returns the configured tracer, or a no-op tracer when tracing is
// disabled.
func (c *Config) Tracer() *Tracer {
	if c == nil || c.tracer == nil {
		return noopTracer
	}
	return c.tracer
}

// Metrics returns the configured metrics, or no-op metrics when collection is
// disabled.
func (c *Config) Metrics() *Metrics {
	if c == nil || c.metrics == nil {
		return noopMetrics
	}
	return c.metrics
}
