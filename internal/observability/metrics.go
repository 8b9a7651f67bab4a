package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

// Metrics holds the filter-specific metric instruments.
type Metrics struct {
	parseDuration metric.Float64Histogram
	parseCount    metric.Int64Counter
	errorCount    metric.Int64Counter
	cacheHits     metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) *Metrics {
	meter := mp.Meter(MeterName)
	m := &Metrics{}

	// Note: errors from meter instrument creation are unlikely in practice
	// and would only occur with invalid parameters. We use explicit checks
	// to satisfy the linter while continuing with partial metrics on error.
	var err error

	m.parseDuration, err = meter.Float64Histogram(
		"odatafilter.parse.duration",
		metric.WithDescription("Duration of filter parses in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.parseDuration, _ = meter.Float64Histogram("odatafilter.parse.duration")
	}

	m.parseCount, err = meter.Int64Counter(
		"odatafilter.parse.count",
		metric.WithDescription("Total number of filter parses"),
		metric.WithUnit("{parse}"),
	)
	if err != nil {
		m.parseCount, _ = meter.Int64Counter("odatafilter.parse.count")
	}

	m.errorCount, err = meter.Int64Counter(
		"odatafilter.parse.errors",
		metric.WithDescription("Total number of failed filter parses"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		m.errorCount, _ = meter.Int64Counter("odatafilter.parse.errors")
	}

	m.cacheHits, err = meter.Int64Counter(
		"odatafilter.cache.hits",
		metric.WithDescription("Number of parse cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		m.cacheHits, _ = meter.Int64Counter("odatafilter.cache.hits")
	}

	return m
}

var noopMetrics = NewMetrics(metricnoop.NewMeterProvider())

// RecordParse records one parse invocation and its outcome.
func (m *Metrics) RecordParse(ctx context.Context, d time.Duration, err error) {
	success := attribute.Bool("success", err == nil)
	m.parseCount.Add(ctx, 1, metric.WithAttributes(success))
	m.parseDuration.Record(ctx, float64(d.Microseconds())/1000.0, metric.WithAttributes(success))
	if err != nil {
		m.errorCount.Add(ctx, 1)
	}
}

// RecordCacheHit records one parse served from the cache.
func (m *Metrics) RecordCacheHit(ctx context.Context) {
	m.cacheHits.Add(ctx, 1)
}
