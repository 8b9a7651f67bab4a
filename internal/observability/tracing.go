package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Span attribute keys used by this library.
const (
	AttrExpressionLength = "odata.filter.expression_length"
	AttrRangeVariable    = "odata.filter.range_variable"
)

// Tracer wraps an OpenTelemetry tracer with filter-specific span creation
// methods.
type Tracer struct {
	tracer      trace.Tracer
	serviceName string
}

// NewTracer creates a new Tracer using the given TracerProvider.
func NewTracer(tp trace.TracerProvider, serviceName string) *Tracer {
	return &Tracer{
		tracer:      tp.Tracer(TracerName),
		serviceName: serviceName,
	}
}

var noopTracer = NewTracer(tracenoop.NewTracerProvider(), "noop")

// StartParse starts a span covering one parse invocation.
func (t *Tracer) StartParse(ctx context.Context, exprLen int, rangeVar string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "odatafilter.parse", trace.WithAttributes(
		attribute.Int(AttrExpressionLength, exprLen),
		attribute.String(AttrRangeVariable, rangeVar),
	))
}

// RecordError marks the span as failed and records the error.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
