package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer of business spans
const TracerName = "vendorhub-backend"

// Span attribute keys
const (
	SpanAttrVendorID     = "vendor.id"
	SpanAttrPayoutID     = "payout.id"
	SpanAttrPayoutMethod = "payout.method"
	SpanAttrPayoutStatus = "payout.status"
	SpanAttrAmount       = "amount"
	SpanAttrDocumentType = "kyc.document_type"
)

// StartServiceSpan starts an internal span named {service}.{method}. The
// caller ends it.
func StartServiceSpan(ctx context.Context, service, method string, keyValues ...any) (context.Context, trace.Span) {
	ctx, span := otel.GetTracerProvider().Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal))
	SetAttributes(span, keyValues...)
	return ctx, span
}

// SetAttributes adds key/value pairs to span. Non-string keys are skipped.
func SetAttributes(span trace.Span, keyValues ...any) {
	if span == nil || len(keyValues) < 2 {
		return
	}
	span.SetAttributes(toAttributes(keyValues)...)
}

// AddEvent adds a timestamped event with key/value attributes
func AddEvent(span trace.Span, name string, keyValues ...any) {
	if span == nil {
		return
	}
	span.AddEvent(name, trace.WithAttributes(toAttributes(keyValues)...))
}

// RecordError marks span failed with err. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TraceID returns the trace ID in ctx, or "" when there is none
func TraceID(ctx context.Context) string {
	id := trace.SpanContextFromContext(ctx).TraceID()
	if !id.IsValid() {
		return ""
	}
	return id.String()
}

func toAttributes(keyValues []any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, toAttribute(key, keyValues[i+1]))
	}
	return attrs
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
