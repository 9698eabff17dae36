// Package tracing reads the ambient W3C trace identifiers of a request.
// It never starts, ends or propagates spans.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceContext holds the identifiers of the active span. An empty field means absent.
type TraceContext struct {
	TraceID      string
	SpanID       string
	ParentSpanID string
}

// Empty reports whether no trace is active.
func (tc TraceContext) Empty() bool {
	return tc.TraceID == "" && tc.SpanID == "" && tc.ParentSpanID == ""
}

// Reader returns the trace context active for ctx.
type Reader interface {
	Current(ctx context.Context) TraceContext
}

// ReaderFunc adapts a function to Reader.
type ReaderFunc func(ctx context.Context) TraceContext

// Current calls f.
func (f ReaderFunc) Current(ctx context.Context) TraceContext {
	return f(ctx)
}

// Static always returns the same trace context.
type Static TraceContext

// Current returns the fixed trace context.
func (s Static) Current(context.Context) TraceContext {
	return TraceContext(s)
}

// None is a Reader for hosts without tracing.
var None Reader = Static{}

// parentReporter is implemented by OpenTelemetry SDK spans.
type parentReporter interface {
	Parent() trace.SpanContext
}

// OTelReader reads the span stored in the context by OpenTelemetry.
type OTelReader struct{}

// NewOTelReader creates a reader backed by the OpenTelemetry context.
func NewOTelReader() OTelReader {
	return OTelReader{}
}

// Current returns the active span's identifiers, or an empty TraceContext.
func (OTelReader) Current(ctx context.Context) (tc TraceContext) {
	defer func() {
		if recover() != nil {
			tc = TraceContext{}
		}
	}()
	if ctx == nil {
		return TraceContext{}
	}

	span := trace.SpanFromContext(ctx)
	sc := span.SpanContext()
	if !sc.IsValid() {
		return TraceContext{}
	}

	tc = TraceContext{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
	if p, ok := span.(parentReporter); ok {
		if parent := p.Parent(); parent.SpanID().IsValid() {
			tc.ParentSpanID = parent.SpanID().String()
		}
	}
	return tc
}
