package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the roomclerk package.
const TracerName = "github.com/teemow/roomclerk"

// Span attribute keys for operations.
const (
	// SpanAttrTool is the MCP tool name attribute.
	SpanAttrTool = "mcp.tool"

	// SpanAttrDomain is the calendar domain attribute.
	SpanAttrDomain = "calendar.domain"

	// SpanAttrOperation is the provider operation attribute.
	SpanAttrOperation = "calendar.operation"

	// SpanAttrRoom is the room identifier attribute.
	SpanAttrRoom = "booking.room"

	// SpanAttrOutcome is the booking resolution outcome attribute.
	SpanAttrOutcome = "booking.outcome"

	// SpanAttrStatus is the operation status attribute.
	SpanAttrStatus = "status"

	// SpanAttrWindowCount is the number of candidate windows attribute.
	SpanAttrWindowCount = "availability.windows"

	// SpanAttrChunkCount is the number of free/busy chunks attribute.
	SpanAttrChunkCount = "availability.chunks"
)

// SpanAttributeBuilder helps construct OpenTelemetry span attributes
// with consistent naming.
type SpanAttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewSpanAttributeBuilder creates a new SpanAttributeBuilder.
func NewSpanAttributeBuilder() *SpanAttributeBuilder {
	return &SpanAttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 8),
	}
}

// WithTool adds the MCP tool name attribute.
func (b *SpanAttributeBuilder) WithTool(tool string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrTool, tool))
	return b
}

// WithDomain adds the calendar domain attribute.
func (b *SpanAttributeBuilder) WithDomain(domain string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrDomain, domain))
	return b
}

// WithOperation adds the provider operation attribute.
func (b *SpanAttributeBuilder) WithOperation(operation string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrOperation, operation))
	return b
}

// WithRoom adds the room identifier attribute.
func (b *SpanAttributeBuilder) WithRoom(roomID string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrRoom, roomID))
	return b
}

// WithOutcome adds the booking resolution outcome attribute.
func (b *SpanAttributeBuilder) WithOutcome(outcome string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrOutcome, outcome))
	return b
}

// WithStatus adds the operation status attribute.
func (b *SpanAttributeBuilder) WithStatus(status string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrStatus, status))
	return b
}

// WithWindowCount adds the candidate window count attribute.
func (b *SpanAttributeBuilder) WithWindowCount(n int) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.Int(SpanAttrWindowCount, n))
	return b
}

// WithChunkCount adds the free/busy chunk count attribute.
func (b *SpanAttributeBuilder) WithChunkCount(n int) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.Int(SpanAttrChunkCount, n))
	return b
}

// Build returns the accumulated attributes.
func (b *SpanAttributeBuilder) Build() []attribute.KeyValue {
	return b.attrs
}

// StartSpan starts a span on the globally registered tracer with the
// given name and attributes.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.Tracer(TracerName)
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan finalizes a span with the outcome of the operation. A non-nil
// err marks the span as failed and records the error.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
