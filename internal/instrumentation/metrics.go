package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrDomain    = "domain"
	attrOutcome   = "outcome"
	attrTool      = "tool"
	attrRoom      = "room"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Calendar provider metrics
	calendarQueriesTotal  metric.Int64Counter
	calendarQueryDuration metric.Float64Histogram
	calendarQueryChunks   metric.Int64Counter

	// Availability metrics
	availabilityChecksTotal metric.Int64Counter
	availabilityEarlyExits  metric.Int64Counter

	// Booking metrics
	bookingResolutionsTotal metric.Int64Counter

	// MCP Tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels
// such as room identifiers are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.calendarQueriesTotal, err = meter.Int64Counter(
		"calendar_queries_total",
		metric.WithDescription("Total number of calendar provider queries"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_queries_total counter: %w", err)
	}

	m.calendarQueryDuration, err = meter.Float64Histogram(
		"calendar_query_duration_seconds",
		metric.WithDescription("Calendar provider query duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_query_duration_seconds histogram: %w", err)
	}

	m.calendarQueryChunks, err = meter.Int64Counter(
		"calendar_query_chunks_total",
		metric.WithDescription("Total number of free/busy request chunks issued"),
		metric.WithUnit("{chunk}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_query_chunks_total counter: %w", err)
	}

	m.availabilityChecksTotal, err = meter.Int64Counter(
		"availability_checks_total",
		metric.WithDescription("Total number of availability checks"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create availability_checks_total counter: %w", err)
	}

	m.availabilityEarlyExits, err = meter.Int64Counter(
		"availability_early_exits_total",
		metric.WithDescription("Availability checks that stopped before querying every chunk"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create availability_early_exits_total counter: %w", err)
	}

	m.bookingResolutionsTotal, err = meter.Int64Counter(
		"booking_resolutions_total",
		metric.WithDescription("Total number of booking resolutions by outcome"),
		metric.WithUnit("{resolution}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking_resolutions_total counter: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordCalendarQuery records a calendar provider query.
//
// Parameters:
//   - domain: calendar domain the query went to
//   - operation: query type (freebusy, list, create)
//   - status: result status ("success" or "error")
//   - duration: time taken for the query
func (m *Metrics) RecordCalendarQuery(ctx context.Context, domain, operation, status string, duration time.Duration) {
	if m.calendarQueriesTotal == nil || m.calendarQueryDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrDomain, domain),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.calendarQueriesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.calendarQueryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordCalendarChunks adds the number of free/busy chunks issued against a domain.
func (m *Metrics) RecordCalendarChunks(ctx context.Context, domain string, chunks int) {
	if m.calendarQueryChunks == nil {
		return // Instrumentation not initialized
	}

	m.calendarQueryChunks.Add(ctx, int64(chunks), metric.WithAttributes(
		attribute.String(attrDomain, domain),
	))
}

// RecordAvailabilityCheck records one availability check. earlyExit is true
// when the check stopped before querying every chunk because every window
// already had a free room.
func (m *Metrics) RecordAvailabilityCheck(ctx context.Context, status string, earlyExit bool) {
	if m.availabilityChecksTotal == nil {
		return // Instrumentation not initialized
	}

	m.availabilityChecksTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrStatus, status),
	))

	if earlyExit && m.availabilityEarlyExits != nil {
		m.availabilityEarlyExits.Add(ctx, 1)
	}
}

// RecordBookingResolution records a booking resolution outcome.
// Outcome should be one of: "confirmed", "negotiation", "fallback", "exhausted".
// The room label is only added when detailed labels are enabled.
func (m *Metrics) RecordBookingResolution(ctx context.Context, outcome string, roomID string) {
	if m.bookingResolutionsTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOutcome, outcome),
	}
	if m.detailedLabels && roomID != "" {
		attrs = append(attrs, attribute.String(attrRoom, roomID))
	}

	m.bookingResolutionsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordToolInvocation records an MCP tool invocation with its status and duration.
func (m *Metrics) RecordToolInvocation(ctx context.Context, tool, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
