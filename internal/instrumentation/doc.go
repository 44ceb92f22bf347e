// Package instrumentation provides OpenTelemetry instrumentation for the
// roomclerk scheduling engine.
//
// # Metrics
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Calendar Provider Metrics:
//   - calendar_queries_total: Counter of free/busy and event queries by domain, operation, status
//   - calendar_query_duration_seconds: Histogram of provider query durations
//   - calendar_query_chunks_total: Counter of free/busy request chunks issued
//
// Availability Metrics:
//   - availability_checks_total: Counter of availability checks by status
//   - availability_early_exits_total: Counter of checks that stopped before querying every chunk
//
// Booking Metrics:
//   - booking_resolutions_total: Counter of booking resolutions by outcome
//     (confirmed, negotiation, fallback, exhausted)
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: roomclerk)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordCalendarQuery(ctx, "corp", "freebusy", "success", time.Since(start))
//	recorder.RecordBookingResolution(ctx, "confirmed")
package instrumentation
