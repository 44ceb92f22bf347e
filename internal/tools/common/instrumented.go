package common

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/trace"

	"github.com/teemow/roomclerk/internal/instrumentation"
	"github.com/teemow/roomclerk/internal/server"
)

// InstrumentedToolHandler wraps a tool handler with metrics and audit
// logging. Every invocation is timed, counted, and written to the audit
// log with the requesting user.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", "resolve", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	operation string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		// Without instrumentation there is nothing to record
		if metrics == nil && auditLogger == nil {
			return handler(ctx, request)
		}

		start := time.Now()
		args := request.GetArguments()

		invocation := instrumentation.ToolInvocation{
			Tool:      toolName,
			Operation: operation,
			UserEmail: GetUserFromArgs(args),
			StartTime: start,
		}
		if roomVal, ok := args["room"].(string); ok {
			invocation.RoomID = roomVal
		}
		if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
			invocation.TraceID = spanCtx.TraceID().String()
			invocation.SpanID = spanCtx.SpanID().String()
		}

		result, err := handler(ctx, request)

		invocation.Duration = time.Since(start)
		invocation.Success = err == nil && (result == nil || !result.IsError)
		if err != nil {
			invocation.Error = err.Error()
		}

		if metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, invocation.Status(), invocation.Duration)
		}

		if auditLogger != nil {
			auditLogger.LogAttrs(ctx, slog.LevelInfo, "tool invocation",
				invocation.LogAuditAttrs()...)
		}

		return result, err
	}
}
