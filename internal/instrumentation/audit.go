package instrumentation

import (
	"log/slog"
	"time"
)

// ToolInvocation captures the details of one MCP tool call for audit
// logging. Booking tools act on behalf of real users, so every call is
// recorded with who asked for what.
//
// The UserEmail field contains PII. General logs should use UserDomain()
// only; full addresses belong in audit-specific log streams with
// appropriate access controls.
type ToolInvocation struct {
	// Tool name
	Tool string

	// User identity, if known
	UserEmail string

	// Target information
	Domain    string // calendar domain the call went to
	RoomID    string // room acted on, if any
	Operation string // operation type (check, suggest, resolve, create)

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// Tracing context
	TraceID string
	SpanID  string
}

// UserDomain returns the domain portion of the user's email for
// lower-cardinality logging.
func (ti *ToolInvocation) UserDomain() string {
	return ExtractUserDomain(ti.UserEmail)
}

// Status returns "success" or "error" based on the Success field.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes for structured logging. The user is
// reduced to their email domain; use LogAuditAttrs for the full audit
// record.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("user_domain", ti.UserDomain()),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}

	if ti.Domain != "" {
		attrs = append(attrs, slog.String("domain", ti.Domain))
	}
	if ti.RoomID != "" {
		attrs = append(attrs, slog.String("room", ti.RoomID))
	}
	if ti.Operation != "" {
		attrs = append(attrs, slog.String("operation", ti.Operation))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}

	return attrs
}

// LogAuditAttrs returns slog attributes for full audit logging,
// including the user's complete email address. Route these records to
// secure storage only.
func (ti *ToolInvocation) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("user", ti.UserEmail),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}

	if ti.Domain != "" {
		attrs = append(attrs, slog.String("domain", ti.Domain))
	}
	if ti.RoomID != "" {
		attrs = append(attrs, slog.String("room", ti.RoomID))
	}
	if ti.Operation != "" {
		attrs = append(attrs, slog.String("operation", ti.Operation))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ti.SpanID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}

	return attrs
}
