package common

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/roomclerk/internal/calendar"
	"github.com/teemow/roomclerk/internal/config"
	"github.com/teemow/roomclerk/internal/rooms"
	"github.com/teemow/roomclerk/internal/server"
)

func newTestContext(t *testing.T) *server.ServerContext {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)

	return server.NewServerContext(context.Background(), cfg, &rooms.Directory{}, calendar.NewSource(nil), nil)
}

func TestInstrumentedToolHandler_Success(t *testing.T) {
	ctx := context.Background()
	sc := newTestContext(t)
	defer func() { _ = sc.Shutdown() }()

	called := false
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("success"), nil
	}

	// No metrics or audit logger configured: the wrapper passes through
	wrapped := InstrumentedToolHandler("test_tool", "check", sc, handler)

	result, err := wrapped(ctx, mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.NotNil(t, result)
}

func TestInstrumentedToolHandler_ErrorPropagates(t *testing.T) {
	ctx := context.Background()
	sc := newTestContext(t)
	defer func() { _ = sc.Shutdown() }()

	expectedErr := errors.New("test error")
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, expectedErr
	}

	wrapped := InstrumentedToolHandler("test_tool", "check", sc, handler)

	_, err := wrapped(ctx, mcp.CallToolRequest{})
	assert.ErrorIs(t, err, expectedErr)
}

func TestInstrumentedToolHandler_AuditLogging(t *testing.T) {
	ctx := context.Background()
	sc := newTestContext(t)
	defer func() { _ = sc.Shutdown() }()

	var rec recordingHandler
	sc.SetAuditLogger(slog.New(&rec))

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}

	wrapped := InstrumentedToolHandler("booking_resolve", "resolve", sc, handler)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "booking_resolve",
			Arguments: map[string]interface{}{
				"user": "alice@example.com",
				"room": "room-a",
			},
		},
	}

	_, err := wrapped(ctx, req)
	require.NoError(t, err)

	require.Len(t, rec.records, 1)
	attrs := map[string]string{}
	rec.records[0].Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})
	assert.Equal(t, "booking_resolve", attrs["tool"])
	assert.Equal(t, "alice@example.com", attrs["user"])
	assert.Equal(t, "room-a", attrs["room"])
	assert.Equal(t, "true", attrs["success"])
}

// recordingHandler is a slog.Handler that captures records for assertions.
type recordingHandler struct {
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }
