package booking_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/roomclerk/internal/booking"
	"github.com/teemow/roomclerk/internal/instrumentation"
	"github.com/teemow/roomclerk/internal/interval"
	"github.com/teemow/roomclerk/internal/negotiation"
	"github.com/teemow/roomclerk/internal/server"
	"github.com/teemow/roomclerk/internal/tools/common"
)

// RegisterResolveTools registers the booking resolution tool with the MCP server.
func RegisterResolveTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	resolveTool := mcp.NewTool("booking_resolve",
		mcp.WithDescription("Book a room, resolving conflicts by negotiation or by scanning for a later free slot"),
		mcp.WithString("room",
			mcp.Required(),
			mcp.Description("Room ID or title to book"),
		),
		mcp.WithNumber("people",
			mcp.Required(),
			mcp.Description("Number of people attending"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time (RFC3339 or '2006-01-02 15:04' in the configured timezone)"),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Description("Meeting duration in minutes (default: 60)"),
		),
		mcp.WithString("user",
			mcp.Required(),
			mcp.Description("Email of the user the booking is for"),
		),
	)

	s.AddTool(resolveTool, common.InstrumentedToolHandler(
		"booking_resolve", instrumentation.OperationResolve, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleResolve(ctx, request, sc)
		}))

	return nil
}

func handleResolve(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	loc, err := sc.Config().Location()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	roomArg, err := common.RequiredString(args, "room")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	room, err := sc.Directory().ResolveRoom(roomArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	people, err := common.RequiredInt(args, "people")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start, err := common.ParseTimeArg(args, "start", loc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	user, err := common.RequiredString(args, "user")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	duration := time.Duration(common.OptionalInt(args, "durationMinutes", 60)) * time.Minute
	window := interval.TimeInterval{Start: start, End: start.Add(duration)}

	// The resolver works on room ids; the reply uses the title
	req := booking.NewRequest(room.ID, window, people, user)
	outcome, err := sc.Resolver().Resolve(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve booking: %v", err)), nil
	}

	if metrics := sc.Metrics(); metrics != nil {
		metrics.RecordBookingResolution(ctx, outcome.Kind.String(), room.ID)
	}

	display := req
	display.RoomID = room.Title

	lookahead := time.Duration(sc.Config().FallbackLookahead) * sc.Config().FallbackStep()

	var sb strings.Builder
	sb.WriteString(negotiation.Describe(display, outcome, lookahead))
	if outcome.Kind == booking.OutcomeNegotiation && outcome.Conflict != nil {
		sb.WriteString("\n\nDraft message to the current holder:\n")
		sb.WriteString(negotiation.MessageToOwner(display, *outcome.Conflict))
	}

	return mcp.NewToolResultText(sb.String()), nil
}
