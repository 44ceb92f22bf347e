package booking_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/roomclerk/internal/calendar"
	"github.com/teemow/roomclerk/internal/instrumentation"
	"github.com/teemow/roomclerk/internal/interval"
	"github.com/teemow/roomclerk/internal/server"
	"github.com/teemow/roomclerk/internal/tools/common"
)

// RegisterEventTools registers the event creation tool with the MCP server.
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createTool := mcp.NewTool("booking_create",
		mcp.WithDescription("Create the calendar event for a confirmed slot, booking the room and inviting attendees"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("room",
			mcp.Required(),
			mcp.Description("Room ID or title to book"),
		),
		mcp.WithString("attendees",
			mcp.Required(),
			mcp.Description("Comma-separated attendee email addresses"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time (RFC3339 or '2006-01-02 15:04' in the configured timezone)"),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Description("Meeting duration in minutes (default: 60)"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("user",
			mcp.Description("Email of the requesting user, used for audit logging"),
		),
	)

	s.AddTool(createTool, common.InstrumentedToolHandler(
		"booking_create", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreate(ctx, request, sc)
		}))

	return nil
}

func handleCreate(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	loc, err := sc.Config().Location()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	title, err := common.RequiredString(args, "title")
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

	attendeesStr, err := common.RequiredString(args, "attendees")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	attendees := common.SplitList(attendeesStr)
	if len(attendees) == 0 {
		return mcp.NewToolResultError("attendees is required"), nil
	}

	start, err := common.ParseTimeArg(args, "start", loc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	duration := time.Duration(common.OptionalInt(args, "durationMinutes", 60)) * time.Minute
	if duration <= 0 {
		return mcp.NewToolResultError("durationMinutes must be positive"), nil
	}
	window := interval.TimeInterval{Start: start, End: start.Add(duration)}

	// Refuse to double-book: the room must be conflict-free first
	client, err := sc.ClientForDomain(room.Domain)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create calendar client: %v", err)), nil
	}

	bookings, err := client.ListBookings(ctx, room.ID, window.Start, window.End)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to check room calendar: %v", err)), nil
	}
	for _, b := range bookings {
		if window.Overlaps(b.Window) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"%s is already booked %s by %s; resolve the conflict first",
				room.Title, formatWindow(b.Window.Start, b.Window.End), b.Owner)), nil
		}
	}

	event, err := client.CreateEvent(ctx, calendar.EventInput{
		Summary:     title,
		Description: common.OptionalString(args, "description", ""),
		Start:       window.Start,
		End:         window.End,
		TimeZone:    sc.Config().Timezone,
		Attendees:   attendees,
		RoomIDs:     []string{room.ID},
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Created event %q in %s, %s.\n", event.Summary, room.Title,
		formatWindow(event.Start, event.End))
	fmt.Fprintf(&sb, "Event ID: %s\n", event.ID)
	fmt.Fprintf(&sb, "Attendees: %s\n", strings.Join(attendees, ", "))

	return mcp.NewToolResultText(sb.String()), nil
}
