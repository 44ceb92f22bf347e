package booking_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/roomclerk/internal/availability"
	"github.com/teemow/roomclerk/internal/instrumentation"
	"github.com/teemow/roomclerk/internal/interval"
	"github.com/teemow/roomclerk/internal/rooms"
	"github.com/teemow/roomclerk/internal/server"
	"github.com/teemow/roomclerk/internal/tools/common"
	"github.com/teemow/roomclerk/internal/workhours"
)

// RegisterAvailabilityTools registers availability checking tools with the MCP server.
func RegisterAvailabilityTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	checkTool := mcp.NewTool("room_check_availability",
		mcp.WithDescription("Check which of the given rooms are free for one or more candidate start times"),
		mcp.WithString("rooms",
			mcp.Required(),
			mcp.Description("Comma-separated list of room IDs or titles to check"),
		),
		mcp.WithString("starts",
			mcp.Required(),
			mcp.Description("Comma-separated candidate start times (RFC3339 or '2006-01-02 15:04' in the configured timezone)"),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Description("Meeting duration in minutes (default: 60)"),
		),
		mcp.WithString("user",
			mcp.Description("Email of the requesting user, used for audit logging"),
		),
	)

	s.AddTool(checkTool, common.InstrumentedToolHandler(
		"room_check_availability", instrumentation.OperationCheck, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCheckAvailability(ctx, request, sc)
		}))

	findTool := mcp.NewTool("room_find_available",
		mcp.WithDescription("Find rooms matching the given filters that are free for a time window, smallest room first"),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time (RFC3339 or '2006-01-02 15:04' in the configured timezone)"),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Description("Meeting duration in minutes (default: 60)"),
		),
		mcp.WithString("office",
			mcp.Description("Office code or short name to search in"),
		),
		mcp.WithString("name",
			mcp.Description("Partial room name to match"),
		),
		mcp.WithString("country",
			mcp.Description("Partial country name to match"),
		),
		mcp.WithString("city",
			mcp.Description("Partial city name to match"),
		),
		mcp.WithNumber("level",
			mcp.Description("Exact floor level to match"),
		),
		mcp.WithNumber("minCapacity",
			mcp.Description("Minimum seating capacity"),
		),
		mcp.WithString("user",
			mcp.Description("Email of the requesting user, used for audit logging"),
		),
	)

	s.AddTool(findTool, common.InstrumentedToolHandler(
		"room_find_available", instrumentation.OperationCheck, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFindAvailable(ctx, request, sc)
		}))

	suggestTool := mcp.NewTool("availability_suggest",
		mcp.WithDescription("Suggest meeting slots within working hours where all participants are free"),
		mcp.WithString("participants",
			mcp.Required(),
			mcp.Description("Comma-separated participant email addresses"),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Required(),
			mcp.Description("Meeting duration in minutes"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start of the search range (RFC3339 or '2006-01-02 15:04')"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("End of the search range (RFC3339 or '2006-01-02 15:04')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of slots to return (default: 10)"),
		),
		mcp.WithString("user",
			mcp.Description("Email of the requesting user, used for audit logging"),
		),
	)

	s.AddTool(suggestTool, common.InstrumentedToolHandler(
		"availability_suggest", instrumentation.OperationSuggest, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSuggest(ctx, request, sc)
		}))

	return nil
}

func handleCheckAvailability(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	loc, err := sc.Config().Location()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	roomsStr, err := common.RequiredString(args, "rooms")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved, resolveErrs := sc.Directory().ResolveRooms(common.SplitList(roomsStr))
	if len(resolved) == 0 {
		return mcp.NewToolResultError("none of the given rooms could be resolved"), nil
	}

	startsStr, err := common.RequiredString(args, "starts")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	duration := time.Duration(common.OptionalInt(args, "durationMinutes", 60)) * time.Minute
	if duration <= 0 {
		return mcp.NewToolResultError("durationMinutes must be positive"), nil
	}

	var windows []interval.TimeInterval
	for _, raw := range common.SplitList(startsStr) {
		start, err := common.ParseTime(raw, loc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		windows = append(windows, interval.TimeInterval{Start: start, End: start.Add(duration)})
	}
	if len(windows) == 0 {
		return mcp.NewToolResultError("starts is required"), nil
	}

	result, err := sc.Fetcher().Check(ctx, identifiersForRooms(resolved), windows, availability.Options{
		RankBy:                   capacityRank(sc.Directory()),
		StopWhenAllWindowsServed: true,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to check availability: %v", err)), nil
	}

	var sb strings.Builder
	for _, w := range result.Windows {
		fmt.Fprintf(&sb, "Window %s:\n", formatWindow(w.Window.Start, w.Window.End))
		if len(w.Free) == 0 {
			sb.WriteString("  No rooms free\n")
		}
		for _, id := range w.Free {
			fmt.Fprintf(&sb, "  FREE: %s\n", titleFor(sc.Directory(), id))
		}
		for _, e := range w.Errors {
			fmt.Fprintf(&sb, "  ERROR: %s\n", e.Error())
		}
		sb.WriteString("\n")
	}
	for _, err := range resolveErrs {
		fmt.Fprintf(&sb, "Skipped: %v\n", err)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func handleFindAvailable(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	loc, err := sc.Config().Location()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start, err := common.ParseTimeArg(args, "start", loc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	duration := time.Duration(common.OptionalInt(args, "durationMinutes", 60)) * time.Minute
	if duration <= 0 {
		return mcp.NewToolResultError("durationMinutes must be positive"), nil
	}

	filter := rooms.Filter{
		RoomNameContains:   common.OptionalString(args, "name", ""),
		OfficeCodeExact:    common.OptionalString(args, "office", ""),
		CountryContains:    common.OptionalString(args, "country", ""),
		CityContains:       common.OptionalString(args, "city", ""),
		Level:              common.OptionalIntPtr(args, "level"),
		MinimumCapacity:    common.OptionalInt(args, "minCapacity", 0),
		OfficeNameContains: "",
	}

	candidates := sc.Directory().Search(filter)
	if len(candidates) == 0 {
		return mcp.NewToolResultText("No rooms match the given filters."), nil
	}

	window := interval.TimeInterval{Start: start, End: start.Add(duration)}
	result, err := sc.Fetcher().Check(ctx, identifiersForRooms(candidates), []interval.TimeInterval{window}, availability.Options{
		RankBy:                   capacityRank(sc.Directory()),
		StopWhenAllWindowsServed: false,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to check availability: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Rooms free %s (smallest first):\n", formatWindow(window.Start, window.End))
	verdict := result.Windows[0]
	if len(verdict.Free) == 0 {
		sb.WriteString("  none\n")
	}
	for _, id := range verdict.Free {
		room, err := sc.Directory().ResolveRoom(id.ID)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "  %s (seats %d, level %d)\n", room.Title, room.SeatingCapacity, room.Level)
	}
	for _, e := range verdict.Errors {
		fmt.Fprintf(&sb, "  ERROR: %s\n", e.Error())
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func handleSuggest(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	loc, err := sc.Config().Location()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	participantsStr, err := common.RequiredString(args, "participants")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	durationMinutes, err := common.RequiredInt(args, "durationMinutes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start, err := common.ParseTimeArg(args, "start", loc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := common.ParseTimeArg(args, "end", loc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var participants []availability.CalendarIdentifier
	for _, p := range common.SplitList(participantsStr) {
		participants = append(participants, availability.CalendarIdentifier{ID: p})
	}

	result, err := sc.Fetcher().Suggest(ctx, availability.SuggestRequest{
		Participants: participants,
		Search:       interval.TimeInterval{Start: start, End: end},
		Duration:     time.Duration(durationMinutes) * time.Minute,
		MaxSlots:     common.OptionalInt(args, "maxResults", sc.Config().MaxSuggestions),
	}, workhours.DefaultSchedule())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to suggest slots: %v", err)), nil
	}

	if len(result.Slots) == 0 {
		return mcp.NewToolResultText("No common free slots found in the search range."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d slot(s) where all participants are free:\n", len(result.Slots))
	for i, slot := range result.Slots {
		fmt.Fprintf(&sb, "%d. %s", i+1, formatWindow(slot.Interval.Start, slot.Interval.End))
		if slot.IsLunch {
			sb.WriteString(" (lunch time)")
		}
		sb.WriteString("\n")
	}
	for _, e := range result.Errors {
		fmt.Fprintf(&sb, "Could not query: %s\n", e.Error())
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// capacityRank orders free rooms smallest seating capacity first so a
// small meeting never hogs a big room.
func capacityRank(dir *rooms.Directory) func(availability.CalendarIdentifier) int {
	return func(id availability.CalendarIdentifier) int {
		room, err := dir.ResolveRoom(id.ID)
		if err != nil {
			return int(^uint(0) >> 1) // unknown rooms sort last
		}
		return room.SeatingCapacity
	}
}
