package booking_tools

import (
	"fmt"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/roomclerk/internal/availability"
	"github.com/teemow/roomclerk/internal/rooms"
	"github.com/teemow/roomclerk/internal/server"
)

// RegisterBookingTools registers all scheduling tools with the MCP server.
func RegisterBookingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := RegisterAvailabilityTools(s, sc); err != nil {
		return fmt.Errorf("failed to register availability tools: %w", err)
	}

	if err := RegisterResolveTools(s, sc); err != nil {
		return fmt.Errorf("failed to register resolve tools: %w", err)
	}

	if err := RegisterEventTools(s, sc); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	return nil
}

// identifiersForRooms maps resolved rooms to calendar identifiers.
func identifiersForRooms(list []rooms.Room) []availability.CalendarIdentifier {
	ids := make([]availability.CalendarIdentifier, len(list))
	for i, r := range list {
		ids[i] = availability.CalendarIdentifier{ID: r.ID, Domain: r.Domain}
	}
	return ids
}

// titleFor returns the display title for a calendar identifier,
// falling back to the raw id for rooms missing from the directory.
func titleFor(dir *rooms.Directory, id availability.CalendarIdentifier) string {
	if room, err := dir.ResolveRoom(id.ID); err == nil && room.Title != "" {
		return room.Title
	}
	return id.ID
}

func formatWindow(start, end time.Time) string {
	return fmt.Sprintf("%s to %s",
		start.Format("2006-01-02 15:04"),
		end.Format("15:04"))
}
