package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/roomclerk/internal/booking"
	"github.com/teemow/roomclerk/internal/interval"
)

// FreeBusyInfo is the provider's free/busy answer for one calendar
// identifier. Errors carries the provider's per-calendar error reasons;
// a calendar with errors has unknown availability, it is neither free
// nor busy.
type FreeBusyInfo struct {
	Calendar string
	Busy     []interval.TimeInterval
	Errors   []string
}

// EventInput describes a calendar event to create for a confirmed
// booking.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Attendees   []string
	RoomIDs     []string
}

// EventSummary is the created or retrieved event in provider-neutral
// form.
type EventSummary struct {
	ID        string
	Summary   string
	Start     time.Time
	End       time.Time
	Organizer string
	Attendees []string
	Status    string
}

func toEventSummary(event *calendar.Event) EventSummary {
	if event == nil {
		return EventSummary{}
	}

	summary := EventSummary{
		ID:      event.Id,
		Summary: event.Summary,
		Status:  event.Status,
	}

	if event.Start != nil && event.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
			summary.Start = t
		}
	}
	if event.End != nil && event.End.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
			summary.End = t
		}
	}
	if event.Organizer != nil {
		summary.Organizer = event.Organizer.Email
	}
	for _, att := range event.Attendees {
		summary.Attendees = append(summary.Attendees, att.Email)
	}

	return summary
}

// toExistingBooking converts a provider event in a room's calendar to
// the booking unit the conflict resolver compares against. Resource
// attendees (the room itself) do not count towards the party size.
func toExistingBooking(roomID string, event *calendar.Event) (booking.Existing, bool) {
	if event == nil || event.Start == nil || event.End == nil {
		return booking.Existing{}, false
	}
	if event.Start.DateTime == "" || event.End.DateTime == "" {
		// All-day events don't block rooms.
		return booking.Existing{}, false
	}

	start, err := time.Parse(time.RFC3339, event.Start.DateTime)
	if err != nil {
		return booking.Existing{}, false
	}
	end, err := time.Parse(time.RFC3339, event.End.DateTime)
	if err != nil {
		return booking.Existing{}, false
	}

	existing := booking.Existing{
		RoomID: roomID,
		Window: interval.TimeInterval{Start: start, End: end},
	}
	if event.Organizer != nil {
		existing.Owner = event.Organizer.Email
	}
	for _, att := range event.Attendees {
		if att.Resource {
			continue
		}
		if att.ResponseStatus == "declined" {
			continue
		}
		existing.Attendees++
	}

	return existing, true
}
