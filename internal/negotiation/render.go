package negotiation

import (
	"fmt"
	"time"

	"github.com/teemow/roomclerk/internal/booking"
)

const clockLayout = "3:04 PM"

// Describe renders the one-line answer for a resolution outcome.
func Describe(req booking.Request, outcome booking.Outcome, lookahead time.Duration) string {
	switch outcome.Kind {
	case booking.OutcomeConfirmed:
		return fmt.Sprintf("%s is free for %d people at %s. Booking confirmed!",
			req.RoomID, req.PartySize, req.Window.Start.Format(clockLayout))

	case booking.OutcomeNegotiation:
		c := outcome.Conflict
		return fmt.Sprintf("%s is booked at %s by %s for only %d people. "+
			"Would you like me to message them to see if you can share or swap?",
			req.RoomID, req.Window.Start.Format(clockLayout), c.Owner, c.Attendees)

	case booking.OutcomeFallback:
		slot := outcome.Slot
		return fmt.Sprintf("No rooms at %s, but %s is free from %s-%s. Should I book this instead?",
			req.Window.Start.Format(clockLayout), req.RoomID,
			slot.Start.Format("3:04"), slot.End.Format("3:04"))

	case booking.OutcomeExhausted:
		return fmt.Sprintf("Sorry, I couldn't find any free or negotiable slot in %s within the next %s.",
			req.RoomID, formatLookahead(lookahead))

	default:
		return fmt.Sprintf("unexpected outcome %s", outcome.Kind)
	}
}

// MessageToOwner renders the note proposing a share or swap to the
// owner of the conflicting booking.
func MessageToOwner(req booking.Request, conflict booking.Existing) string {
	return fmt.Sprintf("Hi %s, a group of %d is looking for %s at %s while your booking has %d attendees. "+
		"Would you be open to sharing the room or swapping to a smaller one?",
		conflict.Owner, req.PartySize, req.RoomID,
		conflict.Window.Start.Format(clockLayout), conflict.Attendees)
}

func formatLookahead(d time.Duration) string {
	if d <= 0 {
		d = time.Duration(booking.DefaultLookahead) * booking.DefaultStep
	}
	if d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}
