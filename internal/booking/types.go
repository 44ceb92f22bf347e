package booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/teemow/roomclerk/internal/interval"
)

// Request is one room booking request. It lives only for the duration
// of a single resolution.
type Request struct {
	ID        string
	RoomID    string
	Window    interval.TimeInterval
	PartySize int
	User      string
}

// NewRequest creates a request with a fresh id.
func NewRequest(roomID string, window interval.TimeInterval, partySize int, user string) Request {
	return Request{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		Window:    window,
		PartySize: partySize,
		User:      user,
	}
}

// Existing is a booking already on the calendar, the unit a request is
// compared against.
type Existing struct {
	RoomID    string
	Window    interval.TimeInterval
	Attendees int
	Owner     string
}

// OutcomeKind classifies a resolution.
type OutcomeKind int

const (
	// OutcomeConfirmed: the requested window is free.
	OutcomeConfirmed OutcomeKind = iota
	// OutcomeNegotiation: the conflicting booking has strictly fewer
	// attendees; its owner can be asked to share or swap.
	OutcomeNegotiation
	// OutcomeFallback: a later conflict-free slot was found within the
	// lookahead bound.
	OutcomeFallback
	// OutcomeExhausted: no free or negotiable slot within the lookahead
	// bound. A terminal user-facing answer, not a system fault.
	OutcomeExhausted
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeNegotiation:
		return "negotiation"
	case OutcomeFallback:
		return "fallback"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Outcome is the mutually exclusive result of one resolution.
// Conflict is set for OutcomeNegotiation, Slot for OutcomeFallback.
type Outcome struct {
	Kind     OutcomeKind
	Conflict *Existing
	Slot     *interval.TimeInterval
}

// ValidationError reports a malformed request field. Validation fails
// fast, before any provider query is issued.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}
