package availability

import (
	"fmt"

	"github.com/teemow/roomclerk/internal/interval"
)

// CalendarIdentifier names one calendar (a room or a participant) and
// the domain whose credentials must be used to query it. Identifiers of
// different domains are never mixed in a single provider request.
type CalendarIdentifier struct {
	ID     string
	Domain string
}

func (c CalendarIdentifier) String() string {
	if c.Domain == "" {
		return c.ID
	}
	return c.ID + "@" + c.Domain
}

// FreeBusy is the provider's answer for a single identifier: its busy
// intervals, or the reasons it could not be queried.
type FreeBusy struct {
	Busy   []interval.TimeInterval
	Errors []string
}

// IdentifierError reports that one identifier could not be queried.
// It is surfaced alongside results for the identifiers that succeeded.
type IdentifierError struct {
	Identifier CalendarIdentifier
	Reason     string
}

func (e IdentifierError) Error() string {
	return fmt.Sprintf("calendar %s: %s", e.Identifier, e.Reason)
}

// WindowResult is the availability verdict for one requested window.
type WindowResult struct {
	Window interval.TimeInterval

	// Free lists the identifiers confirmed free for the window, ordered
	// by the caller's ranking key when one was supplied.
	Free []CalendarIdentifier

	// Errors lists identifiers that could not be queried.
	Errors []IdentifierError
}

// Result aggregates the verdicts for all requested windows.
type Result struct {
	Windows []WindowResult

	// Queried lists the identifiers that were actually sent to the
	// provider. When the fetcher exits early this is a subset of the
	// requested identifiers; callers must not treat an unqueried
	// identifier as free or errored.
	Queried []CalendarIdentifier
}

// Slot is a suggested meeting window for a participant set.
type Slot struct {
	Interval interval.TimeInterval
	IsLunch  bool
}
