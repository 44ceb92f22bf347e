package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/teemow/roomclerk/internal/booking"
	"github.com/teemow/roomclerk/internal/interval"
)

// DomainLookup maps a room identifier to its calendar domain.
type DomainLookup func(roomID string) (string, error)

// BookingFinder is a provider-backed conflict finder: it reads the
// room's calendar and returns the first overlapping booking in start
// order.
type BookingFinder struct {
	source    *Source
	domainFor DomainLookup
}

// NewBookingFinder creates a finder over the given source. domainFor
// resolves each room to the domain whose credentials can read its
// calendar.
func NewBookingFinder(source *Source, domainFor DomainLookup) *BookingFinder {
	return &BookingFinder{source: source, domainFor: domainFor}
}

// FindConflict implements booking.ConflictFinder.
func (f *BookingFinder) FindConflict(ctx context.Context, roomID string, window interval.TimeInterval) (*booking.Existing, error) {
	domain, err := f.domainFor(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve domain for room %s: %w", roomID, err)
	}

	client, err := f.source.ClientForDomain(ctx, domain)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	bookings, err := client.ListBookings(ctx, roomID, window.Start, window.End)
	f.source.recordQuery(ctx, domain, "list", err, started)
	if err != nil {
		return nil, err
	}

	for i := range bookings {
		if window.Overlaps(bookings[i].Window) {
			return &bookings[i], nil
		}
	}

	return nil, nil
}
