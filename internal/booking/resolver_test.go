package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/roomclerk/internal/interval"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed
}

func window(t *testing.T, start, end string) interval.TimeInterval {
	t.Helper()
	return interval.TimeInterval{Start: ts(t, start), End: ts(t, end)}
}

func request(t *testing.T, room string, start, end string, people int) Request {
	t.Helper()
	return NewRequest(room, window(t, start, end), people, "you")
}

// testResolver pins the clock to the morning of the fixture day so the
// fixed 2025-07-11 windows stay bookable.
func testResolver(t *testing.T, finder ConflictFinder) *Resolver {
	t.Helper()
	r := NewResolver(finder, nil)
	r.now = func() time.Time { return ts(t, "2025-07-11 09:00") }
	return r
}

func TestResolveConfirmedWhenRoomFree(t *testing.T) {
	resolver := testResolver(t, List{})

	outcome, err := resolver.Resolve(context.Background(),
		request(t, "Room A", "2025-07-11 14:00", "2025-07-11 15:00", 4))
	require.NoError(t, err)

	assert.Equal(t, OutcomeConfirmed, outcome.Kind)
	assert.Nil(t, outcome.Conflict)
	assert.Nil(t, outcome.Slot)
}

func TestResolveConfirmedWhenOtherRoomBooked(t *testing.T) {
	existing := List{
		{RoomID: "Room B", Window: window(t, "2025-07-11 14:00", "2025-07-11 15:00"), Attendees: 2, Owner: "alice"},
	}
	resolver := testResolver(t, existing)

	outcome, err := resolver.Resolve(context.Background(),
		request(t, "Room A", "2025-07-11 14:00", "2025-07-11 15:00", 4))
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, outcome.Kind)
}

func TestResolveBackToBackIsNotAConflict(t *testing.T) {
	existing := List{
		{RoomID: "Room A", Window: window(t, "2025-07-11 13:00", "2025-07-11 14:00"), Attendees: 9, Owner: "alice"},
		{RoomID: "Room A", Window: window(t, "2025-07-11 15:00", "2025-07-11 16:00"), Attendees: 9, Owner: "bob"},
	}
	resolver := testResolver(t, existing)

	outcome, err := resolver.Resolve(context.Background(),
		request(t, "Room A", "2025-07-11 14:00", "2025-07-11 15:00", 4))
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, outcome.Kind)
}

func TestResolveNegotiationWhenFewerAttendees(t *testing.T) {
	existing := List{
		{RoomID: "Room A", Window: window(t, "2025-07-11 14:00", "2025-07-11 15:00"), Attendees: 2, Owner: "alice"},
	}
	resolver := testResolver(t, existing)

	outcome, err := resolver.Resolve(context.Background(),
		request(t, "Room A", "2025-07-11 14:00", "2025-07-11 15:00", 5))
	require.NoError(t, err)

	assert.Equal(t, OutcomeNegotiation, outcome.Kind)
	require.NotNil(t, outcome.Conflict)
	assert.Equal(t, "alice", outcome.Conflict.Owner)
	assert.Equal(t, 2, outcome.Conflict.Attendees)
}

func TestResolveEqualAttendeesGoToFallbackNotNegotiation(t *testing.T) {
	existing := List{
		{RoomID: "Room A", Window: window(t, "2025-07-11 14:00", "2025-07-11 15:00"), Attendees: 5, Owner: "alice"},
	}
	resolver := testResolver(t, existing)

	outcome, err := resolver.Resolve(context.Background(),
		request(t, "Room A", "2025-07-11 14:00", "2025-07-11 15:00", 5))
	require.NoError(t, err)

	assert.Equal(t, OutcomeFallback, outcome.Kind)
	require.NotNil(t, outcome.Slot)
	// The 14:30 probe still overlaps the 14:00-15:00 booking; 15:00 is
	// the first conflict-free probe.
	assert.Equal(t, window(t, "2025-07-11 15:00", "2025-07-11 16:00"), *outcome.Slot)
}

func TestResolveFallbackReturnsFirstFreeProbe(t *testing.T) {
	// Room booked 14:00-15:00 by a party of 5; a request for 5 cannot
	// negotiate, and the room frees up at 14:30 for the half-hour
	// request.
	existing := List{
		{RoomID: "Room A", Window: window(t, "2025-07-11 14:00", "2025-07-11 14:30"), Attendees: 5, Owner: "alice"},
	}
	resolver := testResolver(t, existing)

	outcome, err := resolver.Resolve(context.Background(),
		request(t, "Room A", "2025-07-11 14:00", "2025-07-11 14:30", 5))
	require.NoError(t, err)

	assert.Equal(t, OutcomeFallback, outcome.Kind)
	assert.Equal(t, window(t, "2025-07-11 14:30", "2025-07-11 15:00"), *outcome.Slot)
}

func TestResolveExhaustedAfterEightProbes(t *testing.T) {
	// Solid bookings from 14:00 through 19:00 with attendee counts at
	// or above the request at every step.
	var existing List
	for start := ts(t, "2025-07-11 14:00"); start.Before(ts(t, "2025-07-11 19:00")); start = start.Add(30 * time.Minute) {
		existing = append(existing, Existing{
			RoomID:    "Room A",
			Window:    interval.TimeInterval{Start: start, End: start.Add(30 * time.Minute)},
			Attendees: 6,
			Owner:     "alice",
		})
	}

	probes := 0
	counting := conflictFinderFunc(func(ctx context.Context, roomID string, w interval.TimeInterval) (*Existing, error) {
		probes++
		return existing.FindConflict(ctx, roomID, w)
	})
	resolver := testResolver(t, counting)

	outcome, err := resolver.Resolve(context.Background(),
		request(t, "Room A", "2025-07-11 14:00", "2025-07-11 15:00", 5))
	require.NoError(t, err)

	assert.Equal(t, OutcomeExhausted, outcome.Kind)
	// 1 initial check + exactly 8 fallback probes, never more.
	assert.Equal(t, 9, probes)
}

func TestResolveConfigurableFallback(t *testing.T) {
	existing := List{
		{RoomID: "Room A", Window: window(t, "2025-07-11 14:00", "2025-07-11 16:00"), Attendees: 9, Owner: "alice"},
	}
	// 2 probes of 1 hour: 15:00 conflicts, 16:00 is free.
	resolver := testResolver(t, existing).WithFallback(time.Hour, 2)

	outcome, err := resolver.Resolve(context.Background(),
		request(t, "Room A", "2025-07-11 14:00", "2025-07-11 15:00", 4))
	require.NoError(t, err)

	assert.Equal(t, OutcomeFallback, outcome.Kind)
	assert.Equal(t, window(t, "2025-07-11 16:00", "2025-07-11 17:00"), *outcome.Slot)
}

func TestResolveFirstConflictInScanOrderWins(t *testing.T) {
	existing := List{
		{RoomID: "Room A", Window: window(t, "2025-07-11 14:30", "2025-07-11 15:00"), Attendees: 2, Owner: "alice"},
		{RoomID: "Room A", Window: window(t, "2025-07-11 14:00", "2025-07-11 14:30"), Attendees: 9, Owner: "bob"},
	}
	resolver := testResolver(t, existing)

	outcome, err := resolver.Resolve(context.Background(),
		request(t, "Room A", "2025-07-11 14:00", "2025-07-11 15:00", 5))
	require.NoError(t, err)

	// alice's booking comes first in scan order and has fewer
	// attendees, so negotiation is offered even though bob's does not
	// qualify.
	assert.Equal(t, OutcomeNegotiation, outcome.Kind)
	assert.Equal(t, "alice", outcome.Conflict.Owner)
}

func TestResolveValidation(t *testing.T) {
	resolver := testResolver(t, List{})
	ctx := context.Background()

	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{
			name:  "empty room",
			req:   NewRequest("", window(t, "2025-07-11 14:00", "2025-07-11 15:00"), 4, "you"),
			field: "room",
		},
		{
			name:  "inverted window",
			req:   NewRequest("Room A", window(t, "2025-07-11 15:00", "2025-07-11 14:00"), 4, "you"),
			field: "time",
		},
		{
			name:  "start a day in the past",
			req:   NewRequest("Room A", window(t, "2025-07-10 14:00", "2025-07-10 15:00"), 4, "you"),
			field: "time",
		},
		{
			name:  "zero party size",
			req:   NewRequest("Room A", window(t, "2025-07-11 14:00", "2025-07-11 15:00"), 0, "you"),
			field: "people",
		},
		{
			name:  "negative party size",
			req:   NewRequest("Room A", window(t, "2025-07-11 14:00", "2025-07-11 15:00"), -3, "you"),
			field: "people",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(ctx, tt.req)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestResolveStaleStartNeverReachesTheFinder(t *testing.T) {
	probes := 0
	counting := conflictFinderFunc(func(ctx context.Context, roomID string, w interval.TimeInterval) (*Existing, error) {
		probes++
		return nil, nil
	})
	resolver := testResolver(t, counting)

	_, err := resolver.Resolve(context.Background(),
		request(t, "Room A", "2025-07-09 14:00", "2025-07-09 15:00", 4))

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "time", vErr.Field)
	assert.Equal(t, 0, probes)
}

func TestResolveGraceAdmitsJustStartedMeeting(t *testing.T) {
	resolver := testResolver(t, List{})
	// Clock at 15:00: a meeting that began at 14:00 sits exactly on the
	// grace bound and is still accepted.
	resolver.now = func() time.Time { return ts(t, "2025-07-11 15:00") }

	outcome, err := resolver.Resolve(context.Background(),
		request(t, "Room A", "2025-07-11 14:00", "2025-07-11 15:00", 4))
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, outcome.Kind)
}

func TestResolveFinderErrorPropagates(t *testing.T) {
	failing := conflictFinderFunc(func(ctx context.Context, roomID string, w interval.TimeInterval) (*Existing, error) {
		return nil, errors.New("provider unavailable")
	})
	resolver := testResolver(t, failing)

	_, err := resolver.Resolve(context.Background(),
		request(t, "Room A", "2025-07-11 14:00", "2025-07-11 15:00", 4))
	assert.ErrorContains(t, err, "provider unavailable")
}

// conflictFinderFunc adapts a function to the ConflictFinder interface.
type conflictFinderFunc func(ctx context.Context, roomID string, window interval.TimeInterval) (*Existing, error)

func (f conflictFinderFunc) FindConflict(ctx context.Context, roomID string, window interval.TimeInterval) (*Existing, error) {
	return f(ctx, roomID, window)
}
