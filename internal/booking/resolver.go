package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/teemow/roomclerk/internal/interval"
	"github.com/teemow/roomclerk/internal/logging"
)

const (
	// DefaultStep is the spacing between fallback probe times.
	DefaultStep = 30 * time.Minute
	// DefaultLookahead is the number of fallback probes, i.e. up to
	// 4 hours past the requested start at the default step.
	DefaultLookahead = 8
	// StartGrace is how far in the past a request may start. A meeting
	// that just began can still claim a room; anything older is a
	// mistyped date.
	StartGrace = time.Hour
)

// ConflictFinder locates the first booking conflicting with a window in
// a given room, in scan order. It returns nil when the room is free.
type ConflictFinder interface {
	FindConflict(ctx context.Context, roomID string, window interval.TimeInterval) (*Existing, error)
}

// List is an in-memory ConflictFinder over a fixed booking set.
type List []Existing

// FindConflict returns the first booking in the same room overlapping
// the window. Only the first conflict matters; later ones are not
// aggregated.
func (l List) FindConflict(ctx context.Context, roomID string, window interval.TimeInterval) (*Existing, error) {
	for i := range l {
		if l[i].RoomID == roomID && window.Overlaps(l[i].Window) {
			return &l[i], nil
		}
	}
	return nil, nil
}

// Resolver classifies booking requests. Step and Lookahead bound the
// fallback scan; the zero value is not usable, construct with
// NewResolver.
type Resolver struct {
	finder    ConflictFinder
	step      time.Duration
	lookahead int
	logger    *slog.Logger
	now       func() time.Time
}

// NewResolver creates a resolver with the default 8 probes of 30
// minutes. A nil logger disables logging.
func NewResolver(finder ConflictFinder, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		finder:    finder,
		step:      DefaultStep,
		lookahead: DefaultLookahead,
		logger:    logging.WithOperation(logger, "booking_resolve"),
		now:       time.Now,
	}
}

// WithFallback overrides the fallback step size and probe count.
// Non-positive values keep the current setting.
func (r *Resolver) WithFallback(step time.Duration, lookahead int) *Resolver {
	if step > 0 {
		r.step = step
	}
	if lookahead > 0 {
		r.lookahead = lookahead
	}
	return r
}

// Resolve runs the conflict state machine for one request:
//
//  1. No conflicting booking: Confirmed.
//  2. First conflict holds strictly fewer attendees than the request:
//     NegotiationOffered with that booking. Equal counts are not
//     negotiable.
//  3. Otherwise scan forward step by step; the first conflict-free
//     probe wins as Fallback, or the outcome is Exhausted after the
//     full lookahead.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Outcome, error) {
	if err := validate(req, r.now()); err != nil {
		return Outcome{}, err
	}

	conflict, err := r.finder.FindConflict(ctx, req.RoomID, req.Window)
	if err != nil {
		return Outcome{}, err
	}

	if conflict == nil {
		r.logger.InfoContext(ctx, "booking confirmed",
			logging.Room(req.RoomID),
			logging.Window(req.Window),
			slog.Int("party_size", req.PartySize))
		return Outcome{Kind: OutcomeConfirmed}, nil
	}

	if conflict.Attendees < req.PartySize {
		r.logger.InfoContext(ctx, "negotiation offered",
			logging.Room(req.RoomID),
			logging.UserHash(conflict.Owner),
			slog.Int("their_attendees", conflict.Attendees),
			slog.Int("party_size", req.PartySize))
		return Outcome{Kind: OutcomeNegotiation, Conflict: conflict}, nil
	}

	return r.scanFallback(ctx, req)
}

// scanFallback probes candidate start times at fixed offsets past the
// requested start, returning the first conflict-free window.
func (r *Resolver) scanFallback(ctx context.Context, req Request) (Outcome, error) {
	duration := req.Window.Duration()

	for i := 1; i <= r.lookahead; i++ {
		start := req.Window.Start.Add(time.Duration(i) * r.step)
		candidate := interval.TimeInterval{Start: start, End: start.Add(duration)}

		conflict, err := r.finder.FindConflict(ctx, req.RoomID, candidate)
		if err != nil {
			return Outcome{}, err
		}
		if conflict == nil {
			r.logger.InfoContext(ctx, "fallback slot found",
				logging.Room(req.RoomID),
				logging.Window(candidate),
				slog.Int("probe", i))
			return Outcome{Kind: OutcomeFallback, Slot: &candidate}, nil
		}
	}

	r.logger.InfoContext(ctx, "fallback scan exhausted",
		logging.Room(req.RoomID),
		logging.Window(req.Window),
		slog.Int("probes", r.lookahead))
	return Outcome{Kind: OutcomeExhausted}, nil
}

func validate(req Request, now time.Time) error {
	if req.RoomID == "" {
		return &ValidationError{Field: "room", Msg: "room id cannot be empty"}
	}
	if !req.Window.Valid() {
		return &ValidationError{Field: "time", Msg: "end must be after start"}
	}
	if req.Window.Start.Before(now.Add(-StartGrace)) {
		return &ValidationError{Field: "time", Msg: "start is more than an hour in the past"}
	}
	if req.PartySize <= 0 {
		return &ValidationError{Field: "people", Msg: "party size must be positive"}
	}
	return nil
}
