package availability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teemow/roomclerk/internal/interval"
	"github.com/teemow/roomclerk/internal/logging"
	"github.com/teemow/roomclerk/internal/workhours"
)

// DefaultMaxSlots caps the number of suggested slots per request.
const DefaultMaxSlots = 10

// SuggestRequest describes a participant availability search.
type SuggestRequest struct {
	Participants []CalendarIdentifier
	Search       interval.TimeInterval
	Duration     time.Duration

	// MaxSlots caps the result; zero means DefaultMaxSlots.
	MaxSlots int
}

// SuggestResult carries the suggested slots plus any identifiers whose
// calendars could not be queried.
type SuggestResult struct {
	Slots  []Slot
	Errors []IdentifierError
}

// Suggest finds meeting slots within working hours where all queryable
// participants are free. The search range is segmented into work
// periods per the schedule; each period is checked against the merged
// busy data of all participants and sliced into windows of the
// requested duration. Lunch periods are suggested but tagged.
func (f *Fetcher) Suggest(ctx context.Context, req SuggestRequest, schedule workhours.Schedule) (*SuggestResult, error) {
	if len(req.Participants) == 0 {
		return nil, fmt.Errorf("participants cannot be empty")
	}
	if req.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	if !req.Search.Valid() {
		return nil, fmt.Errorf("search end must be after search start")
	}

	maxSlots := req.MaxSlots
	if maxSlots <= 0 {
		maxSlots = DefaultMaxSlots
	}

	// One query per domain over the whole search range; busy data is
	// re-used for every work period.
	busy, errs := f.collectBusy(ctx, req.Participants, req.Search)
	result := &SuggestResult{Errors: errs}

	merged := interval.Merge(busy)

	for _, period := range schedule.Periods(req.Search.Start, req.Search.End) {
		for _, gap := range interval.FreeGaps(period.Interval, merged) {
			for _, w := range interval.SliceWindows(gap, req.Duration) {
				result.Slots = append(result.Slots, Slot{Interval: w, IsLunch: period.IsLunch})
			}
		}
		if len(result.Slots) >= maxSlots {
			result.Slots = result.Slots[:maxSlots]
			break
		}
	}

	f.logger.DebugContext(ctx, "suggested participant slots",
		slog.Int("participants", len(req.Participants)),
		slog.Int("slots", len(result.Slots)),
		slog.Int("errors", len(result.Errors)))

	return result, nil
}

// collectBusy gathers the busy intervals of all participants, one
// provider query per domain chunk. Query failures are folded into
// per-identifier errors.
func (f *Fetcher) collectBusy(ctx context.Context, ids []CalendarIdentifier, span interval.TimeInterval) ([]interval.TimeInterval, []IdentifierError) {
	var busy []interval.TimeInterval
	var errs []IdentifierError

	for _, group := range groupByDomain(ids) {
		for _, chunk := range chunked(group.ids, f.chunkSize) {
			rawIDs := make([]string, len(chunk))
			for i, id := range chunk {
				rawIDs[i] = id.ID
			}

			verdicts, err := f.source.QueryFreeBusy(ctx, group.domain, span, rawIDs)
			if err != nil {
				f.logger.WarnContext(ctx, "freebusy chunk query failed",
					logging.Domain(group.domain),
					logging.Err(err))
				for _, id := range chunk {
					errs = append(errs, IdentifierError{Identifier: id, Reason: err.Error()})
				}
				continue
			}

			for _, id := range chunk {
				fb, ok := verdicts[id.ID]
				if !ok {
					errs = append(errs, IdentifierError{Identifier: id, Reason: "not present in provider response"})
					continue
				}
				if len(fb.Errors) > 0 {
					errs = append(errs, IdentifierError{Identifier: id, Reason: fb.Errors[0]})
					continue
				}
				busy = append(busy, fb.Busy...)
			}
		}
	}

	return busy, errs
}
