package availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/roomclerk/internal/interval"
)

// fakeSource serves canned free/busy data and records every query.
type fakeSource struct {
	busy    map[string][]interval.TimeInterval
	errors  map[string]string
	failAll error

	queries []fakeQuery
}

type fakeQuery struct {
	domain string
	ids    []string
}

func (s *fakeSource) QueryFreeBusy(ctx context.Context, domain string, window interval.TimeInterval, ids []string) (map[string]FreeBusy, error) {
	s.queries = append(s.queries, fakeQuery{domain: domain, ids: ids})

	if s.failAll != nil {
		return nil, s.failAll
	}

	verdicts := make(map[string]FreeBusy, len(ids))
	for _, id := range ids {
		if reason, ok := s.errors[id]; ok {
			verdicts[id] = FreeBusy{Errors: []string{reason}}
			continue
		}
		verdicts[id] = FreeBusy{Busy: s.busy[id]}
	}
	return verdicts, nil
}

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

func ids(domain string, raw ...string) []CalendarIdentifier {
	out := make([]CalendarIdentifier, len(raw))
	for i, r := range raw {
		out[i] = CalendarIdentifier{ID: r, Domain: domain}
	}
	return out
}

func TestCheckFreeAndBusy(t *testing.T) {
	source := &fakeSource{
		busy: map[string][]interval.TimeInterval{
			"room-a": {window(t, "2025-07-11 14:00", "2025-07-11 15:00")},
		},
	}
	fetcher := NewFetcher(source, nil)

	result, err := fetcher.Check(context.Background(),
		ids("corp", "room-a", "room-b"),
		[]interval.TimeInterval{window(t, "2025-07-11 14:00", "2025-07-11 15:00")},
		Options{})
	require.NoError(t, err)

	require.Len(t, result.Windows, 1)
	assert.Equal(t, ids("corp", "room-b"), result.Windows[0].Free)
	assert.Empty(t, result.Windows[0].Errors)
	assert.Equal(t, ids("corp", "room-a", "room-b"), result.Queried)
}

func TestCheckBoundaryTouchIsFree(t *testing.T) {
	source := &fakeSource{
		busy: map[string][]interval.TimeInterval{
			"room-a": {window(t, "2025-07-11 13:00", "2025-07-11 14:00")},
		},
	}
	fetcher := NewFetcher(source, nil)

	result, err := fetcher.Check(context.Background(),
		ids("corp", "room-a"),
		[]interval.TimeInterval{window(t, "2025-07-11 14:00", "2025-07-11 15:00")},
		Options{})
	require.NoError(t, err)

	assert.Equal(t, ids("corp", "room-a"), result.Windows[0].Free)
}

func TestCheckDomainsAreNeverMixed(t *testing.T) {
	source := &fakeSource{}
	fetcher := NewFetcher(source, nil)

	mixed := append(ids("corp", "a", "b"), ids("subsidiary", "c")...)
	mixed = append(mixed, ids("corp", "d")...)

	_, err := fetcher.Check(context.Background(), mixed,
		[]interval.TimeInterval{window(t, "2025-07-11 09:00", "2025-07-11 10:00")},
		Options{})
	require.NoError(t, err)

	require.Len(t, source.queries, 2)
	assert.Equal(t, "corp", source.queries[0].domain)
	assert.Equal(t, []string{"a", "b", "d"}, source.queries[0].ids)
	assert.Equal(t, "subsidiary", source.queries[1].domain)
	assert.Equal(t, []string{"c"}, source.queries[1].ids)
}

func TestCheckChunksAtLimit(t *testing.T) {
	source := &fakeSource{}
	fetcher := NewFetcher(source, nil)

	var all []CalendarIdentifier
	for i := 0; i < 70; i++ {
		all = append(all, CalendarIdentifier{ID: fmt.Sprintf("room-%02d", i), Domain: "corp"})
	}

	result, err := fetcher.Check(context.Background(), all,
		[]interval.TimeInterval{window(t, "2025-07-11 09:00", "2025-07-11 10:00")},
		Options{})
	require.NoError(t, err)

	require.Len(t, source.queries, 2)
	assert.Len(t, source.queries[0].ids, 50)
	assert.Len(t, source.queries[1].ids, 20)

	// Without early exit, every identifier is accounted for.
	assert.Len(t, result.Queried, 70)
	assert.Len(t, result.Windows[0].Free, 70)
}

func TestCheckEarlyExitSkipsRemainingChunks(t *testing.T) {
	source := &fakeSource{}
	fetcher := NewFetcher(source, nil)

	var all []CalendarIdentifier
	for i := 0; i < 70; i++ {
		all = append(all, CalendarIdentifier{ID: fmt.Sprintf("room-%02d", i), Domain: "corp"})
	}

	result, err := fetcher.Check(context.Background(), all,
		[]interval.TimeInterval{window(t, "2025-07-11 09:00", "2025-07-11 10:00")},
		Options{StopWhenAllWindowsServed: true})
	require.NoError(t, err)

	// First chunk of 50 already serves the window; the second chunk is
	// never queried and its identifiers appear in neither Free nor
	// Errors.
	require.Len(t, source.queries, 1)
	assert.Len(t, result.Queried, 50)
	assert.Len(t, result.Windows[0].Free, 50)
	assert.Empty(t, result.Windows[0].Errors)
}

func TestCheckNoEarlyExitWhileAWindowIsUnserved(t *testing.T) {
	// room-00 .. room-49 are all busy during the second window, so the
	// first chunk cannot serve it and the second chunk must be queried.
	busy := make(map[string][]interval.TimeInterval)
	for i := 0; i < 50; i++ {
		busy[fmt.Sprintf("room-%02d", i)] = []interval.TimeInterval{
			window(t, "2025-07-11 10:00", "2025-07-11 11:00"),
		}
	}
	source := &fakeSource{busy: busy}
	fetcher := NewFetcher(source, nil)

	var all []CalendarIdentifier
	for i := 0; i < 70; i++ {
		all = append(all, CalendarIdentifier{ID: fmt.Sprintf("room-%02d", i), Domain: "corp"})
	}

	result, err := fetcher.Check(context.Background(), all,
		[]interval.TimeInterval{
			window(t, "2025-07-11 09:00", "2025-07-11 10:00"),
			window(t, "2025-07-11 10:00", "2025-07-11 11:00"),
		},
		Options{StopWhenAllWindowsServed: true})
	require.NoError(t, err)

	require.Len(t, source.queries, 2)
	assert.Len(t, result.Windows[1].Free, 20)
}

func TestCheckProviderErrorIsReportedNotAssumed(t *testing.T) {
	source := &fakeSource{
		errors: map[string]string{"room-a": "notFound"},
	}
	fetcher := NewFetcher(source, nil)

	result, err := fetcher.Check(context.Background(),
		ids("corp", "room-a", "room-b"),
		[]interval.TimeInterval{window(t, "2025-07-11 09:00", "2025-07-11 10:00")},
		Options{})
	require.NoError(t, err)

	assert.Equal(t, ids("corp", "room-b"), result.Windows[0].Free)
	require.Len(t, result.Windows[0].Errors, 1)
	assert.Equal(t, "room-a", result.Windows[0].Errors[0].Identifier.ID)
	assert.Equal(t, "notFound", result.Windows[0].Errors[0].Reason)
}

func TestCheckChunkFailureBecomesPerIdentifierErrors(t *testing.T) {
	source := &fakeSource{failAll: errors.New("connection reset")}
	fetcher := NewFetcher(source, nil)

	result, err := fetcher.Check(context.Background(),
		ids("corp", "room-a", "room-b"),
		[]interval.TimeInterval{window(t, "2025-07-11 09:00", "2025-07-11 10:00")},
		Options{})
	require.NoError(t, err)

	assert.Empty(t, result.Windows[0].Free)
	require.Len(t, result.Windows[0].Errors, 2)
	for _, idErr := range result.Windows[0].Errors {
		assert.Contains(t, idErr.Reason, "connection reset")
	}
}

func TestCheckAggregationInvariant(t *testing.T) {
	source := &fakeSource{
		busy: map[string][]interval.TimeInterval{
			"room-b": {window(t, "2025-07-11 09:00", "2025-07-11 10:00")},
		},
		errors: map[string]string{"room-c": "notACalendarUser"},
	}
	fetcher := NewFetcher(source, nil)

	requested := ids("corp", "room-a", "room-b", "room-c")
	result, err := fetcher.Check(context.Background(), requested,
		[]interval.TimeInterval{window(t, "2025-07-11 09:00", "2025-07-11 10:00")},
		Options{})
	require.NoError(t, err)

	// Free + busy-excluded + errored must cover the full requested set
	// when early exit does not fire.
	assert.Equal(t, requested, result.Queried)
	seen := map[string]bool{"room-b": true} // busy, correctly absent from Free
	for _, id := range result.Windows[0].Free {
		seen[id.ID] = true
	}
	for _, e := range result.Windows[0].Errors {
		seen[e.Identifier.ID] = true
	}
	assert.Len(t, seen, len(requested))
}

func TestCheckRanking(t *testing.T) {
	source := &fakeSource{}
	fetcher := NewFetcher(source, nil)

	capacities := map[string]int{"room-a": 12, "room-b": 4, "room-c": 4, "room-d": 8}

	result, err := fetcher.Check(context.Background(),
		ids("corp", "room-a", "room-b", "room-c", "room-d"),
		[]interval.TimeInterval{window(t, "2025-07-11 09:00", "2025-07-11 10:00")},
		Options{RankBy: func(id CalendarIdentifier) int { return capacities[id.ID] }})
	require.NoError(t, err)

	// Ascending by capacity; room-b before room-c by original order.
	assert.Equal(t, ids("corp", "room-b", "room-c", "room-d", "room-a"), result.Windows[0].Free)
}

// fakeRecorder captures metrics calls for assertions.
type fakeRecorder struct {
	checks []recordedCheck
	chunks map[string]int
}

type recordedCheck struct {
	status    string
	earlyExit bool
}

func (r *fakeRecorder) RecordAvailabilityCheck(ctx context.Context, status string, earlyExit bool) {
	r.checks = append(r.checks, recordedCheck{status: status, earlyExit: earlyExit})
}

func (r *fakeRecorder) RecordCalendarChunks(ctx context.Context, domain string, chunks int) {
	if r.chunks == nil {
		r.chunks = make(map[string]int)
	}
	r.chunks[domain] += chunks
}

func TestCheckRecordsChunksAndOutcome(t *testing.T) {
	recorder := &fakeRecorder{}
	fetcher := NewFetcher(&fakeSource{}, nil).WithRecorder(recorder)

	var all []CalendarIdentifier
	for i := 0; i < 70; i++ {
		all = append(all, CalendarIdentifier{ID: fmt.Sprintf("room-%02d", i), Domain: "corp"})
	}

	_, err := fetcher.Check(context.Background(), all,
		[]interval.TimeInterval{window(t, "2025-07-11 09:00", "2025-07-11 10:00")},
		Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, recorder.chunks["corp"])
	require.Len(t, recorder.checks, 1)
	assert.Equal(t, recordedCheck{status: "success", earlyExit: false}, recorder.checks[0])
}

func TestCheckRecordsEarlyExit(t *testing.T) {
	recorder := &fakeRecorder{}
	fetcher := NewFetcher(&fakeSource{}, nil).WithRecorder(recorder)

	var all []CalendarIdentifier
	for i := 0; i < 70; i++ {
		all = append(all, CalendarIdentifier{ID: fmt.Sprintf("room-%02d", i), Domain: "corp"})
	}

	_, err := fetcher.Check(context.Background(), all,
		[]interval.TimeInterval{window(t, "2025-07-11 09:00", "2025-07-11 10:00")},
		Options{StopWhenAllWindowsServed: true})
	require.NoError(t, err)

	// Only the first chunk was issued before the window was served.
	assert.Equal(t, 1, recorder.chunks["corp"])
	require.Len(t, recorder.checks, 1)
	assert.Equal(t, recordedCheck{status: "success", earlyExit: true}, recorder.checks[0])
}

func TestCheckRecordsErrorStatus(t *testing.T) {
	recorder := &fakeRecorder{}
	source := &fakeSource{failAll: errors.New("connection reset")}
	fetcher := NewFetcher(source, nil).WithRecorder(recorder)

	_, err := fetcher.Check(context.Background(),
		ids("corp", "room-a"),
		[]interval.TimeInterval{window(t, "2025-07-11 09:00", "2025-07-11 10:00")},
		Options{})
	require.NoError(t, err)

	require.Len(t, recorder.checks, 1)
	assert.Equal(t, "error", recorder.checks[0].status)
}

func TestCheckEmptyInputs(t *testing.T) {
	source := &fakeSource{}
	fetcher := NewFetcher(source, nil)

	result, err := fetcher.Check(context.Background(), nil, nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Windows)
	assert.Empty(t, result.Queried)
	assert.Empty(t, source.queries)
}
