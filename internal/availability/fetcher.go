package availability

import (
	"context"
	"log/slog"
	"sort"

	"github.com/teemow/roomclerk/internal/interval"
	"github.com/teemow/roomclerk/internal/logging"
)

// DefaultChunkSize is the provider's maximum item count per free/busy
// query.
const DefaultChunkSize = 50

// FreeBusySource answers free/busy queries for a single domain. All
// ids in one call belong to that domain. Implementations return a
// verdict per id; a request-level error fails the whole chunk.
type FreeBusySource interface {
	QueryFreeBusy(ctx context.Context, domain string, window interval.TimeInterval, ids []string) (map[string]FreeBusy, error)
}

// Options tunes a single Check call.
type Options struct {
	// RankBy orders a window's free identifiers ascending by the
	// returned key (e.g. room seating capacity). Ties keep the original
	// identifier order. Nil keeps the original order throughout.
	RankBy func(CalendarIdentifier) int

	// StopWhenAllWindowsServed stops issuing chunks once every window
	// has at least one free identifier. A latency optimization only:
	// with it set, callers must consult Result.Queried before drawing
	// conclusions about identifiers that were never sent.
	StopWhenAllWindowsServed bool
}

// MetricsRecorder receives per-check counters. Satisfied by the
// instrumentation metrics; a nil recorder disables recording.
type MetricsRecorder interface {
	RecordAvailabilityCheck(ctx context.Context, status string, earlyExit bool)
	RecordCalendarChunks(ctx context.Context, domain string, chunks int)
}

// Fetcher batches free/busy queries by domain and chunk.
type Fetcher struct {
	source    FreeBusySource
	chunkSize int
	logger    *slog.Logger
	recorder  MetricsRecorder
}

// NewFetcher creates a fetcher over the given source. A nil logger
// disables logging.
func NewFetcher(source FreeBusySource, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{
		source:    source,
		chunkSize: DefaultChunkSize,
		logger:    logging.WithOperation(logger, "freebusy_check"),
	}
}

// WithChunkSize overrides the per-query item limit. Values below 1 are
// ignored.
func (f *Fetcher) WithChunkSize(n int) *Fetcher {
	if n >= 1 {
		f.chunkSize = n
	}
	return f
}

// WithRecorder attaches a metrics recorder.
func (f *Fetcher) WithRecorder(r MetricsRecorder) *Fetcher {
	f.recorder = r
	return f
}

// Check determines, per window, which of the given identifiers are
// free. Identifiers are grouped by domain and chunked; each chunk is
// queried once over the span covering all windows and evaluated against
// every window.
func (f *Fetcher) Check(ctx context.Context, ids []CalendarIdentifier, windows []interval.TimeInterval, opts Options) (*Result, error) {
	result := &Result{Windows: make([]WindowResult, len(windows))}
	for i, w := range windows {
		result.Windows[i].Window = w
	}
	if len(ids) == 0 || len(windows) == 0 {
		return result, nil
	}

	span := querySpan(windows)
	rank := make(map[CalendarIdentifier]int, len(ids))
	for order, id := range ids {
		rank[id] = order
	}

	for _, group := range groupByDomain(ids) {
		for _, chunk := range chunked(group.ids, f.chunkSize) {
			f.queryChunk(ctx, group.domain, chunk, span, result)
			result.Queried = append(result.Queried, chunk...)
			if f.recorder != nil {
				f.recorder.RecordCalendarChunks(ctx, group.domain, 1)
			}

			if opts.StopWhenAllWindowsServed && allWindowsServed(result.Windows) {
				f.logger.DebugContext(ctx, "all windows served, skipping remaining chunks",
					slog.Int("queried", len(result.Queried)),
					slog.Int("requested", len(ids)))
				f.rankWindows(result, rank, opts)
				f.recordCheck(ctx, result, len(result.Queried) < len(ids))
				return result, nil
			}
		}
	}

	f.rankWindows(result, rank, opts)
	f.recordCheck(ctx, result, false)
	return result, nil
}

// recordCheck reports one finished Check. The check counts as an error
// when any window carries identifier errors.
func (f *Fetcher) recordCheck(ctx context.Context, result *Result, earlyExit bool) {
	if f.recorder == nil {
		return
	}
	status := "success"
	for i := range result.Windows {
		if len(result.Windows[i].Errors) > 0 {
			status = "error"
			break
		}
	}
	f.recorder.RecordAvailabilityCheck(ctx, status, earlyExit)
}

// queryChunk queries one domain chunk and folds the verdicts into every
// window. A request-level failure becomes a per-identifier error for
// each id in the chunk rather than failing the whole check.
func (f *Fetcher) queryChunk(ctx context.Context, domain string, chunk []CalendarIdentifier, span interval.TimeInterval, result *Result) {
	rawIDs := make([]string, len(chunk))
	for i, id := range chunk {
		rawIDs[i] = id.ID
	}

	verdicts, err := f.source.QueryFreeBusy(ctx, domain, span, rawIDs)
	if err != nil {
		f.logger.WarnContext(ctx, "freebusy chunk query failed",
			logging.Domain(domain),
			slog.Int("items", len(chunk)),
			logging.Err(err))
		for i := range result.Windows {
			for _, id := range chunk {
				result.Windows[i].Errors = append(result.Windows[i].Errors, IdentifierError{
					Identifier: id,
					Reason:     err.Error(),
				})
			}
		}
		return
	}

	for _, id := range chunk {
		fb, ok := verdicts[id.ID]
		if !ok {
			fb = FreeBusy{Errors: []string{"not present in provider response"}}
		}

		if len(fb.Errors) > 0 {
			for i := range result.Windows {
				result.Windows[i].Errors = append(result.Windows[i].Errors, IdentifierError{
					Identifier: id,
					Reason:     fb.Errors[0],
				})
			}
			continue
		}

		busy := interval.Merge(fb.Busy)
		for i := range result.Windows {
			if isFree(result.Windows[i].Window, busy) {
				result.Windows[i].Free = append(result.Windows[i].Free, id)
			}
		}
	}
}

func (f *Fetcher) rankWindows(result *Result, originalOrder map[CalendarIdentifier]int, opts Options) {
	if opts.RankBy == nil {
		return
	}
	for i := range result.Windows {
		free := result.Windows[i].Free
		sort.SliceStable(free, func(a, b int) bool {
			ka, kb := opts.RankBy(free[a]), opts.RankBy(free[b])
			if ka != kb {
				return ka < kb
			}
			return originalOrder[free[a]] < originalOrder[free[b]]
		})
	}
}

func isFree(window interval.TimeInterval, mergedBusy []interval.TimeInterval) bool {
	for _, b := range mergedBusy {
		if window.Overlaps(b) {
			return false
		}
	}
	return true
}

func allWindowsServed(windows []WindowResult) bool {
	for _, w := range windows {
		if len(w.Free) == 0 {
			return false
		}
	}
	return true
}

// querySpan is the single provider range covering all requested
// windows.
func querySpan(windows []interval.TimeInterval) interval.TimeInterval {
	span := windows[0]
	for _, w := range windows[1:] {
		if w.Start.Before(span.Start) {
			span.Start = w.Start
		}
		if w.End.After(span.End) {
			span.End = w.End
		}
	}
	return span
}

type domainGroup struct {
	domain string
	ids    []CalendarIdentifier
}

// groupByDomain partitions identifiers by domain, preserving first-seen
// domain order and identifier order within a domain.
func groupByDomain(ids []CalendarIdentifier) []domainGroup {
	var groups []domainGroup
	index := make(map[string]int)

	for _, id := range ids {
		i, ok := index[id.Domain]
		if !ok {
			i = len(groups)
			index[id.Domain] = i
			groups = append(groups, domainGroup{domain: id.Domain})
		}
		groups[i].ids = append(groups[i].ids, id)
	}

	return groups
}

func chunked(ids []CalendarIdentifier, size int) [][]CalendarIdentifier {
	var chunks [][]CalendarIdentifier
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
