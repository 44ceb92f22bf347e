package interval

import (
	"fmt"
	"sort"
	"time"
)

// TimeInterval represents a half-open time range [Start, End).
// A valid interval has Start strictly before End.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the interval has a positive duration.
func (iv TimeInterval) Valid() bool {
	return iv.Start.Before(iv.End)
}

// Duration returns the length of the interval.
func (iv TimeInterval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether iv and other share any time.
// Touching boundaries (iv.End == other.Start) do not count as overlap.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return !(iv.End.Compare(other.Start) <= 0 || iv.Start.Compare(other.End) >= 0)
}

// Contains reports whether t falls within [Start, End).
func (iv TimeInterval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

func (iv TimeInterval) String() string {
	return fmt.Sprintf("%s/%s", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// BusyPeriod is a time interval during which a single calendar
// identifier is occupied.
type BusyPeriod struct {
	Calendar string
	Interval TimeInterval
}

// Merge collapses possibly-overlapping intervals into a minimal sorted
// set of non-overlapping intervals covering exactly the same time.
// Intervals that touch at a boundary are joined. Merging an already
// merged set returns an equal set.
func Merge(intervals []TimeInterval) []TimeInterval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]TimeInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]TimeInterval, 0, len(sorted))
	current := sorted[0]
	for _, iv := range sorted[1:] {
		if iv.Start.Compare(current.End) <= 0 {
			if iv.End.After(current.End) {
				current.End = iv.End
			}
			continue
		}
		merged = append(merged, current)
		current = iv
	}
	merged = append(merged, current)

	return merged
}

// FreeGaps returns the sub-intervals of bounds not covered by the given
// busy intervals. The busy intervals do not need to be merged or sorted.
func FreeGaps(bounds TimeInterval, busy []TimeInterval) []TimeInterval {
	var gaps []TimeInterval

	cursor := bounds.Start
	for _, b := range Merge(busy) {
		if b.End.Compare(bounds.Start) <= 0 || b.Start.Compare(bounds.End) >= 0 {
			continue
		}
		if cursor.Before(b.Start) {
			gaps = append(gaps, TimeInterval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(bounds.End) {
		gaps = append(gaps, TimeInterval{Start: cursor, End: bounds.End})
	}

	return gaps
}

// SliceWindows cuts an interval into consecutive windows of the given
// duration, starting at iv.Start. A trailing remainder shorter than
// duration is dropped.
func SliceWindows(iv TimeInterval, duration time.Duration) []TimeInterval {
	if duration <= 0 {
		return nil
	}

	var windows []TimeInterval
	start := iv.Start
	for !start.Add(duration).After(iv.End) {
		windows = append(windows, TimeInterval{Start: start, End: start.Add(duration)})
		start = start.Add(duration)
	}

	return windows
}
