package workhours

import (
	"time"

	"github.com/teemow/roomclerk/internal/interval"
)

// ClockTime is a time of day independent of any date.
type ClockTime struct {
	Hour   int
	Minute int
}

// on anchors the clock time on the given day in the day's location.
func (c ClockTime) on(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// Schedule describes the canonical working day.
type Schedule struct {
	// Coarse single-block day, used for day-granularity free/busy checks.
	DayStart ClockTime
	DayEnd   ClockTime

	// Fine three-period day for slot suggestion.
	WorkStart  ClockTime
	LunchStart ClockTime
	LunchEnd   ClockTime
	WorkEnd    ClockTime
}

// DefaultSchedule matches the office working day: coarse block
// 09:00-18:30, fine periods 09:30-12:00, 12:00-14:00 (lunch) and
// 14:00-18:30.
func DefaultSchedule() Schedule {
	return Schedule{
		DayStart:   ClockTime{Hour: 9},
		DayEnd:     ClockTime{Hour: 18, Minute: 30},
		WorkStart:  ClockTime{Hour: 9, Minute: 30},
		LunchStart: ClockTime{Hour: 12},
		LunchEnd:   ClockTime{Hour: 14},
		WorkEnd:    ClockTime{Hour: 18, Minute: 30},
	}
}

// Period is a schedulable sub-interval of a working day.
type Period struct {
	Interval interval.TimeInterval
	IsLunch  bool
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DayBlocks returns one coarse work block per working day touched by
// [start, end), clamped to the requested range. Weekend days contribute
// nothing.
func (s Schedule) DayBlocks(start, end time.Time) []interval.TimeInterval {
	var blocks []interval.TimeInterval

	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		if isWeekend(day) {
			continue
		}

		block := interval.TimeInterval{Start: s.DayStart.on(day), End: s.DayEnd.on(day)}
		if block.Start.Before(start) {
			block.Start = start
		}
		if block.End.After(end) {
			block.End = end
		}
		if block.Valid() {
			blocks = append(blocks, block)
		}
	}

	return blocks
}

// Periods returns the ordered fine-grained periods of every working day
// touched by [start, end), each tagged as lunch or not. Only the first
// and last touched days are clamped; every following day starts at the
// canonical work start.
func (s Schedule) Periods(start, end time.Time) []Period {
	var periods []Period

	current := start
	for current.Before(end) {
		if isWeekend(current) {
			current = s.WorkStart.on(current.AddDate(0, 0, 1))
			continue
		}

		dayPeriods := []Period{
			{Interval: interval.TimeInterval{Start: s.WorkStart.on(current), End: s.LunchStart.on(current)}},
			{Interval: interval.TimeInterval{Start: s.LunchStart.on(current), End: s.LunchEnd.on(current)}, IsLunch: true},
			{Interval: interval.TimeInterval{Start: s.LunchEnd.on(current), End: s.WorkEnd.on(current)}},
		}

		for _, p := range dayPeriods {
			if p.Interval.Start.Before(current) {
				p.Interval.Start = current
			}
			if p.Interval.End.After(end) {
				p.Interval.End = end
			}
			if p.Interval.Valid() {
				periods = append(periods, p)
			}
		}

		current = s.WorkStart.on(current.AddDate(0, 0, 1))
	}

	return periods
}
