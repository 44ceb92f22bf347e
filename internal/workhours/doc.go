// Package workhours segments a wall-clock range into schedulable work
// windows. Weekends are skipped entirely. Two granularities are
// provided: DayBlocks produces one coarse block per working day for
// free/busy batching, and Periods splits each working day into
// pre-lunch, lunch and post-lunch periods for slot suggestion.
package workhours
