package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/roomclerk/internal/interval"
	"github.com/teemow/roomclerk/internal/workhours"
)

func TestSuggestValidation(t *testing.T) {
	fetcher := NewFetcher(&fakeSource{}, nil)
	schedule := workhours.DefaultSchedule()
	search := window(t, "2025-07-11 09:00", "2025-07-11 18:30")

	_, err := fetcher.Suggest(context.Background(), SuggestRequest{
		Search:   search,
		Duration: time.Hour,
	}, schedule)
	assert.ErrorContains(t, err, "participants")

	_, err = fetcher.Suggest(context.Background(), SuggestRequest{
		Participants: ids("corp", "alice@example.com"),
		Search:       search,
	}, schedule)
	assert.ErrorContains(t, err, "duration")

	_, err = fetcher.Suggest(context.Background(), SuggestRequest{
		Participants: ids("corp", "alice@example.com"),
		Search:       interval.TimeInterval{Start: search.End, End: search.Start},
		Duration:     time.Hour,
	}, schedule)
	assert.ErrorContains(t, err, "search end")
}

func TestSuggestFindsGapsAroundBusyTime(t *testing.T) {
	// Alice is busy 09:30-11:00; Bob (other domain) is busy 15:00-16:00.
	source := &fakeSource{
		busy: map[string][]interval.TimeInterval{
			"alice@example.com": {window(t, "2025-07-11 09:30", "2025-07-11 11:00")},
			"bob@partner.com":   {window(t, "2025-07-11 15:00", "2025-07-11 16:00")},
		},
	}
	fetcher := NewFetcher(source, nil)

	participants := append(ids("corp", "alice@example.com"), ids("subsidiary", "bob@partner.com")...)
	result, err := fetcher.Suggest(context.Background(), SuggestRequest{
		Participants: participants,
		Search:       window(t, "2025-07-11 09:00", "2025-07-11 18:30"),
		Duration:     time.Hour,
	}, workhours.DefaultSchedule())
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	// One query per domain.
	require.Len(t, source.queries, 2)

	require.NotEmpty(t, result.Slots)
	assert.Equal(t, window(t, "2025-07-11 11:00", "2025-07-11 12:00"), result.Slots[0].Interval)
	assert.False(t, result.Slots[0].IsLunch)

	for _, slot := range result.Slots {
		assert.False(t, slot.Interval.Overlaps(window(t, "2025-07-11 09:30", "2025-07-11 11:00")),
			"slot %s overlaps alice's busy block", slot.Interval)
		assert.False(t, slot.Interval.Overlaps(window(t, "2025-07-11 15:00", "2025-07-11 16:00")),
			"slot %s overlaps bob's busy block", slot.Interval)
	}
}

func TestSuggestTagsLunchSlots(t *testing.T) {
	fetcher := NewFetcher(&fakeSource{}, nil)

	result, err := fetcher.Suggest(context.Background(), SuggestRequest{
		Participants: ids("corp", "alice@example.com"),
		Search:       window(t, "2025-07-11 12:00", "2025-07-11 14:00"),
		Duration:     time.Hour,
	}, workhours.DefaultSchedule())
	require.NoError(t, err)

	require.Len(t, result.Slots, 2)
	for _, slot := range result.Slots {
		assert.True(t, slot.IsLunch)
	}
}

func TestSuggestCapsResults(t *testing.T) {
	fetcher := NewFetcher(&fakeSource{}, nil)

	// A full free week at 30-minute duration yields far more than the cap.
	result, err := fetcher.Suggest(context.Background(), SuggestRequest{
		Participants: ids("corp", "alice@example.com"),
		Search:       window(t, "2025-07-07 09:00", "2025-07-11 18:30"),
		Duration:     30 * time.Minute,
	}, workhours.DefaultSchedule())
	require.NoError(t, err)

	assert.Len(t, result.Slots, DefaultMaxSlots)
}

func TestSuggestReportsUnqueryableParticipants(t *testing.T) {
	source := &fakeSource{
		errors: map[string]string{"ghost@example.com": "notFound"},
	}
	fetcher := NewFetcher(source, nil)

	result, err := fetcher.Suggest(context.Background(), SuggestRequest{
		Participants: ids("corp", "alice@example.com", "ghost@example.com"),
		Search:       window(t, "2025-07-11 09:00", "2025-07-11 18:30"),
		Duration:     time.Hour,
	}, workhours.DefaultSchedule())
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "ghost@example.com", result.Errors[0].Identifier.ID)
	// Slots are still produced from the participants that could be
	// queried.
	assert.NotEmpty(t, result.Slots)
}

func TestSuggestSkipsWeekend(t *testing.T) {
	fetcher := NewFetcher(&fakeSource{}, nil)

	result, err := fetcher.Suggest(context.Background(), SuggestRequest{
		Participants: ids("corp", "alice@example.com"),
		Search:       window(t, "2025-07-12 09:00", "2025-07-13 18:00"),
		Duration:     time.Hour,
	}, workhours.DefaultSchedule())
	require.NoError(t, err)

	assert.Empty(t, result.Slots)
}
