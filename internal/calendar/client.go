package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/teemow/roomclerk/internal/booking"
	"github.com/teemow/roomclerk/internal/google"
	"github.com/teemow/roomclerk/internal/interval"
)

// MaxFreeBusyItems is the provider's hard limit on calendars per
// free/busy query.
const MaxFreeBusyItems = 50

// Client wraps the Google Calendar service for one calendar domain.
type Client struct {
	svc    *calendar.Service
	domain string
}

// Domain returns the calendar domain this client is authenticated for.
func (c *Client) Domain() string {
	return c.domain
}

// HasTokenForDomain checks if a valid OAuth token exists for the
// domain.
func HasTokenForDomain(domain string, provider google.TokenProvider) bool {
	if provider == nil {
		return false
	}
	return provider.HasTokenForDomain(domain)
}

// NewClientForDomain creates a Calendar client authenticated with the
// given domain's credentials.
func NewClientForDomain(ctx context.Context, domain string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForDomain(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for domain %s: %w", domain, err)
	}

	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)
	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{svc: svc, domain: domain}, nil
}

// NewClient creates a Calendar client for the default domain using the
// file-based token provider.
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForDomain(ctx, google.DefaultDomain, google.NewFileTokenProvider())
}

// QueryFreeBusy checks availability for up to MaxFreeBusyItems
// calendars in a time range. The answer is keyed by calendar
// identifier; identifiers the provider could not query carry error
// reasons instead of busy data.
func (c *Client) QueryFreeBusy(ctx context.Context, timeMin, timeMax time.Time, calendarIDs []string) (map[string]FreeBusyInfo, error) {
	if len(calendarIDs) == 0 {
		return nil, fmt.Errorf("calendar ids cannot be empty")
	}
	if len(calendarIDs) > MaxFreeBusyItems {
		return nil, fmt.Errorf("freebusy query exceeds %d items: got %d", MaxFreeBusyItems, len(calendarIDs))
	}

	items := make([]*calendar.FreeBusyRequestItem, len(calendarIDs))
	for i, id := range calendarIDs {
		items[i] = &calendar.FreeBusyRequestItem{Id: id}
	}

	query := &calendar.FreeBusyRequest{
		TimeMin: timeMin.Format(time.RFC3339),
		TimeMax: timeMax.Format(time.RFC3339),
		Items:   items,
	}

	result, err := c.svc.Freebusy.Query(query).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query freebusy: %w", err)
	}

	infos := make(map[string]FreeBusyInfo, len(result.Calendars))
	for calID, cal := range result.Calendars {
		info := FreeBusyInfo{Calendar: calID}

		for _, busy := range cal.Busy {
			start, err := time.Parse(time.RFC3339, busy.Start)
			if err != nil {
				info.Errors = append(info.Errors, fmt.Sprintf("unparsable busy start %q", busy.Start))
				continue
			}
			end, err := time.Parse(time.RFC3339, busy.End)
			if err != nil {
				info.Errors = append(info.Errors, fmt.Sprintf("unparsable busy end %q", busy.End))
				continue
			}
			info.Busy = append(info.Busy, interval.TimeInterval{Start: start, End: end})
		}

		for _, calErr := range cal.Errors {
			info.Errors = append(info.Errors, calErr.Reason)
		}

		infos[calID] = info
	}

	return infos, nil
}

// ListBookings lists the bookings in a room's calendar within a time
// range, in start order, converted to the resolver's booking unit.
func (c *Client) ListBookings(ctx context.Context, roomID string, timeMin, timeMax time.Time) ([]booking.Existing, error) {
	events, err := c.svc.Events.List(roomID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for %s: %w", roomID, err)
	}

	var bookings []booking.Existing
	for _, event := range events.Items {
		if existing, ok := toExistingBooking(roomID, event); ok {
			bookings = append(bookings, existing)
		}
	}

	return bookings, nil
}

// CreateEvent creates a calendar event for a confirmed booking. Rooms
// are invited as attendees alongside the participants, which is how the
// provider blocks the room's calendar.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (*EventSummary, error) {
	if input.Summary == "" {
		return nil, fmt.Errorf("event summary cannot be empty")
	}
	if len(input.Attendees) == 0 {
		return nil, fmt.Errorf("event must have at least one attendee")
	}

	tz := input.TimeZone
	if tz == "" {
		tz = "UTC"
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: tz,
		},
		GuestsCanModify: true,
		Reminders: &calendar.EventReminders{
			UseDefault:      true,
			ForceSendFields: []string{"UseDefault"},
		},
	}

	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}
	for _, roomID := range input.RoomIDs {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: roomID, Resource: true})
	}

	created, err := c.svc.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	summary := toEventSummary(created)
	return &summary, nil
}
