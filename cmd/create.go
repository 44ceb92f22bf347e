package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/roomclerk/internal/calendar"
	"github.com/teemow/roomclerk/internal/interval"
	"github.com/teemow/roomclerk/internal/tools/common"
)

func newCreateCmd() *cobra.Command {
	var (
		title         string
		roomArg       string
		attendeesArg  string
		startArg      string
		durationHours float64
		description   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the calendar event for a confirmed slot",
		Long: `Create the calendar event that books the room and invites the
attendees. The room's calendar is checked first; an overlapping booking
aborts the creation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			dir, err := loadDirectory(cfg)
			if err != nil {
				return err
			}

			room, err := dir.ResolveRoom(roomArg)
			if err != nil {
				return err
			}

			attendees := common.SplitList(attendeesArg)
			if len(attendees) == 0 {
				return fmt.Errorf("at least one attendee is required")
			}

			start, err := common.ParseTime(startArg, loc)
			if err != nil {
				return err
			}
			if durationHours <= 0 {
				return fmt.Errorf("duration must be positive, got %v", durationHours)
			}
			window := interval.TimeInterval{
				Start: start,
				End:   start.Add(time.Duration(durationHours * float64(time.Hour))),
			}

			ctx := context.Background()
			client, err := newCalendarSource().ClientForDomain(ctx, room.Domain)
			if err != nil {
				return err
			}

			bookings, err := client.ListBookings(ctx, room.ID, window.Start, window.End)
			if err != nil {
				return err
			}
			for _, b := range bookings {
				if window.Overlaps(b.Window) {
					return fmt.Errorf("%s is already booked %s to %s by %s",
						room.Title,
						b.Window.Start.Format("2006-01-02 15:04"),
						b.Window.End.Format("15:04"),
						b.Owner)
				}
			}

			event, err := client.CreateEvent(ctx, calendar.EventInput{
				Summary:     title,
				Description: description,
				Start:       window.Start,
				End:         window.End,
				TimeZone:    cfg.Timezone,
				Attendees:   attendees,
				RoomIDs:     []string{room.ID},
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created event %q in %s, %s to %s.\n", event.Summary, room.Title,
				event.Start.Format("2006-01-02 15:04"), event.End.Format("15:04"))
			fmt.Printf("Event ID: %s\n", event.ID)
			fmt.Printf("Attendees: %s\n", strings.Join(attendees, ", "))

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title")
	cmd.Flags().StringVar(&roomArg, "room", "", "Room ID or title to book")
	cmd.Flags().StringVar(&attendeesArg, "attendees", "", "Comma-separated attendee email addresses")
	cmd.Flags().StringVar(&startArg, "time", "", `Start time (RFC3339 or "2006-01-02 15:04")`)
	cmd.Flags().Float64Var(&durationHours, "duration", 1.0, "Meeting duration in hours")
	cmd.Flags().StringVar(&description, "description", "", "Event description")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("room")
	_ = cmd.MarkFlagRequired("attendees")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}
