package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/roomclerk/internal/booking"
	"github.com/teemow/roomclerk/internal/calendar"
	"github.com/teemow/roomclerk/internal/google"
	"github.com/teemow/roomclerk/internal/interval"
	"github.com/teemow/roomclerk/internal/negotiation"
	"github.com/teemow/roomclerk/internal/rooms"
	"github.com/teemow/roomclerk/internal/tools/common"
)

// newCalendarSource builds the provider-backed calendar source using
// file tokens.
func newCalendarSource() *calendar.Source {
	return calendar.NewSource(google.NewFileTokenProvider())
}

// roomDomainLookup resolves a room id to its calendar domain.
func roomDomainLookup(dir *rooms.Directory) calendar.DomainLookup {
	return func(roomID string) (string, error) {
		room, err := dir.ResolveRoom(roomID)
		if err != nil {
			return "", err
		}
		return room.Domain, nil
	}
}

func newBookCmd() *cobra.Command {
	var (
		roomArg       string
		people        int
		startArg      string
		durationHours float64
		user          string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a meeting room, resolving conflicts",
		Long: `Book a room for a meeting. If the requested slot is taken the
command proposes negotiating with the current holder (when their
meeting is smaller) or falls back to the next free slot within the
configured lookahead.`,
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

			start, err := common.ParseTime(startArg, loc)
			if err != nil {
				return err
			}
			if durationHours <= 0 {
				return fmt.Errorf("duration must be positive, got %v", durationHours)
			}
			duration := time.Duration(durationHours * float64(time.Hour))
			window := interval.TimeInterval{Start: start, End: start.Add(duration)}

			ctx := context.Background()
			finder := calendar.NewBookingFinder(newCalendarSource(), roomDomainLookup(dir))
			resolver := booking.NewResolver(finder, nil).
				WithFallback(cfg.FallbackStep(), cfg.FallbackLookahead)

			req := booking.NewRequest(room.ID, window, people, user)
			outcome, err := resolver.Resolve(ctx, req)
			if err != nil {
				return err
			}

			display := req
			display.RoomID = room.Title

			lookahead := time.Duration(cfg.FallbackLookahead) * cfg.FallbackStep()
			fmt.Println(negotiation.Describe(display, outcome, lookahead))

			if outcome.Kind == booking.OutcomeNegotiation && outcome.Conflict != nil {
				fmt.Println()
				fmt.Println("Draft message to the current holder:")
				fmt.Println(negotiation.MessageToOwner(display, *outcome.Conflict))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&roomArg, "room", "", "Room ID or title to book")
	cmd.Flags().IntVar(&people, "people", 0, "Number of people attending")
	cmd.Flags().StringVar(&startArg, "time", "", `Start time (RFC3339 or "2006-01-02 15:04" in the configured timezone)`)
	cmd.Flags().Float64Var(&durationHours, "duration", 1.0, "Meeting duration in hours")
	cmd.Flags().StringVar(&user, "user", "", "Email of the user the booking is for")
	_ = cmd.MarkFlagRequired("room")
	_ = cmd.MarkFlagRequired("people")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
