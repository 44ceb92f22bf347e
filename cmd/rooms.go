package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/roomclerk/internal/availability"
	"github.com/teemow/roomclerk/internal/interval"
	"github.com/teemow/roomclerk/internal/rooms"
	"github.com/teemow/roomclerk/internal/tools/common"
)

func newRoomsCmd() *cobra.Command {
	var (
		name          string
		office        string
		country       string
		city          string
		level         int
		minCapacity   int
		startArg      string
		durationHours float64
	)

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Search the room directory, optionally checking availability",
		Long: `Search rooms by name, office, location, level, and capacity. When
--time is given, the matching rooms are checked against their calendars
and only the free ones are listed, smallest first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dir, err := loadDirectory(cfg)
			if err != nil {
				return err
			}

			filter := rooms.Filter{
				RoomNameContains: name,
				OfficeCodeExact:  office,
				CountryContains:  country,
				CityContains:     city,
				MinimumCapacity:  minCapacity,
			}
			// Only an explicit --level filters; level 0 is a real floor.
			if cmd.Flags().Changed("level") {
				filter.Level = &level
			}

			matches := dir.Search(filter)
			if len(matches) == 0 {
				return fmt.Errorf("no rooms match the given filters")
			}

			if startArg == "" {
				for _, r := range matches {
					fmt.Printf("%s (seats %d, level %d, building %s)\n",
						r.Title, r.SeatingCapacity, r.Level, r.BuildingCode)
				}
				return nil
			}

			loc, err := cfg.Location()
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
			window := interval.TimeInterval{
				Start: start,
				End:   start.Add(time.Duration(durationHours * float64(time.Hour))),
			}

			ids := make([]availability.CalendarIdentifier, len(matches))
			for i, r := range matches {
				ids[i] = availability.CalendarIdentifier{ID: r.ID, Domain: r.Domain}
			}

			fetcher := availability.NewFetcher(newCalendarSource(), nil)
			result, err := fetcher.Check(context.Background(), ids,
				[]interval.TimeInterval{window}, availability.Options{
					RankBy: func(id availability.CalendarIdentifier) int {
						room, err := dir.ResolveRoom(id.ID)
						if err != nil {
							return int(^uint(0) >> 1)
						}
						return room.SeatingCapacity
					},
				})
			if err != nil {
				return err
			}

			verdict := result.Windows[0]
			if len(verdict.Free) == 0 {
				fmt.Println("No matching rooms are free for that window.")
			}
			for _, id := range verdict.Free {
				room, err := dir.ResolveRoom(id.ID)
				if err != nil {
					continue
				}
				fmt.Printf("FREE: %s (seats %d, level %d)\n", room.Title, room.SeatingCapacity, room.Level)
			}
			for _, e := range verdict.Errors {
				fmt.Printf("ERROR: %s\n", e.Error())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Partial room name to match")
	cmd.Flags().StringVar(&office, "office", "", "Office code to search in")
	cmd.Flags().StringVar(&country, "country", "", "Partial country name to match")
	cmd.Flags().StringVar(&city, "city", "", "Partial city name to match")
	cmd.Flags().IntVar(&level, "level", 0, "Exact floor level to match")
	cmd.Flags().IntVar(&minCapacity, "min-capacity", 0, "Minimum seating capacity")
	cmd.Flags().StringVar(&startArg, "time", "", "Check availability for this start time")
	cmd.Flags().Float64Var(&durationHours, "duration", 1.0, "Meeting duration in hours (with --time)")

	return cmd
}
