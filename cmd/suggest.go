package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/roomclerk/internal/availability"
	"github.com/teemow/roomclerk/internal/interval"
	"github.com/teemow/roomclerk/internal/tools/common"
	"github.com/teemow/roomclerk/internal/workhours"
)

func newSuggestCmd() *cobra.Command {
	var (
		participantsArg string
		durationMinutes int
		fromArg         string
		toArg           string
		maxResults      int
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest meeting slots where all participants are free",
		Long: `Segment the search range into working-hour periods, subtract the
merged busy time of all participants, and list slots of the requested
duration. Lunch-time slots are suggested but tagged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			participants := common.SplitList(participantsArg)
			if len(participants) == 0 {
				return fmt.Errorf("at least one participant is required")
			}

			from, err := common.ParseTime(fromArg, loc)
			if err != nil {
				return err
			}
			to, err := common.ParseTime(toArg, loc)
			if err != nil {
				return err
			}

			ids := make([]availability.CalendarIdentifier, len(participants))
			for i, p := range participants {
				ids[i] = availability.CalendarIdentifier{ID: p}
			}

			if maxResults <= 0 {
				maxResults = cfg.MaxSuggestions
			}

			fetcher := availability.NewFetcher(newCalendarSource(), nil)
			result, err := fetcher.Suggest(context.Background(), availability.SuggestRequest{
				Participants: ids,
				Search:       interval.TimeInterval{Start: from, End: to},
				Duration:     time.Duration(durationMinutes) * time.Minute,
				MaxSlots:     maxResults,
			}, workhours.DefaultSchedule())
			if err != nil {
				return err
			}

			if len(result.Slots) == 0 {
				fmt.Println("No common free slots found in the search range.")
				return nil
			}

			fmt.Printf("Slots where %s are all free:\n", strings.Join(participants, ", "))
			for i, slot := range result.Slots {
				tag := ""
				if slot.IsLunch {
					tag = " (lunch time)"
				}
				fmt.Printf("%d. %s to %s%s\n", i+1,
					slot.Interval.Start.Format("2006-01-02 15:04"),
					slot.Interval.End.Format("15:04"), tag)
			}
			for _, e := range result.Errors {
				fmt.Printf("Could not query: %s\n", e.Error())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&participantsArg, "participants", "", "Comma-separated participant email addresses")
	cmd.Flags().IntVar(&durationMinutes, "duration-minutes", 30, "Meeting duration in minutes")
	cmd.Flags().StringVar(&fromArg, "from", "", "Start of the search range")
	cmd.Flags().StringVar(&toArg, "to", "", "End of the search range")
	cmd.Flags().IntVar(&maxResults, "max", 0, "Maximum number of slots to list (default from config)")
	_ = cmd.MarkFlagRequired("participants")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
