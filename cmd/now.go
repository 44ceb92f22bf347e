package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newNowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current date and time in the configured timezone",
		Long: `Print the current date, weekday, and time in the configured
timezone. Useful for grounding relative phrases like "tomorrow at 3"
before building a booking request.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			now := time.Now().In(loc)
			fmt.Printf("Date:     %s\n", now.Format("2006-01-02"))
			fmt.Printf("Weekday:  %s\n", now.Weekday())
			fmt.Printf("Time:     %s\n", now.Format("15:04:05"))
			fmt.Printf("Timezone: %s\n", cfg.Timezone)
			fmt.Printf("RFC3339:  %s\n", now.Format(time.RFC3339))

			return nil
		},
	}

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("roomclerk version %s\n", version)
		},
	}
}
