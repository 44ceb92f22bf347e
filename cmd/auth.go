package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/roomclerk/internal/google"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize calendar access for the configured domains",
		Long: `Manage Google OAuth tokens, one per calendar domain. Rooms in the
directory are tagged with the domain whose credentials can read their
calendars; each domain needs its own authorization.`,
	}

	cmd.AddCommand(newAuthURLCmd())
	cmd.AddCommand(newAuthSaveCmd())
	cmd.AddCommand(newAuthStatusCmd())

	return cmd
}

func newAuthURLCmd() *cobra.Command {
	var domain string

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the authorization URL for a domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Visit this URL to authorize calendar access:")
			fmt.Println(google.GetAuthURLForDomain(domain))
			fmt.Println()
			fmt.Printf("Then run: roomclerk auth save --domain %s <authorization-code>\n", domain)
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", google.DefaultDomain, "Calendar domain to authorize")

	return cmd
}

func newAuthSaveCmd() *cobra.Command {
	var domain string

	cmd := &cobra.Command{
		Use:   "save <authorization-code>",
		Short: "Exchange an authorization code and save the token for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := google.SaveTokenForDomain(context.Background(), domain, args[0]); err != nil {
				return fmt.Errorf("failed to save token for domain %s: %w", domain, err)
			}
			fmt.Printf("Token saved for domain %s.\n", domain)
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", google.DefaultDomain, "Calendar domain the token belongs to")

	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which configured domains have tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			for _, domain := range cfg.Domains {
				state := "missing"
				if google.HasTokenForDomain(domain) {
					state = "ok"
				}
				fmt.Printf("%-20s %s\n", domain, state)
			}
			return nil
		},
	}
}
