package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/roomclerk/internal/config"
	"github.com/teemow/roomclerk/internal/rooms"
)

// rootCmd represents the base command for the roomclerk application
var rootCmd = &cobra.Command{
	Use:   "roomclerk",
	Short: "Books meeting rooms and resolves booking conflicts",
	Long: `roomclerk checks meeting-room availability across calendar domains,
books rooms, and resolves conflicts by negotiating with the current
holder or falling back to the next free slot.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// configPath is the optional explicit config file, shared by all commands
var configPath string

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "roomclerk version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// loadDirectory loads the room directory named by the configuration.
func loadDirectory(cfg *config.Config) (*rooms.Directory, error) {
	dir, err := rooms.LoadFile(cfg.RoomsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load room directory: %w", err)
	}
	return dir, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: roomclerk.yaml in . or ~/.config/roomclerk)")

	rootCmd.AddCommand(newBookCmd())
	rootCmd.AddCommand(newRoomsCmd())
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newNowCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
