package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	// Timezone is the IANA timezone all wall-clock inputs are
	// interpreted in.
	Timezone string `mapstructure:"timezone"`

	// RoomsFile points to the YAML room/office directory.
	RoomsFile string `mapstructure:"rooms_file"`

	// Domains lists the calendar domains to authorize. The engine
	// itself derives domains from the directory; this list only drives
	// the auth command.
	Domains []string `mapstructure:"domains"`

	// FallbackStepMinutes is the spacing between fallback probes.
	FallbackStepMinutes int `mapstructure:"fallback_step_minutes"`

	// FallbackLookahead is the number of fallback probes.
	FallbackLookahead int `mapstructure:"fallback_lookahead"`

	// MaxSuggestions caps participant availability suggestions.
	MaxSuggestions int `mapstructure:"max_suggestions"`
}

// FallbackStep returns the fallback probe spacing as a duration.
func (c *Config) FallbackStep() time.Duration {
	return time.Duration(c.FallbackStepMinutes) * time.Minute
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration from the given file (optional) and the
// environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ROOMCLERK")
	v.AutomaticEnv()

	v.SetDefault("timezone", "Asia/Singapore")
	v.SetDefault("rooms_file", "rooms.yaml")
	v.SetDefault("domains", []string{"default"})
	v.SetDefault("fallback_step_minutes", 30)
	v.SetDefault("fallback_lookahead", 8)
	v.SetDefault("max_suggestions", 10)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("roomclerk")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/roomclerk")
		// Without an explicit path a missing config file is fine;
		// defaults and environment carry the day.
		_ = v.ReadInConfig()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.FallbackStepMinutes <= 0 {
		return nil, fmt.Errorf("fallback_step_minutes must be positive, got %d", cfg.FallbackStepMinutes)
	}
	if cfg.FallbackLookahead <= 0 {
		return nil, fmt.Errorf("fallback_lookahead must be positive, got %d", cfg.FallbackLookahead)
	}

	return &cfg, nil
}
