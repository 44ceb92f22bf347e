// Package config loads application configuration from a YAML file and
// ROOMCLERK_* environment variables, with sensible defaults for the
// scheduling engine.
package config
