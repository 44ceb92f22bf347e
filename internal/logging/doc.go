// Package logging provides slog attribute helpers for consistent
// structured logging across the application: typed attribute
// constructors, common key names and PII-safe participant hashing.
package logging
