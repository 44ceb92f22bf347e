package common

import (
	"fmt"
	"strings"
	"time"
)

// GetUserFromArgs extracts the requesting user's email from request
// arguments. Returns an empty string when no user was provided; tools
// treat the user as optional context for audit logging and negotiation
// messages.
func GetUserFromArgs(args map[string]interface{}) string {
	if userVal, ok := args["user"].(string); ok {
		return strings.TrimSpace(userVal)
	}
	return ""
}

// RequiredString extracts a required string argument.
func RequiredString(args map[string]interface{}, key string) (string, error) {
	val, ok := args[key].(string)
	if !ok || val == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return val, nil
}

// OptionalString extracts an optional string argument, returning the
// fallback when absent or empty.
func OptionalString(args map[string]interface{}, key, fallback string) string {
	if val, ok := args[key].(string); ok && val != "" {
		return val
	}
	return fallback
}

// RequiredInt extracts a required numeric argument as an int. JSON
// numbers arrive as float64.
func RequiredInt(args map[string]interface{}, key string) (int, error) {
	val, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	return int(val), nil
}

// OptionalInt extracts an optional numeric argument, returning the
// fallback when absent.
func OptionalInt(args map[string]interface{}, key string, fallback int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	return fallback
}

// OptionalIntPtr extracts an optional numeric argument as a pointer,
// returning nil when absent. Lets callers distinguish "not given" from
// a legitimate zero, e.g. a ground-floor level filter.
func OptionalIntPtr(args map[string]interface{}, key string) *int {
	if val, ok := args[key].(float64); ok {
		v := int(val)
		return &v
	}
	return nil
}

// OptionalFloat extracts an optional numeric argument, returning the
// fallback when absent.
func OptionalFloat(args map[string]interface{}, key string, fallback float64) float64 {
	if val, ok := args[key].(float64); ok {
		return val
	}
	return fallback
}

// SplitList splits a comma-separated argument into trimmed, non-empty
// items.
func SplitList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// ParseTimeArg parses a required time argument. RFC3339 is accepted
// first; the local wall-clock form "2006-01-02 15:04" is interpreted in
// loc.
func ParseTimeArg(args map[string]interface{}, key string, loc *time.Location) (time.Time, error) {
	raw, err := RequiredString(args, key)
	if err != nil {
		return time.Time{}, err
	}
	return ParseTime(raw, loc)
}

// ParseTime parses a timestamp string, accepting RFC3339 or the local
// wall-clock form "2006-01-02 15:04" interpreted in loc.
func ParseTime(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, use RFC3339 or \"2006-01-02 15:04\"", raw)
	}
	return t, nil
}
