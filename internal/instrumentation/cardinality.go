package instrumentation

import "strings"

// Cardinality management helpers for metrics. Always reduce user
// identifiers to their domain before recording metric labels; full
// email addresses blow up label cardinality and leak PII into the
// metrics backend.

// ExtractUserDomain extracts the domain part from an email address.
//
// Example:
//
//	ExtractUserDomain("jane@example.com")  // "example.com"
//	ExtractUserDomain("invalid")           // "unknown"
//	ExtractUserDomain("")                  // "unknown"
func ExtractUserDomain(email string) string {
	if email == "" {
		return "unknown"
	}

	parts := strings.Split(email, "@")
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}

	return "unknown"
}

// Common operation types for calendar provider metrics.
// Status and exporter constants are defined in config.go.
const (
	OperationFreeBusy = "freebusy"
	OperationList     = "list"
	OperationCreate   = "create"
	OperationCheck    = "check"
	OperationSuggest  = "suggest"
	OperationResolve  = "resolve"
)
