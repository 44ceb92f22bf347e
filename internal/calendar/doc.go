// Package calendar provides the Google Calendar provider client used
// by the availability engine: free/busy queries, existing booking
// lookups and event creation.
//
// Each calendar domain gets its own Client authenticated with that
// domain's credentials. The Source type caches one client per domain
// and implements the engine's FreeBusySource interface, so the
// batching and merging logic never touches credentials directly.
package calendar
