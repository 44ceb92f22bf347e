// Package availability batches free/busy queries across many calendar
// identifiers and multiple calendar domains.
//
// Identifiers are grouped by domain so that each domain is only ever
// queried with its own credential set, and each domain group is chunked
// to the provider's per-request item limit. Provider errors are
// reported per identifier alongside the successfully retrieved data; a
// failing identifier is neither assumed free nor busy.
//
// The package also derives meeting slot suggestions for a participant
// set by combining work window segmentation with merged busy data.
package availability
