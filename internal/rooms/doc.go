// Package rooms provides the meeting room and office directory used to
// resolve user-supplied room identifiers to calendar identifiers and to
// filter rooms by office, location, level and capacity.
//
// The directory is loaded from a YAML file and held in memory; the
// durable source of truth for bookings stays with the calendar
// provider.
package rooms
