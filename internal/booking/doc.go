// Package booking resolves a single room booking request against
// existing bookings: confirm when the room is free, offer negotiation
// when the only conflict holds fewer attendees, otherwise scan forward
// in fixed steps for a fallback slot.
package booking
