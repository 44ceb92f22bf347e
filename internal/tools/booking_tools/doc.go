// Package booking_tools provides MCP (Model Context Protocol) tools for
// meeting-room scheduling.
//
// The tools expose the availability and conflict-resolution engine
// through a standardized MCP interface: checking room availability
// across candidate windows, searching for free rooms by office and
// capacity, resolving a booking request with negotiation and fallback,
// suggesting participant meeting slots, and creating the calendar event
// for a confirmed slot.
package booking_tools
