// Package cmd implements the command-line interface for roomclerk.
//
// This package provides the following commands:
//   - book: Book a meeting room, negotiating or falling back on conflict
//   - rooms: Search the room directory and check which matches are free
//   - suggest: Suggest meeting slots where all participants are free
//   - create: Create the calendar event for a confirmed slot
//   - now: Print the current date and time in the configured timezone
//   - auth: Authorize calendar access for the configured domains
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
package cmd
