// Package common provides shared helpers for MCP tool handlers:
// argument extraction, time parsing in the configured timezone, and an
// instrumented handler wrapper that records metrics and audit logs for
// every tool invocation.
package common
