// Package server provides the MCP server context, health probes, and
// the dedicated metrics listener for the roomclerk application.
//
// # Key Components
//
// ServerContext wires the scheduling engine together: the room
// directory, the per-domain calendar source, the availability fetcher,
// and the booking resolver. Calendar clients are created lazily per
// domain and cached by the source.
//
// HealthChecker serves Kubernetes liveness and readiness probes. The
// readiness probe also verifies the room directory loaded.
//
// MetricsServer exposes Prometheus metrics on a dedicated port so
// operational metrics never share a listener with user traffic.
package server
