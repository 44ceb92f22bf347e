package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/teemow/roomclerk/internal/availability"
	"github.com/teemow/roomclerk/internal/booking"
	"github.com/teemow/roomclerk/internal/calendar"
	"github.com/teemow/roomclerk/internal/config"
	"github.com/teemow/roomclerk/internal/instrumentation"
	"github.com/teemow/roomclerk/internal/rooms"
)

// ServerContext holds the wired scheduling engine for the MCP server.
type ServerContext struct {
	ctx       context.Context
	cancel    context.CancelFunc
	cfg       *config.Config
	directory *rooms.Directory
	source    *calendar.Source
	fetcher   *availability.Fetcher
	resolver  *booking.Resolver
	logger    *slog.Logger

	metrics     *instrumentation.Metrics
	auditLogger *slog.Logger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context. The calendar source
// creates per-domain clients lazily, so missing tokens only surface
// when a domain is first queried.
func NewServerContext(ctx context.Context, cfg *config.Config, directory *rooms.Directory, source *calendar.Source, logger *slog.Logger) *ServerContext {
	if logger == nil {
		logger = slog.Default()
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	fetcher := availability.NewFetcher(source, logger)

	finder := calendar.NewBookingFinder(source, func(roomID string) (string, error) {
		room, err := directory.ResolveRoom(roomID)
		if err != nil {
			return "", err
		}
		return room.Domain, nil
	})
	resolver := booking.NewResolver(finder, logger).
		WithFallback(cfg.FallbackStep(), cfg.FallbackLookahead)

	return &ServerContext{
		ctx:       shutdownCtx,
		cancel:    cancel,
		cfg:       cfg,
		directory: directory,
		source:    source,
		fetcher:   fetcher,
		resolver:  resolver,
		logger:    logger,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the loaded configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// Directory returns the room directory.
func (sc *ServerContext) Directory() *rooms.Directory {
	return sc.directory
}

// Source returns the per-domain calendar source.
func (sc *ServerContext) Source() *calendar.Source {
	return sc.source
}

// Fetcher returns the availability fetcher.
func (sc *ServerContext) Fetcher() *availability.Fetcher {
	return sc.fetcher
}

// Resolver returns the booking resolver.
func (sc *ServerContext) Resolver() *booking.Resolver {
	return sc.resolver
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// SetMetrics attaches a metrics recorder for tool instrumentation and
// wires it into the fetcher and calendar source so provider queries,
// chunk counts, and early exits are recorded where they happen.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
	if m != nil {
		sc.fetcher.WithRecorder(m)
		sc.source.WithRecorder(m)
	}
}

// Metrics returns the metrics recorder, or nil when instrumentation is
// not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger attaches a logger for tool invocation audit records.
func (sc *ServerContext) SetAuditLogger(logger *slog.Logger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = logger
}

// AuditLogger returns the audit logger, or nil when audit logging is
// not configured.
func (sc *ServerContext) AuditLogger() *slog.Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// ClientForDomain returns the calendar client for a domain, creating it
// on first use.
func (sc *ServerContext) ClientForDomain(domain string) (*calendar.Client, error) {
	return sc.source.ClientForDomain(sc.ctx, domain)
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
