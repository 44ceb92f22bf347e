package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/teemow/roomclerk/internal/availability"
	"github.com/teemow/roomclerk/internal/google"
	"github.com/teemow/roomclerk/internal/interval"
)

// QueryRecorder receives per-query counters for provider calls.
// Satisfied by the instrumentation metrics; nil disables recording.
type QueryRecorder interface {
	RecordCalendarQuery(ctx context.Context, domain, operation, status string, duration time.Duration)
}

// Source hands out per-domain calendar clients and implements the
// availability engine's FreeBusySource. Clients are created lazily and
// cached for the lifetime of the source.
type Source struct {
	tokenProvider google.TokenProvider
	recorder      QueryRecorder

	mu      sync.Mutex
	clients map[string]*Client
}

// NewSource creates a source over the given token provider. A nil
// provider falls back to per-domain token files.
func NewSource(tokenProvider google.TokenProvider) *Source {
	if tokenProvider == nil {
		tokenProvider = google.NewFileTokenProvider()
	}
	return &Source{
		tokenProvider: tokenProvider,
		clients:       make(map[string]*Client),
	}
}

// WithRecorder attaches a query metrics recorder.
func (s *Source) WithRecorder(r QueryRecorder) *Source {
	s.recorder = r
	return s
}

// recordQuery reports one provider call that actually went out.
func (s *Source) recordQuery(ctx context.Context, domain, operation string, err error, started time.Time) {
	if s.recorder == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	s.recorder.RecordCalendarQuery(ctx, domain, operation, status, time.Since(started))
}

// ClientForDomain returns the cached client for a domain, creating it
// on first use.
func (s *Source) ClientForDomain(ctx context.Context, domain string) (*Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client, ok := s.clients[domain]; ok {
		return client, nil
	}

	client, err := NewClientForDomain(ctx, domain, s.tokenProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client for domain %s: %w", domain, err)
	}

	s.clients[domain] = client
	return client, nil
}

// QueryFreeBusy implements availability.FreeBusySource: one provider
// call against the domain's own credentials.
func (s *Source) QueryFreeBusy(ctx context.Context, domain string, window interval.TimeInterval, ids []string) (map[string]availability.FreeBusy, error) {
	client, err := s.ClientForDomain(ctx, domain)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	infos, err := client.QueryFreeBusy(ctx, window.Start, window.End, ids)
	s.recordQuery(ctx, domain, "freebusy", err, started)
	if err != nil {
		return nil, err
	}

	verdicts := make(map[string]availability.FreeBusy, len(infos))
	for id, info := range infos {
		verdicts[id] = availability.FreeBusy{
			Busy:   info.Busy,
			Errors: info.Errors,
		}
	}

	return verdicts, nil
}
