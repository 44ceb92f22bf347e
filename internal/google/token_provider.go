package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// TokenProvider resolves a calendar domain to its OAuth token. The
// abstraction keeps domain credentials pluggable: file-based tokens for
// the CLI, or any other store for server deployments.
type TokenProvider interface {
	// GetTokenForDomain retrieves an OAuth token for the given domain.
	GetTokenForDomain(ctx context.Context, domain string) (*oauth2.Token, error)

	// HasTokenForDomain checks whether a token exists for the domain.
	HasTokenForDomain(domain string) bool
}

// FileTokenProvider provides tokens from per-domain files on disk.
type FileTokenProvider struct{}

// NewFileTokenProvider creates a new file-based token provider.
func NewFileTokenProvider() *FileTokenProvider {
	return &FileTokenProvider{}
}

// GetTokenForDomain retrieves a token from disk for the given domain.
func (p *FileTokenProvider) GetTokenForDomain(ctx context.Context, domain string) (*oauth2.Token, error) {
	ts, err := GetTokenSourceForDomain(ctx, domain)
	if err != nil {
		return nil, err
	}

	token, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to get token from file: %w", err)
	}

	return token, nil
}

// HasTokenForDomain checks whether a token file exists for the domain.
func (p *FileTokenProvider) HasTokenForDomain(domain string) bool {
	return HasTokenForDomain(domain)
}
