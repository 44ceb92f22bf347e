package google

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DefaultDomain is the domain used when no explicit domain tag is
// given.
const DefaultDomain = "default"

// GetOAuthConfig returns the OAuth2 configuration shared by all
// calendar domains. Client id and secret come from the environment so
// deployments can use their own OAuth application.
func GetOAuthConfig() *oauth2.Config {
	const oob = "urn:ietf:wg:oauth:2.0:oob"
	return &oauth2.Config{
		ClientID:     os.Getenv("ROOMCLERK_GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("ROOMCLERK_GOOGLE_CLIENT_SECRET"),
		Endpoint:     google.Endpoint,
		RedirectURL:  oob,
		Scopes:       DefaultOAuthScopes,
	}
}

// GetAuthURLForDomain returns the OAuth URL for authorizing the given
// calendar domain.
func GetAuthURLForDomain(domain string) string {
	conf := GetOAuthConfig()
	return conf.AuthCodeURL("state-" + domain)
}

// SaveTokenForDomain exchanges an authorization code for tokens and
// saves them for the given calendar domain.
func SaveTokenForDomain(ctx context.Context, domain, authCode string) error {
	conf := GetOAuthConfig()

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	file := tokenFileForDomain(domain)
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(file, []byte(tokenData), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// HasTokenForDomain checks whether a token is stored for the domain.
func HasTokenForDomain(domain string) bool {
	if domain == "" {
		return false
	}
	_, err := os.ReadFile(tokenFileForDomain(domain))
	return err == nil
}

// GetTokenSourceForDomain returns a refreshing token source for the
// stored token of the given domain.
func GetTokenSourceForDomain(ctx context.Context, domain string) (oauth2.TokenSource, error) {
	conf := GetOAuthConfig()

	slurp, err := os.ReadFile(tokenFileForDomain(domain))
	if err != nil {
		return nil, fmt.Errorf("no Google OAuth token found for domain %s", domain)
	}

	f := strings.Fields(strings.TrimSpace(string(slurp)))
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format for domain %s", domain)
	}

	ts := conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	})

	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("cached token for domain %s is invalid: %w", domain, err)
	}

	return ts, nil
}

// GetHTTPClientForDomain returns an HTTP client authenticated for the
// given domain. The client is pinned to HTTP/1.1 to avoid HTTP/2
// protocol errors against the Google APIs.
func GetHTTPClientForDomain(ctx context.Context, domain string) (*http.Client, error) {
	ts, err := GetTokenSourceForDomain(ctx, domain)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, ts)

	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	return client, nil
}

func tokenFileForDomain(domain string) string {
	name := "google.token"
	if domain != "" && domain != DefaultDomain {
		name = fmt.Sprintf("google-%s.token", domain)
	}
	return filepath.Join(userCacheDir(), "roomclerk", name)
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
		panic("No Windows TEMP or TMP environment variables found")
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
