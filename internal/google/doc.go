// Package google handles OAuth2 authentication against the Google
// Calendar API for one or more calendar domains.
//
// Every calendar domain (a distinct provider/credential grouping, e.g.
// the corporate workspace and a subsidiary's workspace) authenticates
// with its own stored token. The TokenProvider abstraction keeps the
// engine free of any hardcoded domain list: adding a calendar domain
// means storing one more token, not touching the merge or batching
// logic.
package google
