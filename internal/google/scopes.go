package google

// DefaultOAuthScopes are the Google OAuth scopes the application needs:
// calendar read/write for free/busy queries and event creation, plus
// the user's email for identifying the requesting user.
var DefaultOAuthScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Google Calendar scope (free/busy queries and event creation)
	"https://www.googleapis.com/auth/calendar",
}
