package auth

import "slices"

// OAuth scopes requested by yts
const (
	ScopeYouTubeReadOnly   = "https://www.googleapis.com/auth/youtube.readonly"
	ScopeYouTubeForceSSL   = "https://www.googleapis.com/auth/youtube.force-ssl"
	ScopeAnalyticsReadOnly = "https://www.googleapis.com/auth/yt-analytics.readonly"
	ScopeMonetaryReadOnly  = "https://www.googleapis.com/auth/yt-analytics-monetary.readonly"
)

// Scopes returns the scopes for a login, adding the monetary scope on request
func Scopes(monetary bool) []string {
	scopes := []string{ScopeYouTubeReadOnly, ScopeYouTubeForceSSL, ScopeAnalyticsReadOnly}
	if monetary {
		scopes = append(scopes, ScopeMonetaryReadOnly)
	}
	return scopes
}

// HasMonetary reports whether granted includes the monetary analytics scope
func HasMonetary(granted []string) bool {
	return slices.Contains(granted, ScopeMonetaryReadOnly)
}
