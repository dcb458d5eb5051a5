package cmd

import (
	"errors"
	"fmt"

	"github.com/alanpramil7/ytstudio/internal/auth"
	"github.com/alanpramil7/ytstudio/internal/bulk"
	"github.com/alanpramil7/ytstudio/internal/yt"
)

const quotaMessage = `Daily YouTube API quota exceeded. Quota resets at midnight Pacific Time (PT).
See: https://developers.google.com/youtube/v3/guides/quota_and_compliance_audits`

// ErrorMessage turns a command error into the text shown to the user
func ErrorMessage(err error) string {
	var partial *bulk.PartialError
	if errors.As(err, &partial) {
		return fmt.Sprintf("Partial progress: %d updated, %d failed\n%s",
			partial.Applied, partial.Failed, ErrorMessage(partial.Err))
	}

	switch {
	case errors.Is(err, yt.ErrQuotaExceeded):
		return quotaMessage
	case errors.Is(err, yt.ErrSessionExpired):
		return "Session expired or revoked. Run 'yts login' to re-authenticate."
	case errors.Is(err, yt.ErrNotAuthenticated):
		return "Not authenticated. Run 'yts login' first."
	case errors.Is(err, auth.ErrNoClientSecrets):
		return "No client secrets found. Run 'yts init' first."
	case errors.Is(err, yt.ErrCommentsDisabled):
		return "Comments are disabled for this video."
	case errors.Is(err, yt.ErrForbidden):
		return "Access denied. Check that you own this channel and granted the required scopes."
	}
	return "Error: " + err.Error()
}
