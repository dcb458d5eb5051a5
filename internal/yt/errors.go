package yt

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

var (
	ErrQuotaExceeded    = errors.New("daily YouTube API quota exceeded")
	ErrForbidden        = errors.New("access denied")
	ErrSessionExpired   = errors.New("session expired or revoked")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrCommentsDisabled = errors.New("comments are disabled")
)

// Classify maps Google API and OAuth failures onto the package sentinels.
// Errors it does not recognise are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch Reason(apiErr) {
	case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
		return fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
	case "commentsDisabled":
		return fmt.Errorf("%w: %w", ErrCommentsDisabled, err)
	case "forbidden", "insufficientPermissions":
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	case "videoNotFound", "commentNotFound", "channelNotFound", "notFound":
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	switch apiErr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

// Reason returns the first error reason reported by the API, if any
func Reason(apiErr *googleapi.Error) string {
	if apiErr == nil {
		return ""
	}
	for _, item := range apiErr.Errors {
		if item.Reason != "" {
			return item.Reason
		}
	}
	return ""
}
