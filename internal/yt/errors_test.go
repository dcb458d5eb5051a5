package yt

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

func apiError(code int, reason string) error {
	return &googleapi.Error{
		Code:    code,
		Message: "boom",
		Errors:  []googleapi.ErrorItem{{Reason: reason, Message: "boom"}},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"quota", apiError(http.StatusForbidden, "quotaExceeded"), ErrQuotaExceeded},
		{"forbidden", apiError(http.StatusForbidden, "forbidden"), ErrForbidden},
		{"comments disabled", apiError(http.StatusForbidden, "commentsDisabled"), ErrCommentsDisabled},
		{"video not found", apiError(http.StatusNotFound, "videoNotFound"), ErrNotFound},
		{"bare 404", apiError(http.StatusNotFound, ""), ErrNotFound},
		{"bare 401", apiError(http.StatusUnauthorized, ""), ErrSessionExpired},
		{"wrapped quota", fmt.Errorf("listing: %w", apiError(http.StatusForbidden, "quotaExceeded")), ErrQuotaExceeded},
		{
			"refresh failure",
			&url.Error{Op: "Get", URL: "https://example.test", Err: &oauth2.RetrieveError{ErrorCode: "invalid_grant"}},
			ErrSessionExpired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassify_Passthrough(t *testing.T) {
	assert.NoError(t, Classify(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, Classify(plain))

	server := apiError(http.StatusInternalServerError, "backendError")
	assert.Equal(t, server, Classify(server))
}

func TestReason(t *testing.T) {
	assert.Equal(t, "", Reason(nil))
	assert.Equal(t, "quotaExceeded", Reason(&googleapi.Error{Errors: []googleapi.ErrorItem{{}, {Reason: "quotaExceeded"}}}))
}
