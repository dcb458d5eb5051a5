package yt

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
	"google.golang.org/api/youtubeanalytics/v2"
)

// Client wraps the YouTube Data and Analytics API services
type Client struct {
	service   *youtube.Service
	analytics *youtubeanalytics.Service
}

// NewClient creates a YouTube API client on top of an authenticated HTTP client
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	return NewClientWithOptions(ctx, nil, option.WithHTTPClient(httpClient))
}

// NewClientWithOptions creates a client with explicit options for each API.
// Data API options are followed by analyticsOpts for the Analytics API only;
// when analyticsOpts is nil the Data API options are reused.
func NewClientWithOptions(ctx context.Context, analyticsOpts []option.ClientOption, opts ...option.ClientOption) (*Client, error) {
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	if analyticsOpts == nil {
		analyticsOpts = opts
	}
	analytics, err := youtubeanalytics.NewService(ctx, analyticsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube Analytics service: %w", err)
	}

	return &Client{
		service:   service,
		analytics: analytics,
	}, nil
}

// Service returns the underlying YouTube Data API service
func (c *Client) Service() *youtube.Service {
	return c.service
}

// Analytics returns the underlying YouTube Analytics API service
func (c *Client) Analytics() *youtubeanalytics.Service {
	return c.analytics
}
