package services

import (
	"context"

	"github.com/alanpramil7/ytstudio/internal/yt"
)

// ChannelService interface for the authenticated channel
type ChannelService interface {
	Mine(ctx context.Context) (*yt.Channel, error)
}

// VideoService interface for YouTube video operations
type VideoService interface {
	List(ctx context.Context, limit int, pageToken string) (*yt.VideoPage, error)
	Get(ctx context.Context, videoID string) (*yt.Video, error)
	Update(ctx context.Context, videoID string, update yt.VideoUpdate) (*yt.Video, error)
	Search(ctx context.Context, query string, maxResults int64) ([]yt.Video, error)
}

// CommentService interface for comment listing and moderation
type CommentService interface {
	List(ctx context.Context, query yt.CommentQuery) ([]yt.Comment, error)
	SetModerationStatus(ctx context.Context, commentIDs []string, status yt.ModerationStatus) (int, error)
}

// AnalyticsService interface for YouTube Analytics reports
type AnalyticsService interface {
	Query(ctx context.Context, req yt.ReportRequest) (*yt.Report, error)
}

// Set bundles one implementation of every service. It is chosen once at
// startup: live API-backed or demo fixtures.
type Set struct {
	Channels  ChannelService
	Videos    VideoService
	Comments  CommentService
	Analytics AnalyticsService
}

// NewSet creates the live, API-backed service set
func NewSet(client *yt.Client) *Set {
	channels := NewChannelService(client)
	return &Set{
		Channels:  channels,
		Videos:    NewVideoService(client, channels),
		Comments:  NewCommentService(client, channels),
		Analytics: NewAnalyticsService(client),
	}
}
