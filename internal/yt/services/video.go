package services

import (
	"context"
	"fmt"
	"time"

	"github.com/alanpramil7/ytstudio/internal/yt"
	"google.golang.org/api/youtube/v3"
)

type videoService struct {
	client   *yt.Client
	channels ChannelService
}

// NewVideoService creates a new video service instance
func NewVideoService(client *yt.Client, channels ChannelService) VideoService {
	return &videoService{
		client:   client,
		channels: channels,
	}
}

// List returns one page of the channel's uploads, newest first
func (v *videoService) List(ctx context.Context, limit int, pageToken string) (*yt.VideoPage, error) {
	if limit <= 0 {
		return &yt.VideoPage{Videos: []yt.Video{}}, nil
	}
	channel, err := v.channels.Mine(ctx)
	if err != nil {
		return nil, err
	}
	if channel.UploadsPlaylist == "" {
		return &yt.VideoPage{Videos: []yt.Video{}}, nil
	}
	return v.listUploads(ctx, channel.UploadsPlaylist, limit, pageToken)
}

// Get retrieves a single video by ID
func (v *videoService) Get(ctx context.Context, videoID string) (*yt.Video, error) {
	details, err := v.getVideoDetails(ctx, []string{videoID})
	if err != nil {
		return nil, err
	}
	video, ok := details[videoID]
	if !ok {
		return nil, fmt.Errorf("video %s: %w", videoID, yt.ErrNotFound)
	}
	return &video, nil
}

// Update rewrites the snippet of a video. The current snippet is fetched
// first because the API replaces every snippet field on update.
func (v *videoService) Update(ctx context.Context, videoID string, update yt.VideoUpdate) (*yt.Video, error) {
	service := v.client.Service()

	response, err := service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error fetching video %s: %w", videoID, yt.Classify(err))
	}
	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		return nil, fmt.Errorf("video %s: %w", videoID, yt.ErrNotFound)
	}

	current := response.Items[0].Snippet
	snippet := &youtube.VideoSnippet{
		Title:       current.Title,
		Description: current.Description,
		Tags:        current.Tags,
		CategoryId:  current.CategoryId,
	}
	if update.Title != nil {
		snippet.Title = *update.Title
	}
	if update.Description != nil {
		snippet.Description = *update.Description
	}
	if update.Tags != nil {
		snippet.Tags = update.Tags
	}

	updated, err := service.Videos.Update([]string{"snippet"}, &youtube.Video{
		Id:      videoID,
		Snippet: snippet,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error updating video %s: %w", videoID, yt.Classify(err))
	}

	video := videoFromAPI(updated)
	return &video, nil
}

func videoFromAPI(item *youtube.Video) yt.Video {
	video := yt.Video{ID: item.Id}
	if s := item.Snippet; s != nil {
		video.Title = s.Title
		video.Description = s.Description
		video.Tags = s.Tags
		video.CategoryID = s.CategoryId
		video.ThumbnailURL = getBestThumbnail(s.Thumbnails)
		video.PublishedAt, _ = time.Parse(time.RFC3339, s.PublishedAt)
	}
	if st := item.Statistics; st != nil {
		video.Views = st.ViewCount
		video.Likes = st.LikeCount
		video.Comments = st.CommentCount
	}
	if cd := item.ContentDetails; cd != nil {
		video.Duration = cd.Duration
		video.Licensed = cd.LicensedContent
	}
	if status := item.Status; status != nil {
		video.Privacy = status.PrivacyStatus
	}
	if video.Tags == nil {
		video.Tags = []string{}
	}
	return video
}
