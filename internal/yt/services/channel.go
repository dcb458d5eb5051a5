package services

import (
	"context"
	"fmt"

	"github.com/alanpramil7/ytstudio/internal/yt"
)

type channelService struct {
	client *yt.Client
}

// NewChannelService creates a new channel service instance
func NewChannelService(client *yt.Client) ChannelService {
	return &channelService{client: client}
}

// Mine retrieves the channel owned by the authenticated user
func (c *channelService) Mine(ctx context.Context) (*yt.Channel, error) {
	response, err := c.client.Service().Channels.
		List([]string{"snippet", "statistics", "contentDetails"}).
		Mine(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("error fetching channel: %w", yt.Classify(err))
	}
	if len(response.Items) == 0 {
		return nil, fmt.Errorf("no channel found: %w", yt.ErrNotFound)
	}

	item := response.Items[0]
	channel := &yt.Channel{ID: item.Id}
	if item.Snippet != nil {
		channel.Title = item.Snippet.Title
	}
	if item.Statistics != nil {
		channel.SubscriberCount = item.Statistics.SubscriberCount
		channel.VideoCount = item.Statistics.VideoCount
		channel.ViewCount = item.Statistics.ViewCount
		channel.HiddenSubscriber = item.Statistics.HiddenSubscriberCount
	}
	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		channel.UploadsPlaylist = item.ContentDetails.RelatedPlaylists.Uploads
	}
	return channel, nil
}
