package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/alanpramil7/ytstudio/internal/yt"
	"google.golang.org/api/youtube/v3"
)

const defaultOrder = "relevance"

// Search finds videos on the authenticated channel matching query
func (v *videoService) Search(ctx context.Context, query string, maxResults int64) ([]yt.Video, error) {
	service := v.client.Service()

	call := service.Search.List([]string{"id", "snippet"}).
		ForMine(true).
		Type("video").
		Q(query).
		Order(defaultOrder).
		MaxResults(min(maxResults, maxPageSize))

	response, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error executing search: %w", yt.Classify(err))
	}

	// First pass: collect video IDs
	videoIDs := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}
	if len(videoIDs) == 0 {
		return []yt.Video{}, nil
	}

	// Second pass: full details in search ranking order
	details, err := v.getVideoDetails(ctx, videoIDs)
	if err != nil {
		return nil, err
	}
	results := make([]yt.Video, 0, len(videoIDs))
	for _, id := range videoIDs {
		if detail, ok := details[id]; ok {
			results = append(results, detail)
		}
	}
	return results, nil
}

// getVideoDetails retrieves detailed information for a list of video IDs
func (v *videoService) getVideoDetails(ctx context.Context, videoIDs []string) (map[string]yt.Video, error) {
	call := v.client.Service().Videos.List([]string{"snippet", "statistics", "contentDetails", "status"}).
		Id(strings.Join(videoIDs, ","))

	response, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error getting video details: %w", yt.Classify(err))
	}

	details := make(map[string]yt.Video, len(response.Items))
	for _, video := range response.Items {
		details[video.Id] = videoFromAPI(video)
	}
	return details, nil
}

// getBestThumbnail returns the URL of the best available thumbnail
func getBestThumbnail(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}

	// Prefer high quality thumbnails
	if thumbnails.Maxres != nil {
		return thumbnails.Maxres.Url
	}
	if thumbnails.High != nil {
		return thumbnails.High.Url
	}
	if thumbnails.Medium != nil {
		return thumbnails.Medium.Url
	}
	if thumbnails.Default != nil {
		return thumbnails.Default.Url
	}

	return ""
}
