package services

import (
	"context"
	"fmt"

	"github.com/alanpramil7/ytstudio/internal/yt"
)

// maxPageSize is the largest page the Data API hands out per list call
const maxPageSize = 50

// listUploads walks the uploads playlist until limit videos are collected
// or the playlist runs out. The token for the following page is returned
// so callers can resume.
func (v *videoService) listUploads(ctx context.Context, playlistID string, limit int, pageToken string) (*yt.VideoPage, error) {
	service := v.client.Service()

	page := &yt.VideoPage{Videos: []yt.Video{}}
	nextPageToken := pageToken
	first := true

	for len(page.Videos) < limit {
		call := service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(int64(min(limit-len(page.Videos), maxPageSize)))
		if nextPageToken != "" {
			call = call.PageToken(nextPageToken)
		}

		response, err := call.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("error fetching playlist items: %w", yt.Classify(err))
		}
		if first && response.PageInfo != nil {
			page.TotalResults = response.PageInfo.TotalResults
		}
		first = false

		// First pass: collect video IDs in playlist order
		videoIDs := make([]string, 0, len(response.Items))
		for _, item := range response.Items {
			if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
				videoIDs = append(videoIDs, item.ContentDetails.VideoId)
			}
		}

		// Second pass: statistics and status for each video
		if len(videoIDs) > 0 {
			details, err := v.getVideoDetails(ctx, videoIDs)
			if err != nil {
				return nil, err
			}
			for _, id := range videoIDs {
				if detail, ok := details[id]; ok {
					page.Videos = append(page.Videos, detail)
				}
			}
		}

		nextPageToken = response.NextPageToken
		if nextPageToken == "" || len(response.Items) == 0 {
			break
		}
	}

	page.NextPageToken = nextPageToken
	return page, nil
}
