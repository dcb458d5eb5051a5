package services

import (
	"context"
	"fmt"
	"time"

	"github.com/alanpramil7/ytstudio/internal/yt"
	"google.golang.org/api/youtube/v3"
)

// maxCommentPage is the page cap for commentThreads.list
const maxCommentPage = 100

type commentService struct {
	client   *yt.Client
	channels ChannelService
}

// NewCommentService creates a new comment service instance
func NewCommentService(client *yt.Client, channels ChannelService) CommentService {
	return &commentService{
		client:   client,
		channels: channels,
	}
}

// List retrieves top-level comments for a video, or for the whole channel
// when no video is given
func (c *commentService) List(ctx context.Context, query yt.CommentQuery) ([]yt.Comment, error) {
	comments := []yt.Comment{}
	if query.Limit <= 0 {
		return comments, nil
	}

	var channelID string
	if query.VideoID == "" {
		channel, err := c.channels.Mine(ctx)
		if err != nil {
			return nil, err
		}
		channelID = channel.ID
	}

	service := c.client.Service()
	nextPageToken := ""

	for len(comments) < query.Limit {
		call := service.CommentThreads.List([]string{"snippet"}).
			MaxResults(int64(min(query.Limit-len(comments), maxCommentPage))).
			Order(query.Order.Wire()).
			TextFormat("plainText")
		if query.VideoID != "" {
			call = call.VideoId(query.VideoID)
		} else {
			call = call.AllThreadsRelatedToChannelId(channelID)
		}
		if query.Status != yt.StatusPublished {
			call = call.ModerationStatus(query.Status.Wire())
		}
		if nextPageToken != "" {
			call = call.PageToken(nextPageToken)
		}

		response, err := call.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("error fetching comments: %w", yt.Classify(err))
		}

		for _, item := range response.Items {
			if comment, ok := commentFromThread(item); ok {
				comments = append(comments, comment)
			}
		}

		nextPageToken = response.NextPageToken
		if nextPageToken == "" || len(response.Items) == 0 {
			break
		}
	}

	if len(comments) > query.Limit {
		comments = comments[:query.Limit]
	}
	return comments, nil
}

// SetModerationStatus applies status to the given comments in batches and
// returns how many were applied before any failure
func (c *commentService) SetModerationStatus(ctx context.Context, commentIDs []string, status yt.ModerationStatus) (int, error) {
	service := c.client.Service()
	applied := 0

	for start := 0; start < len(commentIDs); start += maxPageSize {
		batch := commentIDs[start:min(start+maxPageSize, len(commentIDs))]
		err := service.Comments.SetModerationStatus(batch, status.Wire()).Context(ctx).Do()
		if err != nil {
			return applied, fmt.Errorf("error setting moderation status: %w", yt.Classify(err))
		}
		applied += len(batch)
	}
	return applied, nil
}

func commentFromThread(thread *youtube.CommentThread) (yt.Comment, bool) {
	if thread.Snippet == nil || thread.Snippet.TopLevelComment == nil || thread.Snippet.TopLevelComment.Snippet == nil {
		return yt.Comment{}, false
	}
	top := thread.Snippet.TopLevelComment
	text := top.Snippet.TextOriginal
	if text == "" {
		text = top.Snippet.TextDisplay
	}
	publishedAt, _ := time.Parse(time.RFC3339, top.Snippet.PublishedAt)

	return yt.Comment{
		ID:          top.Id,
		VideoID:     thread.Snippet.VideoId,
		Author:      top.Snippet.AuthorDisplayName,
		Text:        text,
		Likes:       top.Snippet.LikeCount,
		PublishedAt: publishedAt,
		Replies:     thread.Snippet.TotalReplyCount,
	}, true
}
