package yt

import (
	"fmt"
	"strings"
	"time"
)

// Channel represents the authenticated user's channel
type Channel struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	UploadsPlaylist  string `json:"uploads_playlist"`
	SubscriberCount  uint64 `json:"subscribers"`
	VideoCount       uint64 `json:"videos"`
	ViewCount        uint64 `json:"views"`
	HiddenSubscriber bool   `json:"hidden_subscriber_count,omitempty"`
}

// Video represents a single upload with its statistics
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PublishedAt  time.Time `json:"published_at"`
	Views        uint64    `json:"views"`
	Likes        uint64    `json:"likes"`
	Comments     uint64    `json:"comments"`
	Privacy      string    `json:"privacy"`
	Tags         []string  `json:"tags"`
	CategoryID   string    `json:"category_id"`
	Duration     string    `json:"duration"`
	Licensed     bool      `json:"licensed"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
}

// URL returns the short watch link for the video
func (v Video) URL() string {
	return "https://youtu.be/" + v.ID
}

// VideoPage is one paginated listing of uploads
type VideoPage struct {
	Videos        []Video `json:"videos"`
	NextPageToken string  `json:"next_page_token,omitempty"`
	TotalResults  int64   `json:"total_results"`
}

// VideoUpdate holds the snippet fields to change. Nil fields are left alone.
type VideoUpdate struct {
	Title       *string
	Description *string
	Tags        []string
}

// Empty reports whether the update changes nothing
func (u VideoUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Tags == nil
}

// Comment represents a top-level comment
type Comment struct {
	ID          string    `json:"id"`
	VideoID     string    `json:"video_id,omitempty"`
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	Likes       int64     `json:"likes"`
	PublishedAt time.Time `json:"published"`
	Replies     int64     `json:"replies"`
}

// CommentQuery selects comment threads. An empty VideoID means the whole channel.
type CommentQuery struct {
	VideoID string
	Limit   int
	Order   CommentOrder
	Status  ModerationStatus
}

// ModerationStatus is the review state of a comment
type ModerationStatus int

const (
	StatusPublished ModerationStatus = iota
	StatusHeld
	StatusLikelySpam
	StatusRejected
)

var moderationWire = map[ModerationStatus]string{
	StatusPublished:  "published",
	StatusHeld:       "heldForReview",
	StatusLikelySpam: "likelySpam",
	StatusRejected:   "rejected",
}

// Wire returns the API value for the status
func (s ModerationStatus) Wire() string {
	return moderationWire[s]
}

func (s ModerationStatus) String() string {
	switch s {
	case StatusHeld:
		return "held"
	case StatusLikelySpam:
		return "spam"
	case StatusRejected:
		return "rejected"
	default:
		return "published"
	}
}

// ParseModerationStatus accepts the CLI names as well as the API values
func ParseModerationStatus(s string) (ModerationStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "published":
		return StatusPublished, nil
	case "held", "heldforreview":
		return StatusHeld, nil
	case "spam", "likelyspam":
		return StatusLikelySpam, nil
	case "rejected":
		return StatusRejected, nil
	}
	return 0, fmt.Errorf("invalid moderation status %q (published, held, spam, rejected)", s)
}

// CommentOrder is the listing order of comment threads
type CommentOrder int

const (
	OrderRelevance CommentOrder = iota
	OrderTime
)

// Wire returns the API value for the order
func (o CommentOrder) Wire() string {
	if o == OrderTime {
		return "time"
	}
	return "relevance"
}

// ParseCommentOrder parses "time" or "relevance"
func ParseCommentOrder(s string) (CommentOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relevance":
		return OrderRelevance, nil
	case "time":
		return OrderTime, nil
	}
	return 0, fmt.Errorf("invalid comment order %q (time, relevance)", s)
}

// VideoSort orders a local video listing
type VideoSort int

const (
	SortByDate VideoSort = iota
	SortByViews
	SortByLikes
)

func (s VideoSort) String() string {
	switch s {
	case SortByViews:
		return "views"
	case SortByLikes:
		return "likes"
	default:
		return "date"
	}
}

// ParseVideoSort parses "date", "views" or "likes"
func ParseVideoSort(s string) (VideoSort, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "date":
		return SortByDate, nil
	case "views":
		return SortByViews, nil
	case "likes":
		return SortByLikes, nil
	}
	return 0, fmt.Errorf("invalid sort %q (date, views, likes)", s)
}

// ReportRequest is a validated YouTube Analytics reports.query call
type ReportRequest struct {
	IDs        string
	StartDate  string
	EndDate    string
	Metrics    []string
	Dimensions []string
	Filters    string
	Sort       string
	MaxResults int64
	Currency   string
}

// Column describes one column of an analytics report
type Column struct {
	Name       string `json:"name"`
	ColumnType string `json:"column_type"`
	DataType   string `json:"data_type"`
}

// Report is a tabular analytics response
type Report struct {
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Headers returns the column names in order
func (r *Report) Headers() []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = c.Name
	}
	return out
}

// Record maps column names to values for the first row, nil if empty
func (r *Report) Record() map[string]any {
	if r == nil || len(r.Rows) == 0 {
		return nil
	}
	out := make(map[string]any, len(r.Columns))
	for i, c := range r.Columns {
		if i < len(r.Rows[0]) {
			out[c.Name] = r.Rows[0][i]
		}
	}
	return out
}
