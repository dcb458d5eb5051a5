// Package demo serves fixed channel data through the service interfaces so
// the CLI can be recorded and explored without credentials.
package demo

import (
	"context"
	"fmt"
	"hash/fnv"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/alanpramil7/ytstudio/internal/yt"
	"github.com/alanpramil7/ytstudio/internal/yt/services"
)

// New returns a service set backed by in-memory fixtures. Timestamps of
// comments are relative to now.
func New(now time.Time) *services.Set {
	store := &store{videos: demoVideos(), comments: demoComments(), now: now}
	return &services.Set{
		Channels:  channelService{},
		Videos:    &videoService{store: store},
		Comments:  &commentService{store: store},
		Analytics: analyticsService{},
	}
}

type store struct {
	mu       sync.Mutex
	videos   []yt.Video
	comments []demoComment
	now      time.Time
}

type channelService struct{}

func (channelService) Mine(context.Context) (*yt.Channel, error) {
	channel := demoChannel
	return &channel, nil
}

type videoService struct {
	store *store
}

func (v *videoService) List(_ context.Context, limit int, pageToken string) (*yt.VideoPage, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	offset := 0
	if pageToken != "" {
		if _, err := fmt.Sscanf(pageToken, "demo-%d", &offset); err != nil {
			return nil, fmt.Errorf("invalid page token %q", pageToken)
		}
	}
	all := v.store.videos
	page := &yt.VideoPage{Videos: []yt.Video{}, TotalResults: int64(len(all))}
	if offset >= len(all) || limit <= 0 {
		return page, nil
	}
	end := min(offset+limit, len(all))
	page.Videos = append(page.Videos, all[offset:end]...)
	if end < len(all) {
		page.NextPageToken = fmt.Sprintf("demo-%d", end)
	}
	return page, nil
}

// Get falls back to the first fixture so any ID works in recordings
func (v *videoService) Get(_ context.Context, videoID string) (*yt.Video, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	for _, video := range v.store.videos {
		if video.ID == videoID {
			return &video, nil
		}
	}
	video := v.store.videos[0]
	return &video, nil
}

func (v *videoService) Update(_ context.Context, videoID string, update yt.VideoUpdate) (*yt.Video, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	for i := range v.store.videos {
		video := &v.store.videos[i]
		if video.ID != videoID {
			continue
		}
		if update.Title != nil {
			video.Title = *update.Title
		}
		if update.Description != nil {
			video.Description = *update.Description
		}
		if update.Tags != nil {
			video.Tags = update.Tags
		}
		updated := *video
		return &updated, nil
	}
	return nil, fmt.Errorf("video %s: %w", videoID, yt.ErrNotFound)
}

func (v *videoService) Search(_ context.Context, query string, maxResults int64) ([]yt.Video, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	needle := strings.ToLower(query)
	results := []yt.Video{}
	for _, video := range v.store.videos {
		if int64(len(results)) >= maxResults {
			break
		}
		if strings.Contains(strings.ToLower(video.Title), needle) || strings.Contains(strings.ToLower(video.Description), needle) {
			results = append(results, video)
		}
	}
	return results, nil
}

type commentService struct {
	store *store
}

func (c *commentService) List(_ context.Context, query yt.CommentQuery) ([]yt.Comment, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	comments := []yt.Comment{}
	for _, dc := range c.store.comments {
		if len(comments) >= query.Limit {
			break
		}
		if dc.status != query.Status || (query.VideoID != "" && dc.VideoID != query.VideoID) {
			continue
		}
		comment := dc.Comment
		comment.PublishedAt = c.store.now.Add(-dc.age)
		comments = append(comments, comment)
	}
	if query.Order == yt.OrderTime {
		slices.SortStableFunc(comments, func(a, b yt.Comment) int {
			return b.PublishedAt.Compare(a.PublishedAt)
		})
	} else {
		slices.SortStableFunc(comments, func(a, b yt.Comment) int {
			return int(b.Likes - a.Likes)
		})
	}
	return comments, nil
}

func (c *commentService) SetModerationStatus(_ context.Context, commentIDs []string, status yt.ModerationStatus) (int, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for i := range c.store.comments {
		if slices.Contains(commentIDs, c.store.comments[i].ID) {
			c.store.comments[i].status = status
		}
	}
	return len(commentIDs), nil
}

type analyticsService struct{}

// Query synthesizes a deterministic report shaped like the request
func (analyticsService) Query(_ context.Context, req yt.ReportRequest) (*yt.Report, error) {
	report := &yt.Report{Rows: [][]any{}}
	for _, d := range req.Dimensions {
		report.Columns = append(report.Columns, yt.Column{Name: d, ColumnType: "DIMENSION", DataType: "STRING"})
	}
	for _, m := range req.Metrics {
		report.Columns = append(report.Columns, yt.Column{Name: m, ColumnType: "METRIC", DataType: "FLOAT"})
	}

	keys := dimensionKeys(req)
	for i, key := range keys {
		row := make([]any, 0, len(report.Columns))
		for _, part := range key {
			row = append(row, part)
		}
		for _, m := range req.Metrics {
			row = append(row, metricValue(m, i, len(keys)))
		}
		report.Rows = append(report.Rows, row)
	}

	sortRows(report, req.Sort)
	if req.MaxResults > 0 && int64(len(report.Rows)) > req.MaxResults {
		report.Rows = report.Rows[:req.MaxResults]
	}
	return report, nil
}

// dimensionKeys lists the dimension tuples a report would group by
func dimensionKeys(req yt.ReportRequest) [][]string {
	keys := [][]string{{}}
	for _, d := range req.Dimensions {
		values := dimensionValues(d, req)
		next := make([][]string, 0, len(keys)*len(values))
		for _, key := range keys {
			for _, v := range values {
				next = append(next, append(slices.Clone(key), v))
			}
		}
		keys = next
	}
	return keys
}

func dimensionValues(dimension string, req yt.ReportRequest) []string {
	switch dimension {
	case "day":
		start, err1 := time.Parse("2006-01-02", req.StartDate)
		end, err2 := time.Parse("2006-01-02", req.EndDate)
		if err1 != nil || err2 != nil {
			return []string{req.EndDate}
		}
		var days []string
		for d := start; !d.After(end) && len(days) < 366; d = d.AddDate(0, 0, 1) {
			days = append(days, d.Format("2006-01-02"))
		}
		return days
	case "month":
		first, last := req.StartDate[:min(7, len(req.StartDate))], req.EndDate[:min(7, len(req.EndDate))]
		if first == last {
			return []string{first}
		}
		return []string{first, last}
	case "video":
		ids := make([]string, 0, 6)
		for _, v := range demoVideos() {
			ids = append(ids, v.ID)
		}
		return ids
	case "country":
		return countries
	case "insightTrafficSourceType":
		return trafficSources
	case "deviceType":
		return deviceTypes
	}
	return []string{dimension + "-a", dimension + "-b"}
}

// metricValue spreads the channel total over rows with a stable jitter
func metricValue(metric string, row, rows int) float64 {
	base, ok := channelTotals[metric]
	if !ok {
		h := fnv.New32a()
		h.Write([]byte(metric))
		base = float64(h.Sum32()%5000 + 100)
	}
	weight := 1 + float64((row*7+len(metric))%5)/10
	if isRatio(metric) {
		return float64(int(base*weight*100)) / 100
	}
	return float64(int(base * weight / float64(rows)))
}

func isRatio(metric string) bool {
	name := strings.ToLower(metric)
	return strings.Contains(name, "rate") || strings.Contains(name, "percentage") ||
		strings.Contains(name, "cpm") || strings.Contains(name, "average")
}

func sortRows(report *yt.Report, sort string) {
	if sort == "" {
		return
	}
	field := strings.Split(sort, ",")[0]
	desc := strings.HasPrefix(field, "-")
	field = strings.TrimPrefix(field, "-")

	col := slices.IndexFunc(report.Columns, func(c yt.Column) bool { return c.Name == field })
	if col < 0 {
		return
	}
	slices.SortStableFunc(report.Rows, func(a, b []any) int {
		cmp := compareValues(a[col], b[col])
		if desc {
			return -cmp
		}
		return cmp
	})
}

func compareValues(a, b any) int {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
