package analytics

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanpramil7/ytstudio/internal/yt"
)

var fixedNow = time.Date(2026, 1, 29, 10, 0, 0, 0, time.UTC)

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"views", "likes"}, ParseList(" views, ,likes,"))
	assert.Empty(t, ParseList(""))
}

func TestParseFilters(t *testing.T) {
	filters, err := ParseFilters([]string{"country==US", " video == abc "})
	require.NoError(t, err)
	assert.Equal(t, []Filter{{"country", "US"}, {"video", "abc"}}, filters)

	_, err = ParseFilters([]string{"country=US"})
	assert.ErrorContains(t, err, "expected dimension==value")
}

func TestBuild_Basic(t *testing.T) {
	q, err := Build(Input{
		Metrics:    "views,likes",
		Dimensions: "day",
		Filters:    []string{"country==US", "deviceType==MOBILE"},
		Sort:       "-views",
		Limit:      10,
		Currency:   "eur",
		Now:        fixedNow,
	})
	require.NoError(t, err)

	want := yt.ReportRequest{
		IDs:        "channel==MINE",
		StartDate:  "2026-01-01",
		EndDate:    "2026-01-29",
		Metrics:    []string{"views", "likes"},
		Dimensions: []string{"day"},
		Filters:    "country==US;deviceType==MOBILE",
		Sort:       "-views",
		MaxResults: 10,
		Currency:   "EUR",
	}
	if diff := cmp.Diff(want, q.Request); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, q.Monetary)
}

func TestBuild_Monetary(t *testing.T) {
	q, err := Build(Input{Metrics: "views,estimatedRevenue", Now: fixedNow})
	require.NoError(t, err)
	assert.True(t, q.Monetary)
}

func TestBuild_ReportsAllProblems(t *testing.T) {
	_, err := Build(Input{Metrics: "veiws,likez", Dimensions: "dy", Now: fixedNow})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 problems")
	assert.Contains(t, err.Error(), "Unknown metric 'veiws'. Did you mean 'views'?")
	assert.Contains(t, err.Error(), "Unknown metric 'likez'. Did you mean 'likes'?")
	assert.Contains(t, err.Error(), "Unknown dimension 'dy'. Did you mean 'day'?")
}

func TestBuild_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		want  string
	}{
		{"no metrics", Input{Metrics: " , "}, "at least one metric is required"},
		{"video without sort", Input{Metrics: "views", Dimensions: "video", Limit: 10}, "requires --sort and --limit"},
		{"video without limit", Input{Metrics: "views", Dimensions: "video", Sort: "-views"}, "requires --sort and --limit"},
		{"sort not requested", Input{Metrics: "views", Sort: "-likes"}, "sort field 'likes'"},
		{"filter-only grouping", Input{Metrics: "views", Dimensions: "continent"}, "can only be used in filters"},
		{"unknown filter key", Input{Metrics: "views", Filters: []string{"contry==US"}}, "filter: Unknown dimension 'contry'. Did you mean 'country'?"},
		{"bad currency", Input{Metrics: "views", Currency: "EURO"}, "three-letter ISO 4217"},
		{"bad start", Input{Metrics: "views", Start: "01/02/2026"}, "invalid start date"},
		{"start after end", Input{Metrics: "views", Start: "2026-02-01", End: "2026-01-01"}, "is after end date"},
		{"negative limit", Input{Metrics: "views", Limit: -1}, "limit must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Now = fixedNow
			_, err := Build(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuild_VideoDimensionWithSortAndLimit(t *testing.T) {
	q, err := Build(Input{Metrics: "views", Dimensions: "video", Sort: "-views", Limit: 10, Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, int64(10), q.Request.MaxResults)
}

func TestBuild_FilterOnlyDimensionAsFilter(t *testing.T) {
	q, err := Build(Input{Metrics: "views", Dimensions: "country", Filters: []string{"continent==150"}, Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, "continent==150", q.Request.Filters)
}

func TestBuild_DateRange(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		start, end string
	}{
		{"default window", Input{}, "2026-01-01", "2026-01-29"},
		{"custom days", Input{Days: 7}, "2026-01-22", "2026-01-29"},
		{"start only", Input{Start: "2025-12-01"}, "2025-12-01", "2026-01-29"},
		{"end only", Input{End: "2025-12-31", Days: 30}, "2025-12-01", "2025-12-31"},
		{"both", Input{Start: "2025-06-01", End: "2025-06-30", Days: 3}, "2025-06-01", "2025-06-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Metrics = "views"
			tt.input.Now = fixedNow
			q, err := Build(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.start, q.Request.StartDate)
			assert.Equal(t, tt.end, q.Request.EndDate)
		})
	}
}

func TestWindow(t *testing.T) {
	start, end := Window(fixedNow, 0)
	assert.Equal(t, "2026-01-01", start)
	assert.Equal(t, "2026-01-29", end)
}
