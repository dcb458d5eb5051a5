package bulk

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanpramil7/ytstudio/internal/yt"
)

type fakeVideos struct {
	pages     []yt.VideoPage
	listCalls int
	failures  map[string]error
	updated   map[string]yt.VideoUpdate
}

func (f *fakeVideos) List(_ context.Context, _ int, pageToken string) (*yt.VideoPage, error) {
	f.listCalls++
	idx := 0
	if pageToken != "" {
		fmt.Sscanf(pageToken, "p%d", &idx)
	}
	page := f.pages[idx]
	return &page, nil
}

func (f *fakeVideos) Get(context.Context, string) (*yt.Video, error) {
	return nil, yt.ErrNotFound
}

func (f *fakeVideos) Update(_ context.Context, id string, u yt.VideoUpdate) (*yt.Video, error) {
	if err := f.failures[id]; err != nil {
		return nil, err
	}
	if f.updated == nil {
		f.updated = map[string]yt.VideoUpdate{}
	}
	f.updated[id] = u
	return &yt.Video{ID: id}, nil
}

func (f *fakeVideos) Search(context.Context, string, int64) ([]yt.Video, error) {
	return nil, nil
}

func twoPages() *fakeVideos {
	return &fakeVideos{pages: []yt.VideoPage{
		{
			Videos: []yt.Video{
				{ID: "a", Title: "Go tips 2025", Description: "year 2025"},
				{ID: "b", Title: "Unrelated"},
			},
			NextPageToken: "p1",
		},
		{
			Videos: []yt.Video{
				{ID: "c", Title: "Recap 2025"},
				{ID: "d", Title: "2025 in review"},
			},
		},
	}}
}

func TestReplacer(t *testing.T) {
	r, err := NewReplacer("2025", "2026", false)
	require.NoError(t, err)
	assert.Equal(t, "2026 and 2026", r.Replace("2025 and 2025"))

	re, err := NewReplacer(`(\d{4})`, "[$1]", true)
	require.NoError(t, err)
	assert.Equal(t, "tips [2025]", re.Replace("tips 2025"))

	_, err = NewReplacer("(", "x", true)
	assert.ErrorContains(t, err, "invalid regex")

	_, err = NewReplacer("", "x", false)
	assert.Error(t, err)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("Description")
	require.NoError(t, err)
	assert.Equal(t, FieldDescription, f)

	_, err = ParseField("tags")
	assert.Error(t, err)
}

func TestPlan_WalksPagesUntilLimit(t *testing.T) {
	videos := twoPages()
	r, _ := NewReplacer("2025", "2026", false)

	changes, err := Plan(context.Background(), videos, FieldTitle, r, 2)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "a", changes[0].VideoID)
	assert.Equal(t, "Go tips 2026", changes[0].New)
	assert.Equal(t, "c", changes[1].VideoID)
	assert.Equal(t, 2, videos.listCalls)
}

func TestPlan_StopsAtLastPage(t *testing.T) {
	videos := twoPages()
	r, _ := NewReplacer("2025", "2026", false)

	changes, err := Plan(context.Background(), videos, FieldTitle, r, 10)
	require.NoError(t, err)
	assert.Len(t, changes, 3)
	assert.Equal(t, 2, videos.listCalls)
}

func TestPlan_DescriptionField(t *testing.T) {
	r, _ := NewReplacer("2025", "2026", false)
	changes, err := Plan(context.Background(), twoPages(), FieldDescription, r, 10)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "year 2026", changes[0].New)
}

func TestApply_CountsFailuresAndContinues(t *testing.T) {
	videos := &fakeVideos{failures: map[string]error{
		"b": errors.New("backend error"),
		"c": fmt.Errorf("video c: %w", yt.ErrNotFound),
	}}
	changes := []Change{{VideoID: "a", New: "A"}, {VideoID: "b", New: "B"}, {VideoID: "c", New: "C"}, {VideoID: "d", New: "D", Field: FieldDescription}}

	var seen []string
	result, err := Apply(context.Background(), videos, changes, func(c Change, _ error) {
		seen = append(seen, c.VideoID)
	})
	require.NoError(t, err)
	assert.Equal(t, Result{Applied: 2, Failed: 1, Skipped: 1}, result)
	assert.Equal(t, []string{"a", "b", "c", "d"}, seen)
	assert.Equal(t, "A", *videos.updated["a"].Title)
	assert.Equal(t, "D", *videos.updated["d"].Description)
}

func TestApply_QuotaHaltsWithPartialError(t *testing.T) {
	videos := &fakeVideos{failures: map[string]error{
		"b": errors.New("boom"),
		"c": fmt.Errorf("update: %w", yt.ErrQuotaExceeded),
	}}
	changes := []Change{{VideoID: "a"}, {VideoID: "b"}, {VideoID: "c"}, {VideoID: "d"}}

	result, err := Apply(context.Background(), videos, changes, nil)
	require.Error(t, err)

	var partial *PartialError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 1, partial.Applied)
	assert.Equal(t, 1, partial.Failed)
	assert.ErrorIs(t, err, yt.ErrQuotaExceeded)
	assert.Equal(t, "partial progress: 1 updated, 1 failed: update: daily YouTube API quota exceeded", err.Error())
	assert.Equal(t, partial.Result, result)
	assert.NotContains(t, videos.updated, "d")
}

func TestApply_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Apply(ctx, &fakeVideos{}, []Change{{VideoID: "a"}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
