package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanpramil7/ytstudio/internal/yt"
)

func tags(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "tag"
	}
	return out
}

func TestAnalyze(t *testing.T) {
	good := yt.Video{
		ID:          "ok",
		Title:       strings.Repeat("t", 40),
		Description: strings.Repeat("d", 250),
		Tags:        tags(6),
	}
	tests := []struct {
		name  string
		video yt.Video
		total int
		issue string
	}{
		{"perfect", good, 100, ""},
		{"short title", withTitle(good, "Generics"), 90, "too short (8 chars)"},
		{"long title", withTitle(good, strings.Repeat("x", 71)), 93, "too long (71 chars)"},
		{"short description", withDesc(good, "brief"), 86, "too short (5 chars)"},
		{"empty description", withDesc(good, "   "), 66, "empty"},
		{"few tags", withTags(good, tags(2)), 90, "too few (2 tags)"},
		{"no tags", withTags(good, nil), 66, "no tags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Analyze(tt.video)
			assert.Equal(t, tt.total, s.Total)
			assert.Equal(t, tt.issue, s.MainIssue())
		})
	}
}

func TestAnalyze_AllBad(t *testing.T) {
	s := Analyze(yt.Video{Title: "Generics"})
	assert.Equal(t, 70, s.TitleScore.Score)
	assert.Equal(t, 0, s.Description.Score)
	assert.Equal(t, 0, s.Tags.Score)
	assert.Equal(t, 23, s.Total)
}

func TestAnalyze_CountsRunes(t *testing.T) {
	s := Analyze(yt.Video{Title: strings.Repeat("é", 30)})
	assert.Empty(t, s.TitleScore.Issues)
}

func TestAuditVideos(t *testing.T) {
	good := yt.Video{ID: "good", Title: strings.Repeat("t", 40), Description: strings.Repeat("d", 250), Tags: tags(6)}
	poor := yt.Video{ID: "poor", Title: "x"}
	fair := withTags(good, tags(1))
	fair.ID = "fair"

	audit := AuditVideos([]yt.Video{good, fair, poor})
	require.Len(t, audit.Videos, 3)
	assert.InDelta(t, (100.0+90+23)/3, audit.Average, 0.001)
	require.Len(t, audit.Attention, 1)
	assert.Equal(t, "poor", audit.Attention[0].VideoID)

	empty := AuditVideos(nil)
	assert.Zero(t, empty.Average)
	assert.Empty(t, empty.Attention)
}

func TestAuditVideos_CapsAttentionList(t *testing.T) {
	videos := make([]yt.Video, 20)
	for i := range videos {
		videos[i] = yt.Video{Title: "short"}
	}
	assert.Len(t, AuditVideos(videos).Attention, 15)
}

func TestRating(t *testing.T) {
	assert.Equal(t, "good", Rating(80))
	assert.Equal(t, "fair", Rating(50))
	assert.Equal(t, "poor", Rating(49))
}

func withTitle(v yt.Video, title string) yt.Video {
	v.Title = title
	return v
}

func withDesc(v yt.Video, desc string) yt.Video {
	v.Description = desc
	return v
}

func withTags(v yt.Video, t []string) yt.Video {
	v.Tags = t
	return v
}
