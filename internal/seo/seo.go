package seo

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/alanpramil7/ytstudio/internal/yt"
)

// Thresholds for a healthy video
const (
	TitleMin       = 30
	TitleMax       = 70
	DescriptionMin = 200
	TagsMin        = 5

	// GoodScore is the score from which a video needs no attention
	GoodScore = 80
	// FairScore separates poor from middling scores
	FairScore = 50
	// maxAttention caps how many videos an audit lists
	maxAttention = 15
)

// Aspect is the score of one part of a video's metadata
type Aspect struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
}

// Score is the SEO analysis of a single video
type Score struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Total       int    `json:"total_score"`
	TitleScore  Aspect `json:"title_score"`
	Description Aspect `json:"description_score"`
	Tags        Aspect `json:"tags_score"`
}

// MainIssue returns the first issue found, title first
func (s Score) MainIssue() string {
	for _, a := range []Aspect{s.TitleScore, s.Description, s.Tags} {
		if len(a.Issues) > 0 {
			return a.Issues[0]
		}
	}
	return ""
}

// Analyze scores the title, description and tags of v at 100 each and
// averages them
func Analyze(v yt.Video) Score {
	title := Aspect{Score: 100, Issues: []string{}}
	titleLen := utf8.RuneCountInString(v.Title)
	switch {
	case titleLen < TitleMin:
		title.Score -= 30
		title.Issues = append(title.Issues, fmt.Sprintf("too short (%d chars)", titleLen))
	case titleLen > TitleMax:
		title.Score -= 20
		title.Issues = append(title.Issues, fmt.Sprintf("too long (%d chars)", titleLen))
	}

	desc := Aspect{Score: 100, Issues: []string{}}
	descLen := utf8.RuneCountInString(v.Description)
	if descLen < DescriptionMin {
		desc.Score -= 40
		desc.Issues = append(desc.Issues, fmt.Sprintf("too short (%d chars)", descLen))
	}
	if strings.TrimSpace(v.Description) == "" {
		desc = Aspect{Score: 0, Issues: []string{"empty"}}
	}

	tags := Aspect{Score: 100, Issues: []string{}}
	if len(v.Tags) < TagsMin {
		tags.Score -= 30
		tags.Issues = append(tags.Issues, fmt.Sprintf("too few (%d tags)", len(v.Tags)))
	}
	if len(v.Tags) == 0 {
		tags = Aspect{Score: 0, Issues: []string{"no tags"}}
	}

	return Score{
		VideoID:     v.ID,
		Title:       v.Title,
		Total:       (title.Score + desc.Score + tags.Score) / 3,
		TitleScore:  title,
		Description: desc,
		Tags:        tags,
	}
}

// Audit summarizes the SEO health of a set of videos
type Audit struct {
	Average float64 `json:"average_score"`
	Videos  []Score `json:"videos"`
	// Attention holds scores below GoodScore, worst first
	Attention []Score `json:"-"`
}

// AuditVideos scores every video and picks those needing work
func AuditVideos(videos []yt.Video) Audit {
	audit := Audit{Videos: make([]Score, 0, len(videos)), Attention: []Score{}}
	if len(videos) == 0 {
		return audit
	}

	sum := 0
	for _, v := range videos {
		s := Analyze(v)
		sum += s.Total
		audit.Videos = append(audit.Videos, s)
	}
	audit.Average = float64(sum) / float64(len(audit.Videos))

	worst := slices.Clone(audit.Videos)
	slices.SortStableFunc(worst, func(a, b Score) int { return a.Total - b.Total })
	for _, s := range worst {
		if s.Total >= GoodScore || len(audit.Attention) >= maxAttention {
			break
		}
		audit.Attention = append(audit.Attention, s)
	}
	return audit
}

// Rating buckets a score as good, fair or poor
func Rating(score int) string {
	switch {
	case score >= GoodScore:
		return "good"
	case score >= FairScore:
		return "fair"
	}
	return "poor"
}
