// Package sentiment gives a rough keyword-based read on a comment section.
package sentiment

import (
	"strings"

	"github.com/alanpramil7/ytstudio/internal/yt"
)

const (
	maxSamples   = 5
	sampleLength = 100
)

var positiveWords = []string{
	"love", "great", "amazing", "awesome", "best", "perfect", "fantastic",
	"excellent", "good", "nice", "beautiful", "haha", "lol", "genius",
	"brilliant", "thank", "😂", "❤️", "👍", "🔥",
}

var negativeWords = []string{
	"hate", "bad", "worst", "terrible", "awful", "boring", "stupid", "trash",
	"garbage", "disappointing", "cringe", "sucks", "confusing", "wrong", "👎",
}

// Sample is a negative comment shown as an example
type Sample struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// Summary counts comments by sentiment
type Summary struct {
	Total    int      `json:"total"`
	Positive int      `json:"positive"`
	Negative int      `json:"negative"`
	Neutral  int      `json:"neutral"`
	Samples  []Sample `json:"negative_samples"`
}

// Percent returns n as a share of the total
func (s Summary) Percent(n int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(n) / float64(s.Total) * 100
}

// Classify returns 1 for positive, -1 for negative and 0 for neutral text.
// Text with both kinds of keyword is neutral.
func Classify(text string) int {
	lower := strings.ToLower(text)
	pos := containsAny(lower, positiveWords)
	neg := containsAny(lower, negativeWords)
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}

// Summarize classifies every comment and keeps up to five negative samples
func Summarize(comments []yt.Comment) Summary {
	summary := Summary{Total: len(comments), Samples: []Sample{}}
	for _, c := range comments {
		switch Classify(c.Text) {
		case 1:
			summary.Positive++
		case -1:
			summary.Negative++
			if len(summary.Samples) < maxSamples {
				summary.Samples = append(summary.Samples, Sample{Author: c.Author, Text: clip(c.Text)})
			}
		}
	}
	summary.Neutral = summary.Total - summary.Positive - summary.Negative
	return summary
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func clip(s string) string {
	r := []rune(s)
	if len(r) > sampleLength {
		return string(r[:sampleLength])
	}
	return s
}
