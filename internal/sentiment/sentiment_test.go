package sentiment

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanpramil7/ytstudio/internal/yt"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, 1, Classify("This is GREAT"))
	assert.Equal(t, 1, Classify("🔥🔥"))
	assert.Equal(t, -1, Classify("worst video ever"))
	assert.Equal(t, 0, Classify("good idea, bad execution"))
	assert.Equal(t, 0, Classify("first"))
}

func TestSummarize(t *testing.T) {
	comments := []yt.Comment{
		{Author: "a", Text: "love it"},
		{Author: "b", Text: "so boring"},
		{Author: "c", Text: "when is part two?"},
		{Author: "d", Text: "terrible audio " + strings.Repeat("x", 200)},
	}
	s := Summarize(comments)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Positive)
	assert.Equal(t, 2, s.Negative)
	assert.Equal(t, 1, s.Neutral)
	assert.Len(t, s.Samples, 2)
	assert.Len(t, []rune(s.Samples[1].Text), 100)
	assert.InDelta(t, 50.0, s.Percent(s.Negative), 0.001)
}

func TestSummarize_CapsSamples(t *testing.T) {
	comments := make([]yt.Comment, 8)
	for i := range comments {
		comments[i] = yt.Comment{Author: fmt.Sprint(i), Text: "trash"}
	}
	s := Summarize(comments)
	assert.Equal(t, 8, s.Negative)
	assert.Len(t, s.Samples, 5)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.Percent(0))
}
