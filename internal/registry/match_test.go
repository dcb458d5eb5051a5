package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"views", "veiws", 2},
		{"Views", "views", 0},
		{"likes", "liks", 1},
		{"héllo", "hello", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"->"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestFindClosestMetric(t *testing.T) {
	for input, want := range map[string]string{
		"veiws":   "views",
		"liks":    "likes",
		"commets": "comments",
		"Views":   "views",
		"VIEWS":   "views",
		"LIKES":   "likes",
	} {
		got, ok := FindClosestMetric(input, DefaultMaxDistance)
		require.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := FindClosestMetric("zzzzzzzzz", DefaultMaxDistance)
	assert.False(t, ok)
}

func TestFindClosestDimension(t *testing.T) {
	got, ok := FindClosestDimension("contry", DefaultMaxDistance)
	require.True(t, ok)
	assert.Equal(t, "country", got)

	got, ok = FindClosestDimension("vidoe", DefaultMaxDistance)
	require.True(t, ok)
	assert.Equal(t, "video", got)
}

func TestFindClosest_Threshold(t *testing.T) {
	_, ok := FindClosestMetric("veiws", 1)
	assert.False(t, ok)

	got, ok := FindClosestMetric("veiws", 2)
	require.True(t, ok)
	assert.Equal(t, "views", got)
}

func TestFindClosest_TieKeepsFirstCandidate(t *testing.T) {
	got, ok := findClosest("ab", []string{"ax", "ay", "ab2"}, 3)
	require.True(t, ok)
	assert.Equal(t, "ax", got)
}

func TestValidateMetrics(t *testing.T) {
	assert.Empty(t, ValidateMetrics([]string{"views", "likes", "comments"}))

	errs := ValidateMetrics([]string{"views", "veiws"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Unknown metric 'veiws'. Did you mean 'views'?", errs[0].Error())

	var unknown *UnknownNameError
	require.ErrorAs(t, errs[0], &unknown)
	assert.Equal(t, "views", unknown.Suggestion)

	errs = ValidateMetrics([]string{"zzzzzzzzz"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Unknown metric 'zzzzzzzzz'.", errs[0].Error())
}

func TestValidateDimensions(t *testing.T) {
	assert.Empty(t, ValidateDimensions([]string{"day", "country"}))

	errs := ValidateDimensions([]string{"cuntry"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "cuntry")
	assert.Contains(t, errs[0].Error(), "Did you mean 'country'?")
}
