package registry

import (
	"fmt"
	"strings"
)

// DefaultMaxDistance is the edit distance used for "did you mean" suggestions.
const DefaultMaxDistance = 3

// UnknownNameError reports a metric or dimension name missing from the catalog.
type UnknownNameError struct {
	Kind       string // "metric" or "dimension"
	Name       string
	Suggestion string
}

func (e *UnknownNameError) Error() string {
	msg := fmt.Sprintf("Unknown %s '%s'.", e.Kind, e.Name)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" Did you mean '%s'?", e.Suggestion)
	}
	return msg
}

// FindClosestMetric returns the metric name nearest to name, if one lies
// within maxDistance edits.
func FindClosestMetric(name string, maxDistance int) (string, bool) {
	return findClosest(name, metricNames, maxDistance)
}

// FindClosestDimension returns the dimension name nearest to name, if one lies
// within maxDistance edits.
func FindClosestDimension(name string, maxDistance int) (string, bool) {
	return findClosest(name, dimensionNames, maxDistance)
}

// findClosest keeps the first candidate on ties.
func findClosest(name string, candidates []string, maxDistance int) (string, bool) {
	best := ""
	bestDist := maxDistance + 1
	for _, candidate := range candidates {
		if d := Levenshtein(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if bestDist > maxDistance {
		return "", false
	}
	return best, true
}

// Levenshtein computes the case-insensitive edit distance between a and b.
// Insertions, deletions and substitutions each cost 1.
func Levenshtein(a, b string) int {
	s1 := []rune(strings.ToLower(a))
	s2 := []rune(strings.ToLower(b))
	if len(s1) < len(s2) {
		s1, s2 = s2, s1
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i, c1 := range s1 {
		curr[0] = i + 1
		for j, c2 := range s2 {
			cost := 1
			if c1 == c2 {
				cost = 0
			}
			curr[j+1] = min(prev[j+1]+1, curr[j]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}

// ValidateMetrics returns one error per name that is not a known metric.
func ValidateMetrics(names []string) []error {
	var errs []error
	for _, name := range names {
		if _, ok := metricIndex[name]; ok {
			continue
		}
		suggestion, _ := FindClosestMetric(name, DefaultMaxDistance)
		errs = append(errs, &UnknownNameError{Kind: "metric", Name: name, Suggestion: suggestion})
	}
	return errs
}

// ValidateDimensions returns one error per name that is not a known dimension.
func ValidateDimensions(names []string) []error {
	var errs []error
	for _, name := range names {
		if _, ok := dimensionIndex[name]; ok {
			continue
		}
		suggestion, _ := FindClosestDimension(name, DefaultMaxDistance)
		errs = append(errs, &UnknownNameError{Kind: "dimension", Name: name, Suggestion: suggestion})
	}
	return errs
}
