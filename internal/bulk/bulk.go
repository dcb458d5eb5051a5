// Package bulk plans and applies search-and-replace edits across a
// channel's uploads.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alanpramil7/ytstudio/internal/yt"
	"github.com/alanpramil7/ytstudio/internal/yt/services"
)

const scanPageSize = 50

// Field is the snippet field being edited
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
)

func (f Field) String() string {
	if f == FieldDescription {
		return "description"
	}
	return "title"
}

// ParseField parses "title" or "description"
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return FieldTitle, nil
	case "description":
		return FieldDescription, nil
	}
	return 0, fmt.Errorf("invalid field %q (title, description)", s)
}

func (f Field) value(v yt.Video) string {
	if f == FieldDescription {
		return v.Description
	}
	return v.Title
}

func (f Field) update(value string) yt.VideoUpdate {
	if f == FieldDescription {
		return yt.VideoUpdate{Description: &value}
	}
	return yt.VideoUpdate{Title: &value}
}

// Replacer rewrites text by literal or regular-expression replacement.
// Regex replacements use Go's $1 group syntax.
type Replacer struct {
	search  string
	replace string
	re      *regexp.Regexp
}

// NewReplacer compiles search when regex is set
func NewReplacer(search, replace string, regex bool) (*Replacer, error) {
	if search == "" {
		return nil, errors.New("search text must not be empty")
	}
	r := &Replacer{search: search, replace: replace}
	if regex {
		re, err := regexp.Compile(search)
		if err != nil {
			return nil, fmt.Errorf("invalid regex: %w", err)
		}
		r.re = re
	}
	return r, nil
}

// Replace returns s with every match replaced
func (r *Replacer) Replace(s string) string {
	if r.re != nil {
		return r.re.ReplaceAllString(s, r.replace)
	}
	return strings.ReplaceAll(s, r.search, r.replace)
}

// Change is one pending edit
type Change struct {
	VideoID string `json:"id"`
	Field   Field  `json:"-"`
	Old     string `json:"old"`
	New     string `json:"new"`
}

// Plan scans uploads in order and collects up to limit changes. Nothing is
// written.
func Plan(ctx context.Context, videos services.VideoService, field Field, r *Replacer, limit int) ([]Change, error) {
	changes := []Change{}
	pageToken := ""

	for len(changes) < limit {
		page, err := videos.List(ctx, scanPageSize, pageToken)
		if err != nil {
			return nil, err
		}
		for _, v := range page.Videos {
			if len(changes) >= limit {
				break
			}
			old := field.value(v)
			if updated := r.Replace(old); updated != old {
				changes = append(changes, Change{VideoID: v.ID, Field: field, Old: old, New: updated})
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" || len(page.Videos) == 0 {
			break
		}
	}
	return changes, nil
}

// Result tallies an Apply run
type Result struct {
	Applied int
	Failed  int
	Skipped int
}

// PartialError stops an Apply run when the API quota runs out
type PartialError struct {
	Result
	Err error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("partial progress: %d updated, %d failed: %v", e.Applied, e.Failed, e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}

// Progress is told the outcome of every change as it is applied
type Progress func(change Change, err error)

// Apply writes changes one at a time. Quota exhaustion or cancellation halts
// the run with a *PartialError; other failures are counted and the run goes
// on. Videos that vanished since planning are skipped.
func Apply(ctx context.Context, videos services.VideoService, changes []Change, progress Progress) (Result, error) {
	var result Result
	for _, c := range changes {
		if err := ctx.Err(); err != nil {
			return result, &PartialError{Result: result, Err: err}
		}

		_, err := videos.Update(ctx, c.VideoID, c.Field.update(c.New))
		switch {
		case err == nil:
			result.Applied++
		case errors.Is(err, yt.ErrQuotaExceeded):
			return result, &PartialError{Result: result, Err: err}
		case errors.Is(err, yt.ErrNotFound):
			result.Skipped++
		default:
			result.Failed++
		}
		if progress != nil {
			progress(c, err)
		}
	}
	return result, nil
}
