package analytics

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alanpramil7/ytstudio/internal/registry"
	"github.com/alanpramil7/ytstudio/internal/yt"
	"github.com/hashicorp/go-multierror"
)

const (
	// ChannelIDs scopes every report to the authenticated channel
	ChannelIDs = "channel==MINE"
	// DateLayout is the date format the Analytics API expects
	DateLayout = "2006-01-02"
	// DefaultDays is the relative window used when no dates are given
	DefaultDays = 28
)

// Input is the raw, user-supplied shape of an analytics query
type Input struct {
	Metrics    string
	Dimensions string
	Filters    []string
	Start      string
	End        string
	Days       int
	Sort       string
	Limit      int
	Currency   string
	Now        time.Time
}

// Filter is one dimension==value restriction
type Filter struct {
	Key   string
	Value string
}

func (f Filter) String() string {
	return f.Key + "==" + f.Value
}

// Query is a validated request ready to send
type Query struct {
	Request yt.ReportRequest
	// Monetary is set when a requested metric needs the monetary scope
	Monetary bool
}

// ParseList splits a comma-separated list, trimming blanks and dropping
// empty tokens
func ParseList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseFilters parses key==value tokens. A token without "==" fails at once.
func ParseFilters(raw []string) ([]Filter, error) {
	filters := make([]Filter, 0, len(raw))
	for _, token := range raw {
		key, value, ok := strings.Cut(token, "==")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("invalid filter %q: expected dimension==value", token)
		}
		filters = append(filters, Filter{Key: key, Value: value})
	}
	return filters, nil
}

// Build validates in and turns it into a report request. Every problem found
// is reported together; nothing here touches the network.
func Build(in Input) (*Query, error) {
	filters, err := ParseFilters(in.Filters)
	if err != nil {
		return nil, err
	}

	metrics := ParseList(in.Metrics)
	dimensions := ParseList(in.Dimensions)
	sortFields := ParseList(in.Sort)

	var result *multierror.Error
	if len(metrics) == 0 {
		result = multierror.Append(result, errors.New("at least one metric is required"))
	}
	result = multierror.Append(result, registry.ValidateMetrics(metrics)...)
	result = multierror.Append(result, registry.ValidateDimensions(dimensions)...)

	for _, name := range dimensions {
		if d, ok := registry.LookupDimension(name); ok && d.FilterOnly {
			result = multierror.Append(result, fmt.Errorf("dimension '%s' can only be used in filters", name))
		}
	}

	keys := make([]string, len(filters))
	for i, f := range filters {
		keys[i] = f.Key
	}
	for _, err := range registry.ValidateDimensions(keys) {
		result = multierror.Append(result, fmt.Errorf("filter: %w", err))
	}

	for _, field := range sortFields {
		name := strings.TrimPrefix(field, "-")
		if !slices.Contains(metrics, name) && !slices.Contains(dimensions, name) {
			result = multierror.Append(result, fmt.Errorf("sort field '%s' must be one of the requested metrics or dimensions", name))
		}
	}

	if in.Limit < 0 {
		result = multierror.Append(result, fmt.Errorf("limit must be positive, got %d", in.Limit))
	}
	if slices.Contains(dimensions, "video") && (len(sortFields) == 0 || in.Limit <= 0) {
		result = multierror.Append(result, errors.New("the 'video' dimension requires --sort and --limit (e.g. --sort -views --limit 10)"))
	}

	start, end, err := dateRange(in)
	if err != nil {
		result = multierror.Append(result, err)
	}

	currency, err := parseCurrency(in.Currency)
	if err != nil {
		result = multierror.Append(result, err)
	}

	if result != nil {
		result.ErrorFormat = formatProblems
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	filterTokens := make([]string, len(filters))
	for i, f := range filters {
		filterTokens[i] = f.String()
	}

	query := &Query{
		Request: yt.ReportRequest{
			IDs:        ChannelIDs,
			StartDate:  start,
			EndDate:    end,
			Metrics:    metrics,
			Dimensions: dimensions,
			Filters:    strings.Join(filterTokens, ";"),
			Sort:       strings.Join(sortFields, ","),
			MaxResults: int64(in.Limit),
			Currency:   currency,
		},
	}
	for _, name := range metrics {
		if m, ok := registry.LookupMetric(name); ok && m.Monetary {
			query.Monetary = true
			break
		}
	}
	return query, nil
}

// Window returns start and end dates for the last days days ending at now
func Window(now time.Time, days int) (string, string) {
	if days <= 0 {
		days = DefaultDays
	}
	return now.AddDate(0, 0, -days).Format(DateLayout), now.Format(DateLayout)
}

func dateRange(in Input) (string, string, error) {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	days := in.Days
	if days <= 0 {
		days = DefaultDays
	}

	end := now
	if in.End != "" {
		parsed, err := time.Parse(DateLayout, in.End)
		if err != nil {
			return "", "", fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", in.End)
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -days)
	if in.Start != "" {
		parsed, err := time.Parse(DateLayout, in.Start)
		if err != nil {
			return "", "", fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", in.Start)
		}
		start = parsed
	}

	s, e := start.Format(DateLayout), end.Format(DateLayout)
	if s > e {
		return "", "", fmt.Errorf("start date %s is after end date %s", s, e)
	}
	return s, e, nil
}

func parseCurrency(code string) (string, error) {
	if code == "" {
		return "", nil
	}
	upper := strings.ToUpper(strings.TrimSpace(code))
	if len(upper) != 3 {
		return "", fmt.Errorf("invalid currency %q: expected a three-letter ISO 4217 code", code)
	}
	for _, r := range upper {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("invalid currency %q: expected a three-letter ISO 4217 code", code)
		}
	}
	return upper, nil
}

func formatProblems(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = "  - " + err.Error()
	}
	return fmt.Sprintf("%d problems with the query:\n%s", len(errs), strings.Join(lines, "\n"))
}
