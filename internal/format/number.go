package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Number abbreviates n as 1.5K or 2.5M unless raw is set
func Number(n float64, raw bool) string {
	abs := math.Abs(n)
	switch {
	case raw || abs < 1_000:
		return plain(n)
	case abs >= 999_950: // rounds up to 1000.0K otherwise
		return fmt.Sprintf("%.1fM", n/1_000_000)
	default:
		return fmt.Sprintf("%.1fK", n/1_000)
	}
}

// Count is Number for unsigned API counters
func Count(n uint64, raw bool) string {
	return Number(float64(n), raw)
}

// plain prints whole numbers without a fraction and others to two places
func plain(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(math.Round(n*100)/100, 'f', -1, 64)
}

// Cell renders one report value using the column name to pick a unit
func Cell(column string, value any, opts Options) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		name := strings.ToLower(column)
		switch {
		case strings.Contains(name, "cpm"):
			return fmt.Sprintf("%.2f %s", v, opts.currency())
		case strings.Contains(name, "rate"), strings.Contains(name, "percentage"), strings.Contains(name, "ctr"):
			return fmt.Sprintf("%.2f%%", v)
		}
		return Number(v, opts.Raw)
	case int:
		return Number(float64(v), opts.Raw)
	case int64:
		return Number(float64(v), opts.Raw)
	default:
		return fmt.Sprint(v)
	}
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// Duration turns an ISO-8601 duration such as PT1M19S into 1:19
func Duration(iso string) string {
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil {
		return iso
	}
	part := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	hours := part(m[1])*24 + part(m[2])
	minutes, seconds := part(m[3]), part(m[4])
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// TimeAgo describes t relative to now, e.g. 3d ago
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	delta := now.Sub(t)
	days := int(delta.Hours() / 24)
	switch {
	case days > 365:
		return fmt.Sprintf("%dy ago", days/365)
	case days > 30:
		return fmt.Sprintf("%dmo ago", days/30)
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	case delta > time.Hour:
		return fmt.Sprintf("%dh ago", int(delta.Hours()))
	}
	return "recently"
}

// Truncate shortens s to length runes, adding an ellipsis when cut
func Truncate(s string, length int) string {
	if utf8.RuneCountInString(s) <= length {
		return s
	}
	return string([]rune(s)[:length]) + "..."
}
