package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanpramil7/ytstudio/internal/yt"
)

func sampleReport() *yt.Report {
	return &yt.Report{
		Columns: []yt.Column{
			{Name: "day", ColumnType: "DIMENSION"},
			{Name: "views", ColumnType: "METRIC"},
			{Name: "likes", ColumnType: "METRIC"},
		},
		Rows: [][]any{{"2026-01-01", 1500.0, 45.0}},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Table, "table": Table, "JSON": JSON, "csv": CSV} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		raw  bool
		want string
	}{
		{999, false, "999"},
		{1500, false, "1.5K"},
		{2500000, false, "2.5M"},
		{2500000, true, "2500000"},
		{0, false, "0"},
		{4.567, false, "4.57"},
		{999_949, false, "999.9K"},
		{999_950, false, "1.0M"},
		{-999_999, false, "-1.0M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.in, tt.raw), "%v raw=%v", tt.in, tt.raw)
	}
	assert.Equal(t, "12.3K", Count(12345, false))
}

func TestKeyValue(t *testing.T) {
	out := KeyValue([][2]string{{"views", "1.2M"}, {"likes", "42.0K"}, {"scope", "monetary"}})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for i, pair := range [][2]string{{"views", "1.2M"}, {"likes", "42.0K"}, {"scope", "monetary"}} {
		assert.Contains(t, lines[i], pair[0])
		assert.Contains(t, lines[i], pair[1])
	}
	assert.Equal(t, strings.Index(lines[0], "1.2M"), strings.Index(lines[2], "monetary"))

	assert.Empty(t, KeyValue(nil))
}

func TestCell_Units(t *testing.T) {
	opts := Options{Currency: "EUR"}
	assert.Equal(t, "45.30%", Cell("averageViewPercentage", 45.3, opts))
	assert.Equal(t, "5.10%", Cell("impressionsClickThroughRate", 5.1, opts))
	assert.Equal(t, "3.20 EUR", Cell("playbackBasedCpm", 3.2, opts))
	assert.Equal(t, "3.20 USD", Cell("cpm", 3.2, Options{}))
	assert.Equal(t, "1.5K", Cell("views", 1500.0, opts))
	assert.Equal(t, "1500", Cell("views", 1500.0, Options{Raw: true}))
	assert.Equal(t, "US", Cell("country", "US", opts))
	assert.Equal(t, "", Cell("views", nil, opts))
}

func TestRender_JSONKeepsColumnOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: JSON}))

	var compact bytes.Buffer
	require.NoError(t, json.Compact(&compact, buf.Bytes()))
	assert.Equal(t, `[{"day":"2026-01-01","views":1500,"likes":45}]`, compact.String())
}

func TestRender_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, &yt.Report{Columns: []yt.Column{{Name: "views"}}, Rows: [][]any{}}, Options{Format: JSON}))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestRender_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: CSV}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "day,views,likes", lines[0])
	assert.Equal(t, "2026-01-01,1500,45", lines[1])
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: Table}))
	out := buf.String()
	assert.Contains(t, out, "day")
	assert.Contains(t, out, "2026-01-01")
	assert.Contains(t, out, "1.5K")
	assert.Contains(t, out, "45")
}

func TestRender_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, &yt.Report{Columns: []yt.Column{{Name: "views"}}}, Options{}))
	assert.Contains(t, buf.String(), "No data")
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "1:19", Duration("PT1M19S"))
	assert.Equal(t, "0:45", Duration("PT45S"))
	assert.Equal(t, "1:02:03", Duration("PT1H2M3S"))
	assert.Equal(t, "25:00:00", Duration("P1DT1H"))
	assert.Equal(t, "garbage", Duration("garbage"))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "recently", TimeAgo(now.Add(-30*time.Minute), now))
	assert.Equal(t, "5h ago", TimeAgo(now.Add(-5*time.Hour), now))
	assert.Equal(t, "3d ago", TimeAgo(now.AddDate(0, 0, -3), now))
	assert.Equal(t, "2mo ago", TimeAgo(now.AddDate(0, 0, -65), now))
	assert.Equal(t, "1y ago", TimeAgo(now.AddDate(0, 0, -400), now))
	assert.Equal(t, "", TimeAgo(time.Time{}, now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "héllo...", Truncate("héllo world", 5))
}

func TestGrid_RightAlignsNumericColumns(t *testing.T) {
	out := Grid([]string{"name", "views"}, [][]string{{"a", "1"}, {"b", "1000"}}, 1)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasSuffix(strings.TrimRight(lines[1], " "), "1"))
	assert.Contains(t, out, "1000")
}
