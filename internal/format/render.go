package format

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/alanpramil7/ytstudio/internal/yt"
	"github.com/goccy/go-json"
)

// Render writes report to w in the format selected by opts
func Render(w io.Writer, report *yt.Report, opts Options) error {
	switch opts.Format {
	case JSON:
		return renderJSON(w, report)
	case CSV:
		return renderCSV(w, report)
	default:
		return renderTable(w, report, opts)
	}
}

// record is one report row that marshals with keys in column order
type record struct {
	keys   []string
	values []any
}

func (r record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		var value any
		if i < len(r.values) {
			value = r.values[i]
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Records converts the report to ordered records for JSON encoding
func Records(report *yt.Report) []json.Marshaler {
	headers := report.Headers()
	out := make([]json.Marshaler, len(report.Rows))
	for i, row := range report.Rows {
		out[i] = record{keys: headers, values: row}
	}
	return out
}

// WriteJSON writes v as indented JSON followed by a newline
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func renderJSON(w io.Writer, report *yt.Report) error {
	compact, err := json.Marshal(Records(report))
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	out.WriteByte('\n')
	_, err = w.Write(out.Bytes())
	return err
}

// WriteCSV writes a header line followed by rows
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	return nil
}

func renderCSV(w io.Writer, report *yt.Report) error {
	rows := make([][]string, len(report.Rows))
	for i, row := range report.Rows {
		rows[i] = make([]string, len(row))
		for j, value := range row {
			rows[i][j] = rawValue(value)
		}
	}
	return WriteCSV(w, report.Headers(), rows)
}

func renderTable(w io.Writer, report *yt.Report, opts Options) error {
	if len(report.Rows) == 0 {
		_, err := fmt.Fprintln(w, MutedStyle.Render("No data for this period."))
		return err
	}

	headers := report.Headers()
	rows := make([][]string, len(report.Rows))
	for i, row := range report.Rows {
		rows[i] = make([]string, len(headers))
		for j := range headers {
			if j < len(row) {
				rows[i][j] = Cell(headers[j], row[j], opts)
			}
		}
	}

	_, err := fmt.Fprintln(w, Grid(headers, rows, numericColumns(report)...))
	return err
}

// numericColumns finds metric columns, falling back to the values of the
// first row when the API gave no column type
func numericColumns(report *yt.Report) []int {
	var cols []int
	for i, c := range report.Columns {
		switch {
		case c.ColumnType == "METRIC":
			cols = append(cols, i)
		case c.ColumnType == "" && len(report.Rows) > 0 && i < len(report.Rows[0]):
			if _, ok := report.Rows[0][i].(float64); ok {
				cols = append(cols, i)
			}
		}
	}
	return cols
}

func rawValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
