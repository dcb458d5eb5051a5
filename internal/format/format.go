package format

import (
	"fmt"
	"strings"
)

// Format is an output encoding for tabular data
type Format int

const (
	Table Format = iota
	JSON
	CSV
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case CSV:
		return "csv"
	default:
		return "table"
	}
}

// ParseFormat parses "table", "json" or "csv"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return Table, nil
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	}
	return Table, fmt.Errorf("invalid output format %q (table, json, csv)", s)
}

// Options controls how values are rendered. It is passed explicitly to every
// formatting call.
type Options struct {
	Format Format
	// Raw disables number abbreviation
	Raw bool
	// Currency labels cpm columns; empty means USD
	Currency string
}

func (o Options) currency() string {
	if o.Currency == "" {
		return "USD"
	}
	return o.Currency
}
