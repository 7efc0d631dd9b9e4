// Package dataset holds the tabular data model used by the charts and the
// summarizer that derives keys, totals, extents and thresholds from it.
package dataset

import (
	"math"
	"sort"
)

// Kind discriminates single-series from multi-series tables.
type Kind int

const (
	SingleSeries Kind = iota + 1
	MultiSeries
)

func (k Kind) String() string {
	switch k {
	case SingleSeries:
		return "single"
	case MultiSeries:
		return "multi"
	default:
		return "unknown"
	}
}

// CoordinateKeys are the optional per-record coordinate fields, in display order.
var CoordinateKeys = []string{"x", "y", "z"}

// Record is one cell of a table.
type Record struct {
	Key    string
	Value  float64
	Coords map[string]float64
}

// Fields returns the record's field names: key, value, the x/y/z coordinates
// present, then any other coordinates sorted by name.
func (r Record) Fields() []string {
	fields := []string{"key", "value"}
	seen := make(map[string]bool, len(CoordinateKeys))
	for _, k := range CoordinateKeys {
		if _, ok := r.Coords[k]; ok {
			fields = append(fields, k)
		}
		seen[k] = true
	}
	var extra []string
	for k := range r.Coords {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(fields, extra...)
}

func (r Record) clone() Record {
	out := Record{Key: r.Key, Value: r.Value}
	if r.Coords != nil {
		out.Coords = make(map[string]float64, len(r.Coords))
		for k, v := range r.Coords {
			out.Coords[k] = v
		}
	}
	return out
}

// Series is a named ordered list of records.
type Series struct {
	Key    string
	Values []Record
}

// Table is either one series or an ordered list of series. The kind is fixed
// at construction.
type Table struct {
	kind   Kind
	series []Series
}

// Single creates a single-series table.
func Single(s Series) Table {
	return Table{kind: SingleSeries, series: []Series{s}}
}

// Multi creates a multi-series table.
func Multi(series ...Series) Table {
	return Table{kind: MultiSeries, series: series}
}

// Kind returns the table kind.
func (t Table) Kind() Kind {
	return t.kind
}

// Series returns the table's series. A single-series table returns one element.
func (t Table) Series() []Series {
	return t.series
}

// Len returns the total number of records.
func (t Table) Len() int {
	n := 0
	for _, s := range t.series {
		n += len(s.Values)
	}
	return n
}

// IsRectangular reports whether every series has the same number of records.
func (t Table) IsRectangular() bool {
	if len(t.series) == 0 {
		return false
	}
	n := len(t.series[0].Values)
	for _, s := range t.series[1:] {
		if len(s.Values) != n {
			return false
		}
	}
	return true
}

// validate checks that the table has records, that every record carries the
// same field set as the first one, and that every number is finite.
func (t Table) validate() error {
	if t.kind != SingleSeries && t.kind != MultiSeries {
		return shapeErr(-1, -1, "table kind is not set")
	}
	if len(t.series) == 0 || t.Len() == 0 {
		return ErrEmptyTable
	}

	var want []string
	for si, s := range t.series {
		if len(s.Values) == 0 {
			return shapeErr(si, -1, "series %q has no records", s.Key)
		}
		for ri, r := range s.Values {
			if !finite(r.Value) {
				return shapeErr(si, ri, "value is not a finite number")
			}
			for k, v := range r.Coords {
				if !finite(v) {
					return shapeErr(si, ri, "coordinate %q is not a finite number", k)
				}
			}
			fields := r.Fields()
			if want == nil {
				want = fields
				continue
			}
			if !sameFields(want, fields) {
				return shapeErr(si, ri, "fields %v differ from %v", fields, want)
			}
		}
	}
	return nil
}

func sameFields(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
