// Package source loads tabular readings for scatter plots from CSV, Parquet
// and MySQL into column-oriented frames.
package source

import (
	"fmt"
	"math"
	"strconv"

	"github.com/aclements/go-moremath/stats"

	"github.com/dbsmedya/gox3d/internal/dataset"
)

// Frame is column-oriented float64 data. Missing cells are NaN.
type Frame struct {
	columns []string
	data    map[string][]float64
	rows    int
}

// NewFrame builds a frame from equally long columns.
func NewFrame(columns []string, data map[string][]float64) (*Frame, error) {
	f := &Frame{
		columns: append([]string(nil), columns...),
		data:    make(map[string][]float64, len(columns)),
	}
	for i, c := range columns {
		vals := data[c]
		if i == 0 {
			f.rows = len(vals)
		} else if len(vals) != f.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", c, len(vals), f.rows)
		}
		f.data[c] = vals
	}
	return f, nil
}

// Columns returns the frame's column names in load order.
func (f *Frame) Columns() []string {
	return f.columns
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.rows
}

// Column returns the values of a column.
func (f *Frame) Column(name string) ([]float64, bool) {
	v, ok := f.data[name]
	return v, ok
}

// Value returns one cell, NaN when the column or row does not exist.
func (f *Frame) Value(row int, column string) float64 {
	v, ok := f.data[column]
	if !ok || row < 0 || row >= len(v) {
		return math.NaN()
	}
	return v[row]
}

// Bounds returns the min and max of the non-missing values of a column.
func (f *Frame) Bounds(column string) (lo, hi float64, ok bool) {
	vals, exists := f.data[column]
	if !exists {
		return 0, 0, false
	}
	present := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return 0, 0, false
	}
	lo, hi = stats.Bounds(present)
	return lo, hi, true
}

// Table converts three columns into a single-series table. Each complete row
// becomes a record keyed by its row index, valued by y, with x/y/z coordinates.
func (f *Frame) Table(x, y, z string) (dataset.Table, error) {
	for _, c := range []string{x, y, z} {
		if _, ok := f.data[c]; !ok {
			return dataset.Table{}, fmt.Errorf("%w: %s", ErrUnknownColumn, c)
		}
	}

	records := make([]dataset.Record, 0, f.rows)
	for i := 0; i < f.rows; i++ {
		xv, yv, zv := f.data[x][i], f.data[y][i], f.data[z][i]
		if math.IsNaN(xv) || math.IsNaN(yv) || math.IsNaN(zv) {
			continue
		}
		records = append(records, dataset.Record{
			Key:    strconv.Itoa(i),
			Value:  yv,
			Coords: map[string]float64{"x": xv, "y": yv, "z": zv},
		})
	}
	return dataset.Single(dataset.Series{Key: y, Values: records}), nil
}

func uniqueColumns(columns []string) []string {
	seen := make(map[string]bool, len(columns))
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
