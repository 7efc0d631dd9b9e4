package dataset

import (
	"github.com/elliotchance/orderedmap/v2"
)

// Summary is a snapshot of the keys, totals, extents and thresholds of a table.
// Row fields that only apply to one kind are left at their zero value for the other.
type Summary struct {
	DataType Kind

	// Single series
	RowKey   string
	RowTotal float64

	// Multi series
	RowKeys      []string
	RowTotals    *orderedmap.OrderedMap[string, float64]
	RowTotalsMax float64

	RowValuesKeys []string

	ColumnKeys      []string
	ColumnTotals    *orderedmap.OrderedMap[string, float64]
	ColumnTotalsMax float64

	ValueMin    float64
	ValueMax    float64
	ValueExtent [2]float64

	CoordinatesMin    map[string]float64
	CoordinatesMax    map[string]float64
	CoordinatesExtent map[string][2]float64

	MaxDecimalPlace int
	Thresholds      []float64
}

type options struct {
	legacyOrder bool
}

// Option configures Summarize.
type Option func(*options)

// WithLegacyColumnOrder orders multi-series column keys by last appearance:
// each key sits where it last appears, and keys first seen in later series
// come before earlier ones.
func WithLegacyColumnOrder() Option {
	return func(o *options) {
		o.legacyOrder = true
	}
}

// Summarize computes the Summary of t. It returns ErrEmptyTable when the table
// has no records and a *ShapeError (matching ErrInvalidTableShape) when the
// records are not homogeneous or hold non-finite numbers.
func Summarize(t Table, opts ...Option) (*Summary, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	s := &Summary{
		DataType:      t.kind,
		RowValuesKeys: t.series[0].Values[0].Fields(),
	}

	if t.kind == SingleSeries {
		series := t.series[0]
		s.RowKey = series.Key
		s.ColumnKeys = make([]string, len(series.Values))
		for i, r := range series.Values {
			s.ColumnKeys[i] = r.Key
			s.RowTotal += r.Value
		}
	} else {
		s.RowKeys = make([]string, len(t.series))
		for i, series := range t.series {
			s.RowKeys[i] = series.Key
		}
		s.RowTotals = totals(t.series, func(series Series, _ Record) string { return series.Key })
		s.RowTotalsMax = maxValue(s.RowTotals)

		s.ColumnTotals = totals(t.series, func(_ Series, r Record) string { return r.Key })
		s.ColumnTotalsMax = maxValue(s.ColumnTotals)
		if o.legacyOrder {
			s.ColumnKeys = legacyKeys(t.series)
		} else {
			s.ColumnKeys = firstSeenKeys(t.series)
		}

		for _, series := range t.series {
			for _, r := range series.Values {
				if p := DecimalPlaces(r.Value); p > s.MaxDecimalPlace {
					s.MaxDecimalPlace = p
				}
			}
		}
	}

	s.extents(t.series)
	s.Thresholds = thresholds(s.ValueMin, s.ValueMax, s.MaxDecimalPlace)

	return s, nil
}

func (s *Summary) extents(series []Series) {
	s.CoordinatesMin = make(map[string]float64)
	s.CoordinatesMax = make(map[string]float64)
	first := true
	for _, ser := range series {
		for _, r := range ser.Values {
			if first || r.Value < s.ValueMin {
				s.ValueMin = r.Value
			}
			if first || r.Value > s.ValueMax {
				s.ValueMax = r.Value
			}
			first = false

			for _, k := range CoordinateKeys {
				v, ok := r.Coords[k]
				if !ok {
					continue
				}
				if cur, ok := s.CoordinatesMin[k]; !ok || v < cur {
					s.CoordinatesMin[k] = v
				}
				if cur, ok := s.CoordinatesMax[k]; !ok || v > cur {
					s.CoordinatesMax[k] = v
				}
			}
		}
	}

	s.ValueExtent = [2]float64{s.ValueMin, s.ValueMax}
	s.CoordinatesExtent = make(map[string][2]float64, len(s.CoordinatesMin))
	for k, lo := range s.CoordinatesMin {
		s.CoordinatesExtent[k] = [2]float64{lo, s.CoordinatesMax[k]}
	}
}

// RowTotalOf returns the total of a multi-series row, or false when absent.
func (s *Summary) RowTotalOf(key string) (float64, bool) {
	if s.RowTotals == nil {
		return 0, false
	}
	return s.RowTotals.Get(key)
}

// ColumnTotalOf returns the total of a column, or false when absent.
func (s *Summary) ColumnTotalOf(key string) (float64, bool) {
	if s.ColumnTotals == nil {
		return 0, false
	}
	return s.ColumnTotals.Get(key)
}
