package dataset

// Rotate swaps the row and column roles of a rectangular multi-series table.
// Row i of the result is keyed by the i-th record key of the first series and
// holds, for every source series, a copy of its i-th record re-keyed with that
// series' key. Rotating twice gives back a table of the original shape.
func Rotate(t Table) (Table, error) {
	if t.kind != MultiSeries {
		return Table{}, shapeErr(-1, -1, "only multi-series tables can be rotated")
	}
	if len(t.series) == 0 || t.Len() == 0 {
		return Table{}, ErrEmptyTable
	}
	if !t.IsRectangular() {
		for i, s := range t.series {
			if len(s.Values) != len(t.series[0].Values) {
				return Table{}, shapeErr(i, -1, "has %d records, expected %d", len(s.Values), len(t.series[0].Values))
			}
		}
	}

	first := t.series[0].Values
	rotated := make([]Series, len(first))
	for i, rec := range first {
		values := make([]Record, len(t.series))
		for j, col := range t.series {
			r := col.Values[i].clone()
			r.Key = col.Key
			values[j] = r
		}
		rotated[i] = Series{Key: rec.Key, Values: values}
	}

	return Multi(rotated...), nil
}
