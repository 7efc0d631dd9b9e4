package dataset

import (
	"github.com/elliotchance/orderedmap/v2"
)

// firstSeenKeys returns the record keys of every series in order of first
// appearance.
func firstSeenKeys(series []Series) []string {
	seen := orderedmap.NewOrderedMap[string, struct{}]()
	for _, s := range series {
		for _, r := range s.Values {
			if _, ok := seen.Get(r.Key); !ok {
				seen.Set(r.Key, struct{}{})
			}
		}
	}
	return seen.Keys()
}

// legacyKeys folds each series into the running key list with legacyUnion,
// so a key shared by several series ends up at its position in the latest one.
func legacyKeys(series []Series) []string {
	var keys []string
	for _, s := range series {
		tmp := make([]string, len(s.Values))
		for i, r := range s.Values {
			tmp[i] = r.Key
		}
		keys = legacyUnion(tmp, keys)
	}
	return keys
}

// legacyUnion concatenates a and b and keeps the last occurrence of each key.
func legacyUnion(a, b []string) []string {
	arr := make([]string, 0, len(a)+len(b))
	arr = append(arr, a...)
	arr = append(arr, b...)

	seen := make(map[string]bool, len(arr))
	out := make([]string, 0, len(arr))
	for i := len(arr) - 1; i >= 0; i-- {
		if seen[arr[i]] {
			continue
		}
		seen[arr[i]] = true
		out = append(out, arr[i])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// totals sums values per key, in key insertion order.
func totals(series []Series, keyOf func(Series, Record) string) *orderedmap.OrderedMap[string, float64] {
	m := orderedmap.NewOrderedMap[string, float64]()
	for _, s := range series {
		for _, r := range s.Values {
			k := keyOf(s, r)
			sum, _ := m.Get(k)
			m.Set(k, sum+r.Value)
		}
	}
	return m
}

func maxValue(m *orderedmap.OrderedMap[string, float64]) float64 {
	var out float64
	first := true
	for el := m.Front(); el != nil; el = el.Next() {
		if first || el.Value > out {
			out = el.Value
			first = false
		}
	}
	return out
}
