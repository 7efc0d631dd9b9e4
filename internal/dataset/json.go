package dataset

import (
	"bytes"
	"encoding/json"

	"github.com/elliotchance/orderedmap/v2"
)

type summaryJSON struct {
	DataType          string                `json:"dataType"`
	RowKey            string                `json:"rowKey,omitempty"`
	RowTotal          *float64              `json:"rowTotal,omitempty"`
	RowKeys           []string              `json:"rowKeys,omitempty"`
	RowTotals         json.RawMessage       `json:"rowTotals,omitempty"`
	RowTotalsMax      *float64              `json:"rowTotalsMax,omitempty"`
	RowValuesKeys     []string              `json:"rowValuesKeys"`
	ColumnKeys        []string              `json:"columnKeys"`
	ColumnTotals      json.RawMessage       `json:"columnTotals,omitempty"`
	ColumnTotalsMax   *float64              `json:"columnTotalsMax,omitempty"`
	ValueMin          float64               `json:"valueMin"`
	ValueMax          float64               `json:"valueMax"`
	ValueExtent       [2]float64            `json:"valueExtent"`
	CoordinatesMin    map[string]float64    `json:"coordinatesMin"`
	CoordinatesMax    map[string]float64    `json:"coordinatesMax"`
	CoordinatesExtent map[string][2]float64 `json:"coordinatesExtent"`
	MaxDecimalPlace   int                   `json:"maxDecimalPlace"`
	Thresholds        []float64             `json:"thresholds"`
}

// MarshalJSON encodes the summary with camelCase keys. Row and column totals
// keep their key order.
func (s *Summary) MarshalJSON() ([]byte, error) {
	out := summaryJSON{
		DataType:          s.DataType.String(),
		RowKey:            s.RowKey,
		RowKeys:           s.RowKeys,
		RowValuesKeys:     s.RowValuesKeys,
		ColumnKeys:        s.ColumnKeys,
		ValueMin:          s.ValueMin,
		ValueMax:          s.ValueMax,
		ValueExtent:       s.ValueExtent,
		CoordinatesMin:    s.CoordinatesMin,
		CoordinatesMax:    s.CoordinatesMax,
		CoordinatesExtent: s.CoordinatesExtent,
		MaxDecimalPlace:   s.MaxDecimalPlace,
		Thresholds:        s.Thresholds,
	}

	if s.DataType == SingleSeries {
		total := s.RowTotal
		out.RowTotal = &total
	} else {
		var err error
		if out.RowTotals, err = orderedJSON(s.RowTotals); err != nil {
			return nil, err
		}
		if out.ColumnTotals, err = orderedJSON(s.ColumnTotals); err != nil {
			return nil, err
		}
		rowMax, colMax := s.RowTotalsMax, s.ColumnTotalsMax
		out.RowTotalsMax = &rowMax
		out.ColumnTotalsMax = &colMax
	}

	return json.Marshal(out)
}

func orderedJSON(m *orderedmap.OrderedMap[string, float64]) (json.RawMessage, error) {
	if m == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for el := m.Front(); el != nil; el = el.Next() {
		if el != m.Front() {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(el.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(el.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
