package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeTable reads a table document in YAML or JSON. A top-level mapping with
// a "key" field is a single series; a top-level sequence is a multi-series
// table. Values and coordinates may be numbers or numeric strings.
func DecodeTable(r io.Reader) (Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return Table{}, ErrEmptyTable
		}
		return Table{}, fmt.Errorf("failed to parse table document: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.MappingNode:
		if mappingValue(root, "key") == nil {
			return Table{}, fmt.Errorf("line %d: a single series needs a key field", root.Line)
		}
		s, err := decodeSeries(root, 0)
		if err != nil {
			return Table{}, err
		}
		return Single(s), nil
	case yaml.SequenceNode:
		series := make([]Series, 0, len(root.Content))
		for i, n := range root.Content {
			s, err := decodeSeries(n, i)
			if err != nil {
				return Table{}, err
			}
			series = append(series, s)
		}
		return Multi(series...), nil
	default:
		return Table{}, fmt.Errorf("line %d: table document must be a mapping or a sequence", root.Line)
	}
}

func decodeSeries(n *yaml.Node, index int) (Series, error) {
	if n.Kind != yaml.MappingNode {
		return Series{}, fmt.Errorf("line %d: series must be a mapping", n.Line)
	}
	var s Series
	if k := mappingValue(n, "key"); k != nil {
		s.Key = k.Value
	}
	values := mappingValue(n, "values")
	if values == nil {
		return s, nil
	}
	if values.Kind != yaml.SequenceNode {
		return Series{}, fmt.Errorf("line %d: values of series %q must be a sequence", values.Line, s.Key)
	}
	for i, rn := range values.Content {
		rec, err := decodeRecord(rn, index, i)
		if err != nil {
			return Series{}, fmt.Errorf("series %q: %w", s.Key, err)
		}
		s.Values = append(s.Values, rec)
	}
	return s, nil
}

// decodeRecord reads one record. A record without a key or a value field is a
// shape error rather than a zero value.
func decodeRecord(n *yaml.Node, series, index int) (Record, error) {
	if n.Kind != yaml.MappingNode {
		return Record{}, fmt.Errorf("line %d: record must be a mapping", n.Line)
	}
	var (
		rec              Record
		hasKey, hasValue bool
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, val := n.Content[i].Value, n.Content[i+1]
		if name == "key" {
			rec.Key = val.Value
			hasKey = true
			continue
		}
		num, err := number(val)
		if err != nil {
			return Record{}, fmt.Errorf("line %d: field %q: %w", val.Line, name, err)
		}
		if name == "value" {
			rec.Value = num
			hasValue = true
			continue
		}
		if rec.Coords == nil {
			rec.Coords = make(map[string]float64)
		}
		rec.Coords[name] = num
	}
	if !hasKey {
		return Record{}, shapeErr(series, index, "missing key")
	}
	if !hasValue {
		return Record{}, shapeErr(series, index, "missing value")
	}
	return rec, nil
}

func number(n *yaml.Node) (float64, error) {
	if n.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("expected a number")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(n.Value), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", n.Value)
	}
	return v, nil
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// EncodeTable writes t as a YAML table document that DecodeTable reads back.
func EncodeTable(w io.Writer, t Table) error {
	var root *yaml.Node
	if t.kind == SingleSeries && len(t.series) == 1 {
		root = seriesNode(t.series[0])
	} else {
		root = &yaml.Node{Kind: yaml.SequenceNode}
		for _, s := range t.series {
			root.Content = append(root.Content, seriesNode(s))
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	return enc.Close()
}

func seriesNode(s Series) *yaml.Node {
	values := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range s.Values {
		values.Content = append(values.Content, recordNode(r))
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		strNode("key"), strNode(s.Key),
		strNode("values"), values,
	}}
}

func recordNode(r Record) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
	n.Content = append(n.Content, strNode("key"), strNode(r.Key), strNode("value"), floatNode(r.Value))
	for _, f := range r.Fields()[2:] {
		n.Content = append(n.Content, strNode(f), floatNode(r.Coords[f]))
	}
	return n
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func floatNode(v float64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(v, 'f', -1, 64)}
}

// MarshalJSON encodes a record with its fields in Fields order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		var v interface{}
		switch f {
		case "key":
			v = r.Key
		case "value":
			v = r.Value
		default:
			v = r.Coords[f]
		}
		kb, _ := json.Marshal(f)
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type seriesJSON struct {
	Key    string   `json:"key"`
	Values []Record `json:"values"`
}

// EncodeTableJSON writes t as an indented JSON table document.
func EncodeTableJSON(w io.Writer, t Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	var v interface{}
	if t.kind == SingleSeries && len(t.series) == 1 {
		v = seriesJSON(t.series[0])
	} else {
		out := make([]seriesJSON, len(t.series))
		for i, s := range t.series {
			out[i] = seriesJSON(s)
		}
		v = out
	}
	return enc.Encode(v)
}
