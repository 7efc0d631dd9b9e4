package scene

import (
	"bytes"
	"encoding/xml"
	"io"
)

// Encode writes n and its descendants as XML. A non-empty indent pretty-prints.
func Encode(w io.Writer, n *Node, indent string) error {
	enc := xml.NewEncoder(w)
	if indent != "" {
		enc.Indent("", indent)
	}
	if err := encodeNode(enc, n); err != nil {
		return err
	}
	return enc.Flush()
}

func encodeNode(enc *xml.Encoder, n *Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := encodeNode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// String returns the compact XML form of n.
func (n *Node) String() string {
	var buf bytes.Buffer
	if err := Encode(&buf, n, ""); err != nil {
		return ""
	}
	return buf.String()
}

// MarshalXML lets a Node be embedded in structs encoded with encoding/xml.
func (n *Node) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	return encodeNode(enc, n)
}
