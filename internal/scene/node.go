// Package scene is a small X3D scene graph: elements with ordered attributes,
// keyed reconciliation of child sets, and XML encoding.
package scene

import (
	"strconv"
	"strings"
)

// Attribute names with special meaning.
const (
	AttrClass = "class"
	AttrID    = "id"
	AttrKey   = "data-key"
)

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the scene graph.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
	parent   *Node
}

// New creates a node. attrs are name/value pairs; a trailing name without a
// value is ignored.
func New(tag string, attrs ...string) *Node {
	n := &Node{Tag: tag}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.SetAttr(attrs[i], attrs[i+1])
	}
	return n
}

// Parent returns the node's parent, or nil for a detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Attr returns the value of an attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value or def when it is absent.
func (n *Node) AttrOr(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// SetAttr sets an attribute, keeping its position when it already exists.
func (n *Node) SetAttr(name, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// SetFloat sets a numeric attribute.
func (n *Node) SetFloat(name string, v float64) *Node {
	return n.SetAttr(name, Num(v))
}

// RemoveAttr deletes an attribute if present.
func (n *Node) RemoveAttr(name string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			break
		}
	}
	return n
}

// Classes returns the node's class list.
func (n *Node) Classes() []string {
	v, _ := n.Attr(AttrClass)
	return strings.Fields(v)
}

// HasClass reports whether the node carries class c.
func (n *Node) HasClass(c string) bool {
	for _, have := range n.Classes() {
		if have == c {
			return true
		}
	}
	return false
}

// AddClass adds class c unless already present.
func (n *Node) AddClass(c string) *Node {
	if c == "" || n.HasClass(c) {
		return n
	}
	return n.SetAttr(AttrClass, strings.TrimSpace(strings.Join(append(n.Classes(), c), " ")))
}

// Append adds child as the last child of n and returns the child.
func (n *Node) Append(child *Node) *Node {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.Children = append(n.Children, child)
	return child
}

// Clone returns a detached deep copy of n.
func (n *Node) Clone() *Node {
	c := &Node{Tag: n.Tag, Attrs: append([]Attr(nil), n.Attrs...)}
	for _, child := range n.Children {
		cc := child.Clone()
		cc.parent = c
		c.Children = append(c.Children, cc)
	}
	return c
}

// AppendNew creates a child element and returns it.
func (n *Node) AppendNew(tag string, attrs ...string) *Node {
	return n.Append(New(tag, attrs...))
}

// Remove detaches child from n. It is a no-op when child belongs elsewhere.
func (n *Node) Remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Clear removes all children.
func (n *Node) Clear() {
	for _, c := range n.Children {
		c.parent = nil
	}
	n.Children = nil
}

// Walk visits n and its descendants depth first until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node, in depth-first order, matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node, in depth-first order, matching pred.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// ByID returns the descendant with the given id.
func (n *Node) ByID(id string) *Node {
	return n.Find(func(c *Node) bool {
		v, ok := c.Attr(AttrID)
		return ok && v == id
	})
}

// ByClass returns every descendant carrying class c.
func (n *Node) ByClass(c string) []*Node {
	return n.FindAll(func(node *Node) bool { return node.HasClass(c) })
}

// Child returns the first direct child with the given tag.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildWithClass returns the first direct child carrying class c.
func (n *Node) ChildWithClass(c string) *Node {
	for _, child := range n.Children {
		if child.HasClass(c) {
			return child
		}
	}
	return nil
}

// Ensure returns the first direct child with tag and class c, creating it
// when missing.
func (n *Node) Ensure(tag, class string) *Node {
	for _, child := range n.Children {
		if child.Tag == tag && (class == "" || child.HasClass(class)) {
			return child
		}
	}
	child := New(tag)
	child.AddClass(class)
	return n.Append(child)
}

// Num formats a number the way X3D attributes are written: shortest form,
// no exponent.
func Num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Vec joins numbers with spaces, e.g. an SFVec3f or SFRotation value.
func Vec(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = Num(v)
	}
	return strings.Join(parts, " ")
}

// Join2D flattens rows of vectors into one space separated list, as used by
// MFVec3f and MFInt32 fields.
func Join2D(rows [][]float64) string {
	var parts []string
	for _, r := range rows {
		parts = append(parts, Vec(r...))
	}
	return strings.Join(parts, " ")
}
