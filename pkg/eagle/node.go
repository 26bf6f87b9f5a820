// Package eagle is a minimal, order-preserving model of an Eagle board file.
//
// A board is kept as a generic XML tree so that everything the layout passes
// do not touch is written back unchanged. Typed records (Wire, Circle,
// Polygon, Element, ContactRef) convert to and from the attribute bag at the
// boundary; layout code never formats coordinates itself.
package eagle

import "strings"

// NodeKind identifies what a Node holds.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
	CommentNode
	ProcInstNode
	DirectiveNode
)

// Attr is a single XML attribute. Attributes keep their document order.
type Attr struct {
	Name  string
	Value string
}

// Node is one node of the document tree.
type Node struct {
	Kind     NodeKind
	Tag      string // element tag, or processing-instruction target
	Attrs    []Attr
	Children []*Node
	Data     string // text, comment, directive or processing-instruction body
}

// NewElement creates an element node with the given attributes.
func NewElement(tag string, attrs ...Attr) *Node {
	return &Node{Kind: ElementNode, Tag: tag, Attrs: attrs}
}

// Get returns the value of an attribute.
func (n *Node) Get(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attr returns the value of an attribute, or "" if it is absent.
func (n *Node) Attr(name string) string {
	v, _ := n.Get(name)
	return v
}

// Require returns the value of an attribute or an *AttributeError.
func (n *Node) Require(name string) (string, error) {
	v, ok := n.Get(name)
	if !ok {
		return "", &AttributeError{Tag: n.Tag, Attr: name}
	}
	return v, nil
}

// Set assigns an attribute, appending it if it does not exist yet.
func (n *Node) Set(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Unset removes an attribute and reports whether it was present.
func (n *Node) Unset(name string) bool {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// Append adds children at the end of the node.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Elements returns the element children with the given tag, or all element
// children when tag is empty.
func (n *Node) Elements(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode && (tag == "" || c.Tag == tag) {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first element child with the given tag.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Kind == ElementNode && c.Tag == tag {
			return c
		}
	}
	return nil
}

// Find resolves a slash separated path of tags below n.
// Example: n.Find("drawing/board/plain")
func (n *Node) Find(path string) *Node {
	cur := n
	for _, part := range strings.Split(path, "/") {
		if part == "" || part == "." {
			continue
		}
		cur = cur.Child(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Iter returns n and every element below it with the given tag, in document
// order. An empty tag matches every element.
func (n *Node) Iter(tag string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.Kind != ElementNode {
			return
		}
		if tag == "" || cur.Tag == tag {
			out = append(out, cur)
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// RemoveFunc removes every direct child for which match returns true and
// returns how many were removed. Text nodes between removed elements are
// kept.
func (n *Node) RemoveFunc(match func(*Node) bool) int {
	kept := n.Children[:0]
	removed := 0
	for _, c := range n.Children {
		if c.Kind == ElementNode && match(c) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(n.Children); i++ {
		n.Children[i] = nil
	}
	n.Children = kept
	return removed
}
