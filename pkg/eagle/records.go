package eagle

import (
	"fmt"
	"math"
	"strconv"

	"github.com/OpenTraceLab/ledring/pkg/notation"
)

// Layer is an Eagle layer number.
type Layer int

// Layers the layout passes read or write.
const (
	LayerTop       Layer = 1
	LayerBottom    Layer = 16
	LayerDimension Layer = 20
	LayerTPlace    Layer = 21
	LayerTStop     Layer = 29
)

// String returns the attribute form of the layer.
func (l Layer) String() string {
	return strconv.Itoa(int(l))
}

// AttributeError reports a missing or unparsable attribute.
type AttributeError struct {
	Tag   string
	Attr  string
	Value string
	Err   error
}

func (e *AttributeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("<%s> has no %q attribute", e.Tag, e.Attr)
	}
	return fmt.Sprintf("<%s> attribute %s=%q: %v", e.Tag, e.Attr, e.Value, e.Err)
}

func (e *AttributeError) Unwrap() error { return e.Err }

// FormatFloat renders a coordinate the way records are written back: at most
// six decimals (one nanometre), no exponent, no negative zero.
func FormatFloat(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Float reads a numeric attribute.
func (n *Node) Float(name string) (float64, error) {
	s, err := n.Require(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &AttributeError{Tag: n.Tag, Attr: name, Value: s, Err: err}
	}
	return v, nil
}

// SetFloat writes a numeric attribute.
func (n *Node) SetFloat(name string, v float64) {
	n.Set(name, FormatFloat(v))
}

// Layer reads the layer attribute.
func (n *Node) Layer() (Layer, error) {
	s, err := n.Require("layer")
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &AttributeError{Tag: n.Tag, Attr: "layer", Value: s, Err: err}
	}
	return Layer(v), nil
}

// OnLayer reports whether the node's layer attribute equals l. Nodes without
// a layer are never on any layer.
func (n *Node) OnLayer(l Layer) bool {
	v, ok := n.Get("layer")
	return ok && v == l.String()
}

// Wire is a straight or curved track segment.
type Wire struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Layer          Layer
	Curve          float64 // arc sweep in degrees, positive is counter-clockwise
}

// Node converts the wire to a <wire> element.
func (w Wire) Node() *Node {
	n := NewElement("wire",
		Attr{"x1", FormatFloat(w.X1)},
		Attr{"y1", FormatFloat(w.Y1)},
		Attr{"x2", FormatFloat(w.X2)},
		Attr{"y2", FormatFloat(w.Y2)},
		Attr{"width", FormatFloat(w.Width)},
		Attr{"layer", w.Layer.String()},
	)
	if w.Curve != 0 {
		n.Set("curve", FormatFloat(w.Curve))
	}
	return n
}

// WireFromNode reads a <wire> element.
func WireFromNode(n *Node) (Wire, error) {
	var w Wire
	var err error
	fields := []struct {
		name string
		dst  *float64
	}{
		{"x1", &w.X1}, {"y1", &w.Y1}, {"x2", &w.X2}, {"y2", &w.Y2}, {"width", &w.Width},
	}
	for _, f := range fields {
		if *f.dst, err = n.Float(f.name); err != nil {
			return Wire{}, err
		}
	}
	if w.Layer, err = n.Layer(); err != nil {
		return Wire{}, err
	}
	if _, ok := n.Get("curve"); ok {
		if w.Curve, err = n.Float("curve"); err != nil {
			return Wire{}, err
		}
	}
	return w, nil
}

// Circle is an outline circle.
type Circle struct {
	X, Y   float64
	Radius float64
	Width  float64
	Layer  Layer
}

// Node converts the circle to a <circle> element.
func (c Circle) Node() *Node {
	return NewElement("circle",
		Attr{"x", FormatFloat(c.X)},
		Attr{"y", FormatFloat(c.Y)},
		Attr{"radius", FormatFloat(c.Radius)},
		Attr{"width", FormatFloat(c.Width)},
		Attr{"layer", c.Layer.String()},
	)
}

// CircleFromNode reads a <circle> element.
func CircleFromNode(n *Node) (Circle, error) {
	var c Circle
	var err error
	if c.X, err = n.Float("x"); err != nil {
		return Circle{}, err
	}
	if c.Y, err = n.Float("y"); err != nil {
		return Circle{}, err
	}
	if c.Radius, err = n.Float("radius"); err != nil {
		return Circle{}, err
	}
	if c.Width, err = n.Float("width"); err != nil {
		return Circle{}, err
	}
	if c.Layer, err = n.Layer(); err != nil {
		return Circle{}, err
	}
	return c, nil
}

// Vertex is one corner of a polygon.
type Vertex struct {
	X, Y float64
}

// Polygon is a filled region.
type Polygon struct {
	Width    float64
	Layer    Layer
	Vertices []Vertex
}

// Node converts the polygon to a <polygon> element with <vertex> children.
func (p Polygon) Node() *Node {
	n := NewElement("polygon",
		Attr{"width", FormatFloat(p.Width)},
		Attr{"layer", p.Layer.String()},
	)
	for _, v := range p.Vertices {
		n.Append(NewElement("vertex",
			Attr{"x", FormatFloat(v.X)},
			Attr{"y", FormatFloat(v.Y)},
		))
	}
	return n
}

// PolygonFromNode reads a <polygon> element.
func PolygonFromNode(n *Node) (Polygon, error) {
	var p Polygon
	var err error
	if p.Width, err = n.Float("width"); err != nil {
		return Polygon{}, err
	}
	if p.Layer, err = n.Layer(); err != nil {
		return Polygon{}, err
	}
	for _, vn := range n.Elements("vertex") {
		var v Vertex
		if v.X, err = vn.Float("x"); err != nil {
			return Polygon{}, err
		}
		if v.Y, err = vn.Float("y"); err != nil {
			return Polygon{}, err
		}
		p.Vertices = append(p.Vertices, v)
	}
	return p, nil
}

// Element is a placed component.
type Element struct {
	Name string
	X, Y float64
	Rot  notation.Rotation
}

// ElementFromNode reads an <element>.
func ElementFromNode(n *Node) (Element, error) {
	var e Element
	var err error
	if e.Name, err = n.Require("name"); err != nil {
		return Element{}, err
	}
	if e.X, err = n.Float("x"); err != nil {
		return Element{}, err
	}
	if e.Y, err = n.Float("y"); err != nil {
		return Element{}, err
	}
	rot := n.Attr("rot")
	if e.Rot, err = notation.ParseRotation(rot); err != nil {
		return Element{}, &AttributeError{Tag: n.Tag, Attr: "rot", Value: rot, Err: err}
	}
	return e, nil
}

// Place writes position and rotation onto an <element> node.
func (e Element) Place(n *Node) {
	n.SetFloat("x", e.X)
	n.SetFloat("y", e.Y)
	n.Set("rot", e.Rot.String())
}

// ContactRef connects a net to one pad of an element.
type ContactRef struct {
	Element string
	Pad     string
}

// ContactRefFromNode reads a <contactref>.
func ContactRefFromNode(n *Node) (ContactRef, error) {
	var c ContactRef
	var err error
	if c.Element, err = n.Require("element"); err != nil {
		return ContactRef{}, err
	}
	if c.Pad, err = n.Require("pad"); err != nil {
		return ContactRef{}, err
	}
	return c, nil
}

// ContactRefs returns every contact reference below a signal.
func ContactRefs(signal *Node) ([]ContactRef, error) {
	var refs []ContactRef
	for _, n := range signal.Iter("contactref") {
		c, err := ContactRefFromNode(n)
		if err != nil {
			return nil, err
		}
		refs = append(refs, c)
	}
	return refs, nil
}
