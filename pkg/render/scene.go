// Package render turns an Eagle board into drawable geometry and draws it,
// either into a PNG through gogpu/gg or into a gio frame for the viewer.
package render

import (
	"math"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"gonum.org/v1/gonum/spatial/r2"
)

// maxArcStep is the largest angle, in radians, between two tessellated arc
// points.
const maxArcStep = 5 * math.Pi / 180

// Arc is the exact form of a curved wire.
type Arc struct {
	Center r2.Vec
	Radius float64
	Start  float64 // radians
	Sweep  float64 // radians, positive is counter-clockwise
}

// Point returns the point at fraction t of the arc.
func (a Arc) Point(t float64) r2.Vec {
	theta := a.Start + a.Sweep*t
	return r2.Add(a.Center, r2.Scale(a.Radius, r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)}))
}

// Stroke is a wire. Points holds the tessellated path; Arc is set for
// curved wires.
type Stroke struct {
	Layer  eagle.Layer
	Net    string
	Width  float64
	Points []r2.Vec
	Arc    *Arc
}

// Circle is an outlined circle, or a filled disc when Width is zero.
type Circle struct {
	Layer  eagle.Layer
	Center r2.Vec
	Radius float64
	Width  float64
}

// Polygon is a filled region.
type Polygon struct {
	Layer  eagle.Layer
	Net    string
	Width  float64
	Points []r2.Vec
}

// Marker is the origin of a placed component.
type Marker struct {
	Name     string
	Position r2.Vec
	Rotation float64 // degrees
	Mirror   bool
}

// Scene is the flattened board geometry in world millimetres.
type Scene struct {
	Strokes  []Stroke
	Circles  []Circle
	Polygons []Polygon
	Markers  []Marker
}

// BuildScene collects the board-level geometry of doc: plain drawings, the
// copper of every net and a marker per element.
func BuildScene(doc *eagle.Document) (*Scene, error) {
	s := &Scene{}
	if plain := doc.Plain(); plain != nil {
		if err := s.addGraphics(plain, ""); err != nil {
			return nil, err
		}
	}
	if signals := doc.Signals(); signals != nil {
		for _, signal := range signals.Elements("signal") {
			if err := s.addGraphics(signal, signal.Attr("name")); err != nil {
				return nil, err
			}
		}
	}
	for _, n := range doc.Root.Iter("element") {
		el, err := eagle.ElementFromNode(n)
		if err != nil {
			return nil, err
		}
		s.Markers = append(s.Markers, Marker{
			Name:     el.Name,
			Position: r2.Vec{X: el.X, Y: el.Y},
			Rotation: el.Rot.Angle,
			Mirror:   el.Rot.Mirror,
		})
	}
	return s, nil
}

func (s *Scene) addGraphics(parent *eagle.Node, net string) error {
	for _, n := range parent.Children {
		if n.Kind != eagle.ElementNode {
			continue
		}
		switch n.Tag {
		case "wire":
			w, err := eagle.WireFromNode(n)
			if err != nil {
				return err
			}
			s.Strokes = append(s.Strokes, wireStroke(w, net))
		case "circle":
			c, err := eagle.CircleFromNode(n)
			if err != nil {
				return err
			}
			s.Circles = append(s.Circles, Circle{
				Layer:  c.Layer,
				Center: r2.Vec{X: c.X, Y: c.Y},
				Radius: c.Radius,
				Width:  c.Width,
			})
		case "polygon":
			p, err := eagle.PolygonFromNode(n)
			if err != nil {
				return err
			}
			poly := Polygon{Layer: p.Layer, Net: net, Width: p.Width}
			for _, v := range p.Vertices {
				poly.Points = append(poly.Points, r2.Vec{X: v.X, Y: v.Y})
			}
			s.Polygons = append(s.Polygons, poly)
		}
	}
	return nil
}

func wireStroke(w eagle.Wire, net string) Stroke {
	from := r2.Vec{X: w.X1, Y: w.Y1}
	to := r2.Vec{X: w.X2, Y: w.Y2}
	st := Stroke{Layer: w.Layer, Net: net, Width: w.Width}

	arc, ok := WireArc(from, to, w.Curve)
	if !ok {
		st.Points = []r2.Vec{from, to}
		return st
	}
	st.Arc = &arc
	n := int(math.Ceil(math.Abs(arc.Sweep) / maxArcStep))
	if n < 2 {
		n = 2
	}
	st.Points = make([]r2.Vec, n+1)
	for i := range st.Points {
		st.Points[i] = arc.Point(float64(i) / float64(n))
	}
	// Pin the ends to the wire's own coordinates.
	st.Points[0], st.Points[n] = from, to
	return st
}

// WireArc recovers the circle of a wire from its endpoints and curve in
// degrees. It reports false for straight wires, degenerate chords and full
// circles.
func WireArc(from, to r2.Vec, curve float64) (Arc, bool) {
	if curve == 0 || math.Abs(curve) >= 360 {
		return Arc{}, false
	}
	chord := r2.Sub(to, from)
	l := r2.Norm(chord)
	if l == 0 {
		return Arc{}, false
	}
	sweep := curve * math.Pi / 180
	mid := r2.Scale(0.5, r2.Add(from, to))
	left := r2.Scale(1/l, r2.Vec{X: -chord.Y, Y: chord.X})
	center := r2.Add(mid, r2.Scale((l/2)/math.Tan(sweep/2), left))
	return Arc{
		Center: center,
		Radius: (l / 2) / math.Abs(math.Sin(sweep/2)),
		Start:  math.Atan2(from.Y-center.Y, from.X-center.X),
		Sweep:  sweep,
	}, true
}

// Bounds is an axis aligned box.
type Bounds struct {
	Min, Max r2.Vec
	set      bool
}

// Empty reports whether nothing was added.
func (b Bounds) Empty() bool { return !b.set }

// Size returns the width and height.
func (b Bounds) Size() r2.Vec { return r2.Sub(b.Max, b.Min) }

// Add grows b to hold p, padded by r in every direction.
func (b *Bounds) Add(p r2.Vec, r float64) {
	lo := r2.Vec{X: p.X - r, Y: p.Y - r}
	hi := r2.Vec{X: p.X + r, Y: p.Y + r}
	if !b.set {
		b.Min, b.Max, b.set = lo, hi, true
		return
	}
	b.Min = r2.Vec{X: math.Min(b.Min.X, lo.X), Y: math.Min(b.Min.Y, lo.Y)}
	b.Max = r2.Vec{X: math.Max(b.Max.X, hi.X), Y: math.Max(b.Max.Y, hi.Y)}
}

// Bounds returns the extent of everything in the scene.
func (s *Scene) Bounds() Bounds {
	var b Bounds
	for _, st := range s.Strokes {
		for _, p := range st.Points {
			b.Add(p, st.Width/2)
		}
	}
	for _, c := range s.Circles {
		b.Add(c.Center, c.Radius+c.Width/2)
	}
	for _, p := range s.Polygons {
		for _, v := range p.Points {
			b.Add(v, p.Width/2)
		}
	}
	for _, m := range s.Markers {
		b.Add(m.Position, 0)
	}
	return b
}
