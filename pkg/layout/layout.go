// Package layout applies the LED ring layout recipe to an Eagle board.
//
// Each pass reads and mutates one *eagle.Document and returns the first
// error it hits; nothing is retried and nothing is saved here. Geometry comes
// from package ring, the passes only translate it into board primitives and
// clear whatever they regenerate.
package layout

import (
	"strings"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"github.com/OpenTraceLab/ledring/pkg/ring"
	"gonum.org/v1/gonum/spatial/r2"
)

// Component name prefixes and pad numbers of the ring's parts.
const (
	LEDPrefix      = "D"
	ResistorPrefix = "R"
	PadNetPrefix   = "PAD"
	AutoNetPrefix  = "N$"
)

// DataPads are the LED pads carrying the serial data chain: 1 is data out,
// 3 is data in.
var DataPads = []string{"1", "3"}

// Layout runs the passes for one set of ring parameters.
type Layout struct {
	Params ring.Params

	// StrictPaths makes ClearLayer fail when its parent path does not exist
	// instead of falling back to the document root.
	StrictPaths bool
}

// New creates a Layout for p.
func New(p ring.Params) *Layout {
	return &Layout{Params: p}
}

func (l *Layout) wire(s ring.Segment, layer eagle.Layer, width float64) *eagle.Node {
	return eagle.Wire{
		X1: s.From.X, Y1: s.From.Y,
		X2: s.To.X, Y2: s.To.Y,
		Width: width,
		Layer: layer,
		Curve: s.Curve,
	}.Node()
}

func (l *Layout) polygon(pts []r2.Vec, layer eagle.Layer) *eagle.Node {
	p := eagle.Polygon{Width: l.Params.Widths.Pad, Layer: layer}
	for _, pt := range pts {
		p.Vertices = append(p.Vertices, eagle.Vertex{X: pt.X, Y: pt.Y})
	}
	return p.Node()
}

func (l *Layout) signals(doc *eagle.Document) (*eagle.Node, error) {
	s := doc.Signals()
	if s == nil {
		return nil, &LookupError{Kind: "section", Name: eagle.PathSignals}
	}
	return s, nil
}

func isDataPad(c eagle.ContactRef) bool {
	if !strings.HasPrefix(c.Element, LEDPrefix) {
		return false
	}
	for _, p := range DataPads {
		if c.Pad == p {
			return true
		}
	}
	return false
}
