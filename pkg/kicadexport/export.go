// Package kicadexport writes the generated ring artwork as a KiCad board so
// it can be imported into a KiCad project. Only board-level geometry is
// exported; footprints stay in Eagle.
package kicadexport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/OpenTraceLab/ledring/internal/fsutil"
	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"github.com/OpenTraceLab/ledring/pkg/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// FileVersion is the KiCad 7 board format.
const FileVersion = 20221018

// Generator is written into the header.
const Generator = "ledring"

// ErrMalformed is returned when the generated text does not re-parse as an
// s-expression list.
var ErrMalformed = errors.New("kicadexport: generated board does not parse")

// Layers maps Eagle layers to KiCad layer names. Layers missing here, such as
// the unrouted layer 19, are not exported.
var Layers = map[eagle.Layer]string{
	eagle.LayerTop:       "F.Cu",
	eagle.LayerBottom:    "B.Cu",
	eagle.LayerDimension: "Edge.Cuts",
	eagle.LayerTPlace:    "F.SilkS",
	eagle.LayerTStop:     "F.Mask",
}

// layer table of the header: ordinal, name, type.
var layerTable = []struct {
	ord  int
	name string
	kind string
}{
	{0, "F.Cu", "signal"},
	{31, "B.Cu", "signal"},
	{37, "F.SilkS", "user"},
	{39, "F.Mask", "user"},
	{44, "Edge.Cuts", "user"},
}

func isCopper(name string) bool {
	return name == "F.Cu" || name == "B.Cu"
}

// DefaultOrigin places a 56 mm board inside an A4 sheet.
var DefaultOrigin = r2.Vec{X: 100, Y: 150}

// Options controls the export.
type Options struct {
	// Origin is where Eagle's (0, 0) lands on the KiCad sheet, DefaultOrigin
	// when nil. KiCad's Y axis points down, so Eagle Y is subtracted from
	// Origin.Y.
	Origin *r2.Vec
}

// Stats counts what Write emitted.
type Stats struct {
	Items   map[string]int // by KiCad token, e.g. "segment"
	Nets    int
	Skipped int // primitives on layers without a KiCad mapping
}

type writer struct {
	buf    bytes.Buffer
	origin r2.Vec
	nets   map[string]int
	stats  *Stats
}

func (w *writer) num(v float64) string {
	return eagle.FormatFloat(v)
}

func (w *writer) xy(p r2.Vec) string {
	return w.num(w.origin.X+p.X) + " " + w.num(w.origin.Y-p.Y)
}

func (w *writer) item(kind, format string, args ...any) {
	w.stats.Items[kind]++
	fmt.Fprintf(&w.buf, "  ("+kind+" "+format+")\n", args...)
}

func (w *writer) stroke(width float64) string {
	return fmt.Sprintf("(stroke (width %s) (type solid))", w.num(width))
}

func (w *writer) net(name string) int {
	if name == "" {
		return 0
	}
	return w.nets[name]
}

// Write emits s as a KiCad board. The text is checked to parse before any
// byte reaches out.
func Write(out io.Writer, s *render.Scene, opts Options) (*Stats, error) {
	w := &writer{origin: DefaultOrigin, stats: &Stats{Items: map[string]int{}}}
	if opts.Origin != nil {
		w.origin = *opts.Origin
	}

	w.header(s)
	for _, st := range s.Strokes {
		w.strokeItem(st)
	}
	for _, c := range s.Circles {
		w.circle(c)
	}
	for _, p := range s.Polygons {
		w.polygon(p)
	}
	w.buf.WriteString(")\n")

	if err := validate(w.buf.Bytes()); err != nil {
		return nil, err
	}
	if _, err := out.Write(w.buf.Bytes()); err != nil {
		return nil, err
	}
	return w.stats, nil
}

func (w *writer) header(s *render.Scene) {
	fmt.Fprintf(&w.buf, "(kicad_pcb (version %d) (generator %s)\n", FileVersion, Generator)
	w.buf.WriteString("  (general (thickness 1.6))\n")
	w.buf.WriteString("  (paper \"A4\")\n")
	w.buf.WriteString("  (layers\n")
	for _, l := range layerTable {
		fmt.Fprintf(&w.buf, "    (%d %s %s)\n", l.ord, strconv.Quote(l.name), l.kind)
	}
	w.buf.WriteString("  )\n")

	// Net 0 is KiCad's "no net".
	names := map[string]bool{}
	for _, st := range s.Strokes {
		if name, ok := Layers[st.Layer]; ok && isCopper(name) && st.Net != "" {
			names[st.Net] = true
		}
	}
	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	w.nets = make(map[string]int, len(sorted))
	w.buf.WriteString("  (net 0 \"\")\n")
	for i, n := range sorted {
		w.nets[n] = i + 1
		fmt.Fprintf(&w.buf, "  (net %d %s)\n", i+1, strconv.Quote(n))
	}
	w.stats.Nets = len(sorted)
}

func (w *writer) strokeItem(st render.Stroke) {
	layer, ok := Layers[st.Layer]
	if !ok || len(st.Points) < 2 {
		w.stats.Skipped++
		return
	}
	start, end := st.Points[0], st.Points[len(st.Points)-1]

	switch {
	case isCopper(layer) && st.Arc != nil:
		w.item("arc", "(start %s) (mid %s) (end %s) (width %s) (layer %q) (net %d)",
			w.xy(start), w.xy(st.Arc.Point(0.5)), w.xy(end), w.num(st.Width), layer, w.net(st.Net))
	case isCopper(layer):
		w.item("segment", "(start %s) (end %s) (width %s) (layer %q) (net %d)",
			w.xy(start), w.xy(end), w.num(st.Width), layer, w.net(st.Net))
	case st.Arc != nil:
		w.item("gr_arc", "(start %s) (mid %s) (end %s) %s (layer %q)",
			w.xy(start), w.xy(st.Arc.Point(0.5)), w.xy(end), w.stroke(st.Width), layer)
	default:
		w.item("gr_line", "(start %s) (end %s) %s (layer %q)",
			w.xy(start), w.xy(end), w.stroke(st.Width), layer)
	}
}

func (w *writer) circle(c render.Circle) {
	layer, ok := Layers[c.Layer]
	if !ok {
		w.stats.Skipped++
		return
	}
	fill := "none"
	if c.Width == 0 {
		fill = "solid"
	}
	edge := r2.Add(c.Center, r2.Vec{X: c.Radius})
	w.item("gr_circle", "(center %s) (end %s) %s (fill %s) (layer %q)",
		w.xy(c.Center), w.xy(edge), w.stroke(c.Width), fill, layer)
}

func (w *writer) polygon(p render.Polygon) {
	layer, ok := Layers[p.Layer]
	if !ok || len(p.Points) < 3 {
		w.stats.Skipped++
		return
	}
	var pts bytes.Buffer
	for i, v := range p.Points {
		if i > 0 {
			pts.WriteByte(' ')
		}
		fmt.Fprintf(&pts, "(xy %s)", w.xy(v))
	}
	w.item("gr_poly", "(pts %s) %s (fill solid) (layer %q)", pts.String(), w.stroke(p.Width), layer)
}

// validate checks that b opens with a list.
func validate(b []byte) error {
	exprs, err := parse(b)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(exprs) == 0 || exprs[0].IsLeaf() {
		return fmt.Errorf("%w: no top level list", ErrMalformed)
	}
	return nil
}

// WriteFile exports s to filename. Nothing is written unless the whole board
// validates, and an existing file is replaced atomically.
func WriteFile(filename string, s *render.Scene, opts Options) (*Stats, error) {
	var stats *Stats
	err := fsutil.WriteFile(filename, func(w io.Writer) error {
		var err error
		stats, err = Write(w, s, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
