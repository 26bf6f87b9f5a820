package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"github.com/OpenTraceLab/ledring/pkg/ring"
	"gonum.org/v1/gonum/spatial/r2"
)

// Tolerance for geometric comparisons, in mm or turns.
const checkTolerance = 1e-4

// Violation is one failed check.
type Violation struct {
	Check   string
	Subject string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.Check, v.Subject, v.Message)
}

// Report is the outcome of Check.
type Report struct {
	Checked    int
	Violations []Violation
}

// OK reports whether no check failed.
func (r *Report) OK() bool { return len(r.Violations) == 0 }

func (r *Report) addf(check, subject, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{
		Check:   check,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}

// Check inspects a laid out board. It never modifies doc. An error is only
// returned for documents that cannot be read at all.
func Check(doc *eagle.Document, p ring.Params) (*Report, error) {
	r := &Report{}
	checkBusSeparation(r, p)
	if err := checkBusWires(r, doc, p); err != nil {
		return nil, err
	}
	if err := checkPads(r, doc, p); err != nil {
		return nil, err
	}
	if err := checkLEDs(r, doc, p); err != nil {
		return nil, err
	}
	return r, nil
}

// checkBusSeparation makes sure the two bus annuli, traces included, do not
// touch.
func checkBusSeparation(r *Report, p ring.Params) {
	r.Checked++
	vcc, gnd := p.PowerBus(), p.GroundBus()
	half := p.Widths.Bus / 2
	if gap := (vcc.BusRadius - half) - (gnd.BusRadius + half); gap <= 0 {
		r.addf("bus-separation", vcc.Net+"/"+gnd.Net, "bus annuli overlap by %.4f mm", -gap)
	}
	for _, b := range []ring.Bus{vcc, gnd} {
		if b.BusRadius+half >= p.PadRadius {
			r.addf("bus-separation", b.Net, "bus at %.4f mm reaches the edge pads at %.4f mm", b.BusRadius, p.PadRadius)
		}
	}
}

func checkBusWires(r *Report, doc *eagle.Document, p ring.Params) error {
	for _, b := range []ring.Bus{p.PowerBus(), p.GroundBus()} {
		r.Checked++
		signal := doc.Signal(b.Net)
		if signal == nil {
			r.addf("bus-wires", b.Net, "net missing")
			continue
		}
		var taps, arcs int
		for _, n := range signal.Elements("wire") {
			if !n.OnLayer(eagle.LayerTop) {
				continue
			}
			w, err := eagle.WireFromNode(n)
			if err != nil {
				return fmt.Errorf("net %s: %w", b.Net, err)
			}
			if w.Curve == 0 {
				taps++
			} else {
				arcs++
			}
		}
		if taps != p.LEDs || arcs != p.LEDs {
			r.addf("bus-wires", b.Net, "%d taps and %d arcs on top copper, want %d of each", taps, arcs, p.LEDs)
		}
	}
	return nil
}

// checkPads verifies that every copper pad vertex on the pad arc lies inside
// the stop-mask span of its wedge.
func checkPads(r *Report, doc *eagle.Document, p ring.Params) error {
	signals := doc.Signals()
	if signals == nil {
		return nil
	}
	wedges := ring.Wedges(p.Wedges)
	for i, w := range wedges {
		signal := doc.Signal(PadNetName(i))
		if signal == nil {
			continue
		}
		r.Checked++
		for _, n := range signal.Elements("polygon") {
			poly, err := eagle.PolygonFromNode(n)
			if err != nil {
				return fmt.Errorf("net %s: %w", PadNetName(i), err)
			}
			if len(poly.Vertices) < 2 {
				r.addf("pad-inset", PadNetName(i), "polygon has %d vertices", len(poly.Vertices))
				continue
			}
			// The last vertex is the apex on the outer edge.
			for _, v := range poly.Vertices[:len(poly.Vertices)-1] {
				off := math.Abs(angleDiff(angleOf(p.Center, v), w.Center))
				if off >= w.Span/2-checkTolerance {
					r.addf("pad-inset", PadNetName(i),
						"copper vertex (%.4f, %.4f) not inside the stop-mask opening", v.X, v.Y)
					break
				}
			}
		}
	}
	return nil
}

// checkLEDs verifies that every LED sits on the LED ring.
func checkLEDs(r *Report, doc *eagle.Document, p ring.Params) error {
	for _, n := range doc.Root.Iter("element") {
		if !strings.HasPrefix(n.Attr("name"), LEDPrefix) {
			continue
		}
		el, err := eagle.ElementFromNode(n)
		if err != nil {
			return err
		}
		r.Checked++
		d := r2.Norm(r2.Sub(r2.Vec{X: el.X, Y: el.Y}, p.Center))
		if math.Abs(d-p.LEDRadius) > checkTolerance {
			r.addf("led-radius", el.Name, "at %.4f mm from centre, want %.4f", d, p.LEDRadius)
		}
	}
	return nil
}

func angleOf(center r2.Vec, v eagle.Vertex) float64 {
	return math.Atan2(v.Y-center.Y, v.X-center.X) / (2 * math.Pi)
}

// angleDiff returns a-b wrapped into [-0.5, 0.5).
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b+0.5, 1)
	if d < 0 {
		d++
	}
	return d - 0.5
}
