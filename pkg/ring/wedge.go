package ring

import "gonum.org/v1/gonum/spatial/r2"

// Wedge is one of the edge pads. The stop-mask opening spans
// [Start, Start+Span]; the pad's apex sits on the outer edge at Center.
type Wedge struct {
	Index  int
	Center float64
	Start  float64
	Span   float64
}

// Wedges partitions the ring into count equal wedges, the first centred on
// angle 0.
func Wedges(count int) []Wedge {
	span := 1.0 / float64(count)
	ws := make([]Wedge, count)
	for i := range ws {
		center := float64(i) * span
		ws[i] = Wedge{Index: i, Center: center, Start: center - span/2, Span: span}
	}
	return ws
}

// ArcAngle is the angle of arc vertex j out of steps.
func (w Wedge) ArcAngle(j, steps int) float64 {
	return w.Start + w.Span*float64(j)/float64(steps)
}

// MaskSpan returns the angular extent of the stop-mask arc.
func (p Params) MaskSpan(w Wedge) (from, to float64) {
	return w.ArcAngle(0, p.ArcSteps), w.ArcAngle(p.ArcSteps, p.ArcSteps)
}

// CopperSpan returns the angular extent of the copper arc.
func (p Params) CopperSpan(w Wedge) (from, to float64) {
	return w.ArcAngle(CopperInset, p.ArcSteps), w.ArcAngle(p.ArcSteps-CopperInset, p.ArcSteps)
}

// MaskOutline is the stop-mask region of w: ArcSteps+1 points along the pad
// radius followed by the apex on the outer radius.
func (p Params) MaskOutline(w Wedge) []r2.Vec {
	return p.wedgeOutline(w, 0, p.ArcSteps)
}

// CopperOutline is the copper region of w, the mask arc trimmed by
// CopperInset steps at both ends.
func (p Params) CopperOutline(w Wedge) []r2.Vec {
	return p.wedgeOutline(w, CopperInset, p.ArcSteps-CopperInset)
}

func (p Params) wedgeOutline(w Wedge, first, last int) []r2.Vec {
	pts := make([]r2.Vec, 0, last-first+2)
	for j := first; j <= last; j++ {
		pts = append(pts, Polar(p.Center, p.PadRadius, w.ArcAngle(j, p.ArcSteps)))
	}
	return append(pts, Polar(p.Center, p.OuterRadius, w.Center))
}
