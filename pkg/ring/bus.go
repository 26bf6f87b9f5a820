package ring

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Net names of the two supply buses.
const (
	PowerNet  = "VCC"
	GroundNet = "GND"
)

// Bus is one supply ring. Taps run radially from PadRadius to BusRadius at
// each LED's pad angle; arcs along BusRadius join consecutive taps.
type Bus struct {
	Net       string
	PadRadius float64 // radius of the pad tap point
	PadAngle  float64 // tap angle relative to the LED origin, turns
	BusRadius float64
}

// TapOffset locates a pad that sits offset mm from the LED origin both
// radially (outward for sign +1, inward for sign -1) and tangentially. It
// returns the pad's distance from the board centre and its angle relative to
// the LED, from the right triangle with legs ledRadius+sign*offset and offset:
//
//	radius = sqrt((R + s*o)^2 + o^2)
//	angle  = atan2(s*o, R + s*o) / 2pi
func TapOffset(ledRadius, offset, sign float64) (radius, angle float64) {
	leg := ledRadius + sign*offset
	radius = math.Hypot(leg, offset)
	angle = math.Atan2(sign*offset, leg) / (2 * math.Pi)
	return radius, angle
}

// PowerBus is the VCC ring, outside the LEDs.
func (p Params) PowerBus() Bus {
	r, a := TapOffset(p.LEDRadius, p.PadOffset, 1)
	return Bus{Net: PowerNet, PadRadius: r, PadAngle: a, BusRadius: r + p.BusGap}
}

// GroundBus is the GND ring, inside the LEDs.
func (p Params) GroundBus() Bus {
	r, a := TapOffset(p.LEDRadius, p.PadOffset, -1)
	return Bus{Net: GroundNet, PadRadius: r, PadAngle: a, BusRadius: r - p.BusGap}
}

// TapAngle is the angle of the tap for ring position n.
func (p Params) TapAngle(b Bus, n int) float64 {
	return p.SlotAngle(n) + b.PadAngle
}

// Segment is a straight or arc track between two points.
type Segment struct {
	From, To r2.Vec
	Curve    float64 // degrees, 0 for straight
}

// Tap returns the radial wire of ring position n.
func (p Params) Tap(b Bus, n int) Segment {
	theta := p.TapAngle(b, n)
	return Segment{
		From: Polar(p.Center, b.PadRadius, theta),
		To:   Polar(p.Center, b.BusRadius, theta),
	}
}

// Arc returns the bus arc from ring position n to position n+1.
func (p Params) Arc(b Bus, n int) Segment {
	theta := p.TapAngle(b, n)
	next := theta + p.Step()
	return Segment{
		From:  Polar(p.Center, b.BusRadius, theta),
		To:    Polar(p.Center, b.BusRadius, next),
		Curve: ArcCurve(theta, next),
	}
}

// DataLink returns the daisy-chain wire leaving the LED at ring position n:
// from its ground-side data pad to the power-side data pad of position n+1.
func (p Params) DataLink(n int) Segment {
	theta := p.SlotAngle(n)
	g, v := p.GroundBus(), p.PowerBus()
	return Segment{
		From: Polar(p.Center, g.PadRadius, theta-g.PadAngle),
		To:   Polar(p.Center, v.PadRadius, theta-v.PadAngle+p.Step()),
	}
}
