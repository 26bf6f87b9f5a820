package ring

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Polar returns the point at radius r and angle theta (turns) around center.
func Polar(center r2.Vec, r, theta float64) r2.Vec {
	rad := 2 * math.Pi * theta
	return r2.Add(center, r2.Scale(r, r2.Vec{X: math.Cos(rad), Y: math.Sin(rad)}))
}

// SlotAngle returns offset + i/n.
func SlotAngle(i, n int, offset float64) float64 {
	return offset + float64(i)/float64(n)
}

// RotationDegrees converts an angle plus a rotation offset (both turns) to
// whole degrees in [0, 360). Halves round to even. Boards laid out by older
// tools may carry the unreduced value, e.g. R564 where this gives R204; Eagle
// reads both as the same orientation.
func RotationDegrees(theta, offset float64) int {
	deg := int(math.RoundToEven((theta + offset) * 360))
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// ArcCurve is the Eagle curve attribute (degrees) of an arc from theta1 to
// theta2.
func ArcCurve(theta1, theta2 float64) float64 {
	return (theta2 - theta1) * 360
}

// Placement is where a component lands.
type Placement struct {
	Position r2.Vec
	Rotation int // whole degrees
}

// Place computes the placement for radius r, angle theta and rotation
// offset rot (turns) around center.
func Place(center r2.Vec, r, theta, rot float64) Placement {
	return Placement{
		Position: Polar(center, r, theta),
		Rotation: RotationDegrees(theta, rot),
	}
}

// PlaceLED returns the placement of the LED with 1-based index.
func (p Params) PlaceLED(index int) Placement {
	return Place(p.Center, p.LEDRadius, p.LEDAngle(index), p.LEDRotation)
}

// PlaceResistor returns the placement of the series resistor with 1-based
// index. Resistors sit between odd LED slots, oriented by the first LED angle.
func (p Params) PlaceResistor(index int) Placement {
	theta := float64(2*index-1) / float64(p.LEDs)
	return Place(p.Center, p.LEDRadius, theta, p.FirstLEDAngle())
}

// OutlinePoints returns count points evenly spaced on a circle of radius r,
// starting at angle 0.
func OutlinePoints(center r2.Vec, r float64, count int) []r2.Vec {
	pts := make([]r2.Vec, count)
	for i := range pts {
		pts[i] = Polar(center, r, float64(i)/float64(count))
	}
	return pts
}
