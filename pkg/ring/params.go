// Package ring holds the geometry of a circular LED ring board: where the N
// LEDs sit, where the power and ground buses run, and how the 12 edge pads
// are shaped. Everything here is a pure function of Params.
//
// Angles are in turns (1.0 = full revolution) unless a name says otherwise.
package ring

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Widths are the trace and outline widths in mm.
type Widths struct {
	Dimension float64 // board outline
	Pad       float64 // stop-mask and copper pad polygons
	Tap       float64 // radial pad-to-bus taps
	Bus       float64 // bus arcs
	Data      float64 // daisy-chain data links and repaired airwires
}

// Params describes one ring board. DefaultParams returns the production board.
type Params struct {
	LEDs        int     // ring population N
	Center      r2.Vec  // board centre
	OuterRadius float64 // outer edge of the board
	InnerRadius float64 // inner cut-out
	PadRadius   float64 // inner edge of the 12 edge pads
	LEDRadius   float64 // radius the LED origins sit on
	FirstSlot   float64 // ring slot of D1
	LEDRotation float64 // added to every LED rotation, in turns
	PadOffset   float64 // distance from LED origin to its power/ground pads
	BusGap      float64 // radial distance between pad taps and bus rings
	ArcSteps    int     // straight segments per pad arc
	Wedges      int     // number of edge pads
	Widths      Widths
}

// DefaultParams returns the 60 LED, 56 mm board.
func DefaultParams() Params {
	return Params{
		LEDs:        60,
		Center:      r2.Vec{X: 28, Y: 28},
		OuterRadius: 28,
		InnerRadius: 19,
		PadRadius:   24.1,
		LEDRadius:   21.5,
		FirstSlot:   20,
		LEDRotation: 0.25,
		PadOffset:   0.55,
		BusGap:      1.2,
		ArcSteps:    50,
		Wedges:      12,
		Widths: Widths{
			Dimension: 0.1,
			Pad:       0.01,
			Tap:       0.3,
			Bus:       0.9,
			Data:      0.1524,
		},
	}
}

// CopperInset is the number of arc steps the copper pads are trimmed by at
// each end so copper stays inside the stop-mask opening.
const CopperInset = 2

// ErrInvalidParams is wrapped by every Validate failure.
var ErrInvalidParams = errors.New("invalid ring parameters")

// Validate checks that the parameters describe a buildable board.
func (p Params) Validate() error {
	switch {
	case p.LEDs < 1:
		return fmt.Errorf("%w: LED count %d, need at least 1", ErrInvalidParams, p.LEDs)
	case p.Wedges < 1:
		return fmt.Errorf("%w: wedge count %d, need at least 1", ErrInvalidParams, p.Wedges)
	case p.ArcSteps <= 2*CopperInset:
		return fmt.Errorf("%w: %d arc steps leave no copper after a %d step inset",
			ErrInvalidParams, p.ArcSteps, CopperInset)
	case p.InnerRadius <= 0 || p.OuterRadius <= 0 || p.PadRadius <= 0 || p.LEDRadius <= 0:
		return fmt.Errorf("%w: radii must be positive", ErrInvalidParams)
	case p.InnerRadius >= p.OuterRadius:
		return fmt.Errorf("%w: inner radius %g not inside outer radius %g",
			ErrInvalidParams, p.InnerRadius, p.OuterRadius)
	case p.PadRadius >= p.OuterRadius:
		return fmt.Errorf("%w: pad radius %g not inside outer radius %g",
			ErrInvalidParams, p.PadRadius, p.OuterRadius)
	case p.PadOffset < 0 || p.BusGap <= 0:
		return fmt.Errorf("%w: pad offset and bus gap must be positive", ErrInvalidParams)
	}
	if g := p.GroundBus(); g.BusRadius <= 0 {
		return fmt.Errorf("%w: ground bus radius %g", ErrInvalidParams, g.BusRadius)
	}
	return nil
}

// FirstLEDAngle is the angle of D1.
func (p Params) FirstLEDAngle() float64 {
	return p.FirstSlot / float64(p.LEDs)
}

// Step is the angle between neighbouring LEDs.
func (p Params) Step() float64 {
	return 1.0 / float64(p.LEDs)
}

// SlotAngle is the angle of ring position i, counted from D1.
func (p Params) SlotAngle(i int) float64 {
	return SlotAngle(i, p.LEDs, p.FirstLEDAngle())
}

// LEDAngle is the angle of the LED with the given 1-based designator index.
func (p Params) LEDAngle(index int) float64 {
	return p.SlotAngle(index - 1)
}
