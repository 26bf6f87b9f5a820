// Package notation parses the short textual notations an Eagle board uses
// inside attribute values: reference designators ("D12", "N$3") and element
// rotations ("R90", "MR180", "SMR270").
package notation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// ErrDesignator is returned when a reference designator does not match
	// <prefix><index>.
	ErrDesignator = errors.New("malformed designator")

	// ErrRotation is returned for rotation strings that are not [S][M]R<angle>.
	ErrRotation = errors.New("malformed rotation")
)

// DesignatorLexer splits a designator into its kind prefix and its index.
var DesignatorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Prefix", Pattern: `[A-Za-z_$]+`},
	{Name: "Index", Pattern: `[0-9]+`},
})

// RotationLexer tokenizes Eagle rotation strings.
var RotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Flag", Pattern: `[SMR]`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
})

// Designator is a parsed reference designator such as "D12".
type Designator struct {
	Prefix string `@Prefix`
	Index  int    `@Index`
}

// String formats the designator back to its canonical form.
func (d Designator) String() string {
	return d.Prefix + strconv.Itoa(d.Index)
}

// Rotation is an Eagle element orientation.
// Example: "SMR270" is spin, mirrored, rotated 270 degrees.
type Rotation struct {
	Spin   bool    `@"S"?`
	Mirror bool    `@"M"?`
	Angle  float64 `"R" @Number`
}

// String formats the rotation the way Eagle writes it.
func (r Rotation) String() string {
	var sb strings.Builder
	if r.Spin {
		sb.WriteByte('S')
	}
	if r.Mirror {
		sb.WriteByte('M')
	}
	sb.WriteByte('R')
	sb.WriteString(strconv.FormatFloat(r.Angle, 'f', -1, 64))
	return sb.String()
}

// Degrees returns a rotation of a whole number of degrees reduced to
// [0, 360), so R564 and R204 format the same.
func Degrees(deg int) Rotation {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return Rotation{Angle: float64(deg)}
}

// Radians returns the rotation angle in radians.
func (r Rotation) Radians() float64 {
	return r.Angle * math.Pi / 180.0
}

var (
	designatorParser = participle.MustBuild[Designator](
		participle.Lexer(DesignatorLexer),
	)
	rotationParser = participle.MustBuild[Rotation](
		participle.Lexer(RotationLexer),
	)
)

// ParseDesignator parses a reference designator. The whole input must be
// consumed: "D1a" and "D" are both errors.
func ParseDesignator(s string) (Designator, error) {
	d, err := designatorParser.ParseString("", s)
	if err != nil {
		return Designator{}, fmt.Errorf("%w %q: %v", ErrDesignator, s, err)
	}
	return *d, nil
}

// ParseRotation parses an Eagle rotation attribute. An empty string is the
// Eagle default orientation R0.
func ParseRotation(s string) (Rotation, error) {
	if s == "" {
		return Rotation{}, nil
	}
	r, err := rotationParser.ParseString("", s)
	if err != nil {
		return Rotation{}, fmt.Errorf("%w %q: %v", ErrRotation, s, err)
	}
	return *r, nil
}
