package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"github.com/OpenTraceLab/ledring/pkg/notation"
	"github.com/OpenTraceLab/ledring/pkg/ring"
)

var errPrefix = errors.New("unexpected designator prefix")

// ringIndex parses the 1-based ring index of an element named prefix<n>.
// Names that merely start with prefix but carry a different prefix or no
// index are rejected with a FormatError.
func ringIndex(name, prefix string) (int, error) {
	d, err := notation.ParseDesignator(name)
	if err != nil {
		return 0, &FormatError{Element: name, Err: err}
	}
	if d.Prefix != prefix {
		return 0, &FormatError{Element: name, Err: fmt.Errorf("%w %q", errPrefix, d.Prefix)}
	}
	return d.Index, nil
}

// place moves el to pl, keeping any mirror or spin flag it already had.
func place(el *eagle.Node, pl ring.Placement) error {
	cur := el.Attr("rot")
	old, err := notation.ParseRotation(cur)
	if err != nil {
		return &eagle.AttributeError{Tag: el.Tag, Attr: "rot", Value: cur, Err: err}
	}
	rot := notation.Degrees(pl.Rotation)
	rot.Mirror, rot.Spin = old.Mirror, old.Spin

	eagle.Element{
		Name: el.Attr("name"),
		X:    pl.Position.X,
		Y:    pl.Position.Y,
		Rot:  rot,
	}.Place(el)
	return nil
}

// PlaceLEDs positions every element named D<n> on the LED ring. Other
// elements are left alone.
func (l *Layout) PlaceLEDs(doc *eagle.Document) error {
	placed := 0
	for _, el := range doc.Root.Iter("element") {
		name, err := el.Require("name")
		if err != nil {
			return err
		}
		if !strings.HasPrefix(name, LEDPrefix) {
			continue
		}
		idx, err := ringIndex(name, LEDPrefix)
		if err != nil {
			return err
		}
		pl := l.Params.PlaceLED(idx)
		Logger().Debug("placing LED", "name", name, "x", pl.Position.X, "y", pl.Position.Y, "rot", pl.Rotation)
		if err := place(el, pl); err != nil {
			return err
		}
		placed++
	}
	Logger().Info("placed LEDs", "count", placed)
	return nil
}

// PlaceResistors positions every element named R<n> between the LEDs and
// drops its NAME and VALUE label attributes so the silkscreen stays clear.
func (l *Layout) PlaceResistors(doc *eagle.Document) error {
	placed := 0
	for _, el := range doc.Root.Iter("element") {
		name, err := el.Require("name")
		if err != nil {
			return err
		}
		if !strings.HasPrefix(name, ResistorPrefix) {
			continue
		}
		idx, err := ringIndex(name, ResistorPrefix)
		if err != nil {
			return err
		}
		pl := l.Params.PlaceResistor(idx)
		Logger().Debug("placing resistor", "name", name, "x", pl.Position.X, "y", pl.Position.Y, "rot", pl.Rotation)
		if err := place(el, pl); err != nil {
			return err
		}
		el.RemoveFunc(func(n *eagle.Node) bool {
			if n.Tag != "attribute" {
				return false
			}
			switch n.Attr("name") {
			case "NAME", "VALUE":
				return true
			}
			return false
		})
		placed++
	}
	Logger().Info("placed resistors", "count", placed)
	return nil
}
