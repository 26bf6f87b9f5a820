package layout

import (
	"strconv"
	"strings"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"github.com/OpenTraceLab/ledring/pkg/ring"
)

// RouteBus regenerates the top-layer wiring of one supply net: a radial tap
// and a bus arc per ring position. Wires of the net on other layers are kept.
func (l *Layout) RouteBus(doc *eagle.Document, b ring.Bus) error {
	if _, err := l.signals(doc); err != nil {
		return err
	}
	signal := doc.Signal(b.Net)
	if signal == nil {
		return &LookupError{Kind: "signal", Name: b.Net}
	}

	removed := signal.RemoveFunc(func(n *eagle.Node) bool {
		return n.Tag == "wire" && n.OnLayer(eagle.LayerTop)
	})
	Logger().Info("removed bus wires", "net", b.Net, "count", removed)

	p := l.Params
	for n := 0; n < p.LEDs; n++ {
		signal.Append(
			l.wire(p.Tap(b, n), eagle.LayerTop, p.Widths.Tap),
			l.wire(p.Arc(b, n), eagle.LayerTop, p.Widths.Bus),
		)
	}
	Logger().Info("routed bus", "net", b.Net, "pad_radius", b.PadRadius, "bus_radius", b.BusRadius, "taps", p.LEDs)
	return nil
}

// RoutePower routes the VCC ring.
func (l *Layout) RoutePower(doc *eagle.Document) error {
	return l.RouteBus(doc, l.Params.PowerBus())
}

// RouteGround routes the GND ring.
func (l *Layout) RouteGround(doc *eagle.Document) error {
	return l.RouteBus(doc, l.Params.GroundBus())
}

// dataLinkPosition reports whether a net is one hop of the data chain, that
// is exactly two contacts, both on LED data pads. driven is set when one of
// them is a pad 1, and pos is then the ring position of that LED.
func dataLinkPosition(refs []eagle.ContactRef) (pos int, isLink, driven bool, err error) {
	if len(refs) != 2 {
		return 0, false, false, nil
	}
	for _, c := range refs {
		if !isDataPad(c) {
			return 0, false, false, nil
		}
	}
	for _, c := range refs {
		if c.Pad != DataPads[0] {
			continue
		}
		idx, err := ringIndex(c.Element, LEDPrefix)
		if err != nil {
			return 0, true, false, err
		}
		return idx - 1, true, true, nil
	}
	return 0, true, false, nil
}

// RouteDaisyChain replaces the wiring of every LED-to-LED data net with one
// straight trace from the driving LED's data-out pad to the next LED's
// data-in pad. Nets of any other shape are not touched.
func (l *Layout) RouteDaisyChain(doc *eagle.Document) error {
	signals, err := l.signals(doc)
	if err != nil {
		return err
	}

	routed := 0
	for _, signal := range signals.Elements("signal") {
		name := signal.Attr("name")
		refs, err := eagle.ContactRefs(signal)
		if err != nil {
			return err
		}
		pos, ok, driven, err := dataLinkPosition(refs)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if !driven {
			Logger().Warn("data net has no pad 1 contact, skipped", "net", name)
			continue
		}

		signal.RemoveFunc(func(n *eagle.Node) bool { return n.Tag == "wire" })
		signal.Append(l.wire(l.Params.DataLink(pos), eagle.LayerTop, l.Params.Widths.Data))
		Logger().Debug("routed data link", "net", name, "position", pos)
		routed++
	}
	Logger().Info("routed daisy chain", "links", routed)
	return nil
}

// RepairAirwires turns the unrouted wires of auto-named nets that only join
// LEDs into real top-layer traces.
func (l *Layout) RepairAirwires(doc *eagle.Document) error {
	signals, err := l.signals(doc)
	if err != nil {
		return err
	}

	fixed := 0
	for _, signal := range signals.Elements("signal") {
		name := signal.Attr("name")
		if !strings.HasPrefix(name, AutoNetPrefix) {
			continue
		}
		refs, err := eagle.ContactRefs(signal)
		if err != nil {
			return err
		}
		if !onlyLEDs(refs) {
			continue
		}
		for _, w := range signal.Iter("wire") {
			layer, err := w.Layer()
			if err != nil {
				return err
			}
			if layer == eagle.LayerTop {
				continue
			}
			w.SetFloat("width", l.Params.Widths.Data)
			w.Set("layer", strconv.Itoa(int(eagle.LayerTop)))
			w.Unset("extent")
			Logger().Debug("repaired airwire", "net", name, "from_layer", int(layer))
			fixed++
		}
	}
	Logger().Info("repaired airwires", "count", fixed)
	return nil
}

func onlyLEDs(refs []eagle.ContactRef) bool {
	if len(refs) == 0 {
		return false
	}
	for _, c := range refs {
		if !strings.HasPrefix(c.Element, LEDPrefix) {
			return false
		}
	}
	return true
}
