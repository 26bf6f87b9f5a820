package layout

import (
	"strconv"
	"strings"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"github.com/OpenTraceLab/ledring/pkg/ring"
)

// OutlineCurve is the bulge of every outer outline segment, in degrees.
const OutlineCurve = -90

// OutlineSegments is the number of curved segments of the outer boundary.
const OutlineSegments = 12

// Outline regenerates the board boundary on the dimension layer: the inner
// cut-out circle and a closed loop of curved segments on the outer radius.
func (l *Layout) Outline(doc *eagle.Document) error {
	plain, err := l.ClearLayer(doc, eagle.PathPlain, eagle.LayerDimension)
	if err != nil {
		return err
	}
	p := l.Params

	plain.Append(eagle.Circle{
		X:      p.Center.X,
		Y:      p.Center.Y,
		Radius: p.InnerRadius,
		Width:  p.Widths.Dimension,
		Layer:  eagle.LayerDimension,
	}.Node())

	pts := ring.OutlinePoints(p.Center, p.OuterRadius, OutlineSegments)
	for i, from := range pts {
		to := pts[(i+1)%len(pts)]
		plain.Append(eagle.Wire{
			X1: from.X, Y1: from.Y,
			X2: to.X, Y2: to.Y,
			Width: p.Widths.Dimension,
			Layer: eagle.LayerDimension,
			Curve: OutlineCurve,
		}.Node())
	}
	Logger().Info("generated outline", "segments", len(pts))
	return nil
}

// SolderMask regenerates the stop-mask openings of the edge pads.
func (l *Layout) SolderMask(doc *eagle.Document) error {
	plain, err := l.ClearLayer(doc, eagle.PathPlain, eagle.LayerTStop)
	if err != nil {
		return err
	}
	for _, w := range ring.Wedges(l.Params.Wedges) {
		plain.Append(l.polygon(l.Params.MaskOutline(w), eagle.LayerTStop))
	}
	Logger().Info("generated solder mask", "wedges", l.Params.Wedges)
	return nil
}

// CopperPads replaces every PAD<n> net with freshly generated copper wedges,
// one net per wedge.
func (l *Layout) CopperPads(doc *eagle.Document) error {
	signals, err := l.signals(doc)
	if err != nil {
		return err
	}

	removed := signals.RemoveFunc(func(n *eagle.Node) bool {
		return n.Tag == "signal" && strings.HasPrefix(n.Attr("name"), PadNetPrefix)
	})
	Logger().Info("removed pad nets", "count", removed)

	for _, w := range ring.Wedges(l.Params.Wedges) {
		signal := eagle.NewElement("signal", eagle.Attr{Name: "name", Value: PadNetName(w.Index)})
		signal.Append(l.polygon(l.Params.CopperOutline(w), eagle.LayerTop))
		signals.Append(signal)
	}
	Logger().Info("generated copper pads", "nets", l.Params.Wedges)
	return nil
}

// PadNetName is the name of the net holding edge pad i.
func PadNetName(i int) string {
	return PadNetPrefix + strconv.Itoa(i)
}
