package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"github.com/OpenTraceLab/ledring/pkg/ring"
)

// boardOptions tweak the synthetic board.
type boardOptions struct {
	noPower   bool
	noGround  bool
	noSignals bool
	extra     string // raw XML appended to <elements>
}

// ringBoard builds an n LED board in the shape of the production file: LEDs
// chained pad 1 to the previous LED's pad 3, supply nets with stale wiring on
// two layers, one resistor and an outdated edge pad net.
func ringBoard(n int, opt boardOptions) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE eagle SYSTEM "eagle.dtd">
<eagle version="9.6.2">
<drawing>
<board>
<plain>
<wire x1="0" y1="0" x2="56" y2="0" width="0.1" layer="20"/>
<circle x="28" y="28" radius="5" width="0.2" layer="21"/>
<!-- logo -->
<polygon width="0.01" layer="29">
<vertex x="0" y="0"/>
<vertex x="1" y="0"/>
<vertex x="1" y="1"/>
</polygon>
</plain>
<elements>
`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "<element name=\"D%d\" library=\"led\" package=\"5050\" value=\"WS2812B\" x=\"0\" y=\"0\"/>\n", i)
	}
	b.WriteString(`<element name="R1" library="rcl" package="0402" value="330" x="0" y="0" rot="R90">
<attribute name="NAME" x="1" y="1" size="0.5" layer="25"/>
<attribute name="VALUE" x="1" y="2" size="0.5" layer="27"/>
<attribute name="MPN" value="RC0402" display="off"/>
</element>
<element name="U1" library="con" package="PAD" value="" x="3" y="4"/>
`)
	b.WriteString(opt.extra)
	b.WriteString("</elements>\n")

	if !opt.noSignals {
		b.WriteString("<signals>\n")
		if !opt.noPower {
			b.WriteString(`<signal name="VCC">
<contactref element="D1" pad="4"/>
<wire x1="1" y1="1" x2="2" y2="2" width="0.3" layer="1"/>
<wire x1="1" y1="1" x2="2" y2="2" width="0.3" layer="16"/>
</signal>
`)
		}
		if !opt.noGround {
			b.WriteString(`<signal name="GND">
<contactref element="D1" pad="2"/>
<wire x1="3" y1="3" x2="4" y2="4" width="0.3" layer="1" curve="6"/>
</signal>
`)
		}
		for i := 1; i <= n; i++ {
			prev := i - 1
			if prev == 0 {
				prev = n
			}
			fmt.Fprintf(&b, "<signal name=\"N$%d\">\n<contactref element=\"D%d\" pad=\"1\"/>\n<contactref element=\"D%d\" pad=\"3\"/>\n<wire x1=\"0\" y1=\"0\" x2=\"1\" y2=\"1\" width=\"0\" layer=\"19\" extent=\"1-16\"/>\n</signal>\n", i, i, prev)
		}
		b.WriteString(`<signal name="DIN">
<contactref element="U1" pad="1"/>
<contactref element="R1" pad="1"/>
<contactref element="D1" pad="3"/>
<wire x1="5" y1="5" x2="6" y2="6" width="0.2" layer="1"/>
</signal>
<signal name="PAD3">
<polygon width="0.01" layer="1">
<vertex x="0" y="0"/>
<vertex x="1" y="0"/>
<vertex x="1" y="1"/>
</polygon>
</signal>
`)
		b.WriteString("</signals>\n")
	}
	b.WriteString("</board>\n</drawing>\n</eagle>\n")
	return b.String()
}

func parseBoard(t *testing.T, src string) *eagle.Document {
	t.Helper()
	doc, err := eagle.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	return doc
}

func newLayout() *Layout {
	return New(ring.DefaultParams())
}

func wiresOf(t *testing.T, signal *eagle.Node, layer eagle.Layer) []eagle.Wire {
	t.Helper()
	var ws []eagle.Wire
	for _, n := range signal.Elements("wire") {
		if !n.OnLayer(layer) {
			continue
		}
		w, err := eagle.WireFromNode(n)
		if err != nil {
			t.Fatalf("WireFromNode() error: %v", err)
		}
		ws = append(ws, w)
	}
	return ws
}

func element(t *testing.T, doc *eagle.Document, name string) *eagle.Node {
	t.Helper()
	for _, n := range doc.Root.Iter("element") {
		if n.Attr("name") == name {
			return n
		}
	}
	t.Fatalf("element %s not found", name)
	return nil
}
