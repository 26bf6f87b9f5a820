package eagle

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleBoard = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE eagle SYSTEM "eagle.dtd">
<eagle version="9.6.2">
<drawing>
<board>
<plain>
<wire x1="0" y1="0" x2="10" y2="0" width="0.1" layer="20"/>
<circle x="5" y="5" radius="2" width="0.1" layer="21"/>
<!-- keep me -->
</plain>
<elements>
<element name="D1" library="led" package="5050" value="WS2812" x="1.5" y="2.5" rot="MR90"/>
</elements>
<signals>
<signal name="VCC">
<contactref element="D1" pad="4"/>
<wire x1="1" y1="1" x2="2" y2="2" width="0.3" layer="1" curve="-6"/>
</signal>
<signal name="GND &amp; shield"/>
</signals>
</board>
</drawing>
</eagle>
`

func TestParseRoundTrip(t *testing.T) {
	doc, err := ParseString(sampleBoard)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}

	got := string(doc.Bytes())
	if got != sampleBoard {
		t.Errorf("round trip mismatch\n got: %q\nwant: %q", got, sampleBoard)
	}
}

func TestParseRejectsNonEagle(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong root", "<kicad/>"},
		{"unbalanced", "<eagle><drawing></eagle>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseString(tt.input); err == nil {
				t.Errorf("ParseString(%q) expected error", tt.input)
			}
		})
	}
}

func TestFind(t *testing.T) {
	doc, err := ParseString(sampleBoard)
	if err != nil {
		t.Fatal(err)
	}

	if doc.Plain() == nil || doc.Plain().Tag != "plain" {
		t.Fatalf("Plain() = %v, want <plain>", doc.Plain())
	}
	if doc.Find("drawing/board/missing") != nil {
		t.Errorf("Find() of missing path should be nil")
	}
	if got := doc.Signal("VCC"); got == nil || got.Attr("name") != "VCC" {
		t.Errorf("Signal(VCC) = %v", got)
	}
	if got := doc.Signal("GND & shield"); got == nil {
		t.Errorf("Signal() did not unescape attribute value")
	}
	if doc.Signal("NOPE") != nil {
		t.Errorf("Signal(NOPE) should be nil")
	}
	if n := len(doc.Root.Iter("wire")); n != 2 {
		t.Errorf("Iter(wire) found %d wires, want 2", n)
	}
}

func TestRemoveFunc(t *testing.T) {
	doc, err := ParseString(sampleBoard)
	if err != nil {
		t.Fatal(err)
	}
	plain := doc.Plain()

	removed := plain.RemoveFunc(func(n *Node) bool { return n.OnLayer(LayerDimension) })
	if removed != 1 {
		t.Fatalf("RemoveFunc() removed %d, want 1", removed)
	}
	if again := plain.RemoveFunc(func(n *Node) bool { return n.OnLayer(LayerDimension) }); again != 0 {
		t.Errorf("second RemoveFunc() removed %d, want 0", again)
	}
	if len(plain.Elements("circle")) != 1 {
		t.Errorf("circle on another layer was removed")
	}
	if !strings.Contains(string(doc.Bytes()), "<!-- keep me -->") {
		t.Errorf("comment was dropped")
	}
}

func TestAttributes(t *testing.T) {
	n := NewElement("wire", Attr{"x1", "1.5"}, Attr{"layer", "x"})

	if v, err := n.Float("x1"); err != nil || v != 1.5 {
		t.Errorf("Float(x1) = %v, %v", v, err)
	}

	_, err := n.Float("y1")
	var attrErr *AttributeError
	if !errors.As(err, &attrErr) || attrErr.Attr != "y1" {
		t.Errorf("Float(y1) error = %v, want AttributeError for y1", err)
	}

	if _, err := n.Layer(); !errors.As(err, &attrErr) {
		t.Errorf("Layer() error = %v, want AttributeError", err)
	}

	n.Set("x1", "2")
	n.Set("curve", "90")
	if n.Attr("x1") != "2" || n.Attr("curve") != "90" {
		t.Errorf("Set() did not update attributes: %+v", n.Attrs)
	}
	if !n.Unset("curve") || n.Unset("curve") {
		t.Errorf("Unset() should remove exactly once")
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{28, "28"},
		{0.1524, "0.1524"},
		{17.250000000000007, "17.25"},
		{-1e-12, "0"},
		{46.619546181365436, "46.619546"},
		{-90, "-90"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecords(t *testing.T) {
	w := Wire{X1: 1, Y1: 2, X2: 3, Y2: 4, Width: 0.9, Layer: LayerTop, Curve: 6}
	got, err := WireFromNode(w.Node())
	if err != nil || got != w {
		t.Errorf("WireFromNode(Node()) = %+v, %v; want %+v", got, err, w)
	}
	if _, ok := (Wire{Layer: LayerTop}).Node().Get("curve"); ok {
		t.Errorf("straight wire should not carry a curve attribute")
	}

	c := Circle{X: 28, Y: 28, Radius: 19, Width: 0.1, Layer: LayerDimension}
	if gotC, err := CircleFromNode(c.Node()); err != nil || gotC != c {
		t.Errorf("CircleFromNode(Node()) = %+v, %v", gotC, err)
	}

	p := Polygon{Width: 0.01, Layer: LayerTStop, Vertices: []Vertex{{1, 2}, {3, 4}, {5, 6}}}
	gotP, err := PolygonFromNode(p.Node())
	if err != nil || len(gotP.Vertices) != 3 || gotP.Vertices[2] != (Vertex{5, 6}) {
		t.Errorf("PolygonFromNode(Node()) = %+v, %v", gotP, err)
	}

	doc, err := ParseString(sampleBoard)
	if err != nil {
		t.Fatal(err)
	}
	el, err := ElementFromNode(doc.Root.Iter("element")[0])
	if err != nil {
		t.Fatalf("ElementFromNode() error: %v", err)
	}
	if el.Name != "D1" || el.X != 1.5 || !el.Rot.Mirror || el.Rot.Angle != 90 {
		t.Errorf("ElementFromNode() = %+v", el)
	}

	refs, err := ContactRefs(doc.Signal("VCC"))
	if err != nil || len(refs) != 1 || refs[0] != (ContactRef{Element: "D1", Pad: "4"}) {
		t.Errorf("ContactRefs() = %+v, %v", refs, err)
	}
}

func TestWriteFileReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.brd")
	if err := os.WriteFile(path, []byte(sampleBoard), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	doc.Plain().Append(Circle{X: 1, Y: 1, Radius: 1, Width: 0.1, Layer: LayerDimension}.Node())

	if err := doc.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("WriteFile() left %d files behind, want 1", len(entries))
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("WriteFile() mode = %v, want 0600", info.Mode().Perm())
	}

	reloaded, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Plain().Elements("circle")) != 2 {
		t.Errorf("saved document lost the appended circle")
	}
}
