package kicadexport

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"github.com/OpenTraceLab/ledring/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

const board = `<?xml version="1.0" encoding="utf-8"?>
<eagle version="9.6.2">
<drawing>
<board>
<plain>
<circle x="28" y="28" radius="19" width="0.1" layer="20"/>
<wire x1="56" y1="28" x2="28" y2="0" width="0.1" layer="20" curve="-90"/>
<polygon width="0.01" layer="29">
<vertex x="50" y="26"/>
<vertex x="50" y="30"/>
<vertex x="56" y="28"/>
</polygon>
</plain>
<signals>
<signal name="VCC">
<wire x1="1" y1="2" x2="3" y2="4" width="0.3" layer="1"/>
<wire x1="52" y1="28" x2="28" y2="52" width="0.9" layer="1" curve="90"/>
</signal>
<signal name="GND">
<wire x1="0" y1="0" x2="1" y2="0" width="0.9" layer="16"/>
</signal>
<signal name="N$1">
<wire x1="5" y1="5" x2="6" y2="6" width="0" layer="19"/>
</signal>
</signals>
</board>
</drawing>
</eagle>
`

func scene(t *testing.T) *render.Scene {
	t.Helper()
	doc, err := eagle.ParseString(board)
	require.NoError(t, err)
	s, err := render.BuildScene(doc)
	require.NoError(t, err)
	return s
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	stats, err := Write(&buf, scene(t), Options{})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"segment":   2,
		"arc":       1,
		"gr_arc":    1,
		"gr_circle": 1,
		"gr_poly":   1,
	}, stats.Items)
	assert.Equal(t, 2, stats.Nets)
	assert.Equal(t, 1, stats.Skipped, "airwire on layer 19")

	text := buf.String()
	assert.True(t, strings.HasPrefix(text, "(kicad_pcb (version 20221018) (generator ledring)"))
	// Eagle (1, 2) lands at (100+1, 150-2).
	assert.Contains(t, text, `(segment (start 101 148) (end 103 146) (width 0.3) (layer "F.Cu") (net 2))`)
	assert.Contains(t, text, `(layer "B.Cu") (net 1)`)
	assert.Contains(t, text, `(gr_circle (center 128 122) (end 147 122)`)
	assert.Contains(t, text, `(fill solid) (layer "F.Mask")`)
	assert.NotContains(t, text, "N$1")
}

func TestWriteOrigin(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(&buf, scene(t), Options{Origin: &r2.Vec{X: 10, Y: 10}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(segment (start 11 8) (end 13 6)")

	buf.Reset()
	_, err = Write(&buf, scene(t), Options{Origin: &r2.Vec{}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(segment (start 1 -2) (end 3 -4)")
}

// badNet is a scene whose net name unbalances the output.
func badNet() *render.Scene {
	return &render.Scene{Strokes: []render.Stroke{{
		Layer:  eagle.LayerTop,
		Net:    "A)",
		Width:  0.2,
		Points: []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 1}},
	}}}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ring.kicad_pcb")

	stats, err := WriteFile(path, scene(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Nets)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	b, err := Read(f)
	require.NoError(t, err)
	assert.Equal(t, stats.Items, b.Items)

	bad := filepath.Join(dir, "bad.kicad_pcb")
	_, err = WriteFile(bad, badNet(), Options{})
	require.ErrorIs(t, err, ErrMalformed)
	_, err = os.Stat(bad)
	assert.True(t, os.IsNotExist(err), "no file left after a failed export")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRead(t *testing.T) {
	var buf bytes.Buffer
	stats, err := Write(&buf, scene(t), Options{})
	require.NoError(t, err)

	b, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, FileVersion, b.Version)
	assert.Equal(t, Generator, b.Generator)
	assert.Equal(t, []string{"", "GND", "VCC"}, b.Nets)
	assert.Equal(t, stats.Items, b.Items)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not a board", `(kicad_sch (version 1))`},
		{"unterminated list", `(kicad_pcb (version 1)`},
		{"unterminated string", `(kicad_pcb (net 0 "abc))`},
		{"stray paren", `)`},
		{"net out of order", `(kicad_pcb (net 1 "VCC"))`},
		{"bad version", `(kicad_pcb (version seven))`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validate([]byte(`(kicad_pcb (version 1))`)))
	assert.ErrorIs(t, validate([]byte(`kicad_pcb`)), ErrMalformed)
	assert.ErrorIs(t, validate([]byte(`(kicad_pcb))`)), ErrMalformed)
	assert.ErrorIs(t, validate([]byte(`(kicad_pcb (net 1 "x")`)), ErrMalformed)

	var buf bytes.Buffer
	_, err := Write(&buf, badNet(), Options{})
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Zero(t, buf.Len())
}

func TestReadQuotedNames(t *testing.T) {
	b, err := Read(strings.NewReader(`(kicad_pcb (version 20221018) (generator "led ring")
  (net 0 "")
  (net 1 "LED DATA")
  (segment (start 0 0) (end 1 1) (width 0.2) (layer "F.Cu") (net 1))
)`))
	require.NoError(t, err)
	assert.Equal(t, "led ring", b.Generator)
	assert.Equal(t, []string{"", "LED DATA"}, b.Nets)
	assert.Equal(t, map[string]int{"segment": 1}, b.Items)
}
