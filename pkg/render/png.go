package render

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/gogpu/gg"
	"gonum.org/v1/gonum/spatial/r2"
)

type ggCanvas struct {
	dc *gg.Context
}

func (c ggCanvas) path(pts []r2.Vec) {
	for i, p := range pts {
		if i == 0 {
			c.dc.MoveTo(p.X, p.Y)
		} else {
			c.dc.LineTo(p.X, p.Y)
		}
	}
}

func (c ggCanvas) Polyline(pts []r2.Vec, width float64, col color.NRGBA) error {
	c.path(pts)
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	return c.dc.Stroke()
}

func (c ggCanvas) Polygon(pts []r2.Vec, col color.NRGBA) error {
	c.path(pts)
	c.dc.ClosePath()
	c.dc.SetColor(col)
	return c.dc.Fill()
}

func (c ggCanvas) Circle(center r2.Vec, radius, width float64, col color.NRGBA) error {
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	return c.dc.Stroke()
}

func (c ggCanvas) Disc(center r2.Vec, radius float64, col color.NRGBA) error {
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.dc.SetColor(col)
	return c.dc.Fill()
}

// PNG renders s fitted into a width x height image and writes it as PNG.
func PNG(w io.Writer, s *Scene, width, height int, cfg *LayerConfig) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: bad image size %dx%d", width, height)
	}
	if cfg == nil {
		cfg = NewLayerConfig()
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.FromColor(cfg.Theme.Background))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	cam := NewCamera(width, height)
	cam.Fit(s.Bounds())
	if err := draw(ggCanvas{dc: dc}, cam, s, cfg); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return dc.EncodePNG(w)
}

// SavePNG renders s into the named file.
func SavePNG(path string, s *Scene, width, height int, cfg *LayerConfig) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return PNG(f, s, width, height, cfg)
}
