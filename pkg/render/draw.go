package render

import (
	"image/color"
	"sort"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"gonum.org/v1/gonum/spatial/r2"
)

// Minimum on-screen sizes, in pixels, so hairlines stay visible.
const (
	minStrokePx = 1.0
	markerPx    = 3.0
)

// canvas is a drawing backend working in screen pixels.
type canvas interface {
	Polyline(pts []r2.Vec, width float64, c color.NRGBA) error
	Polygon(pts []r2.Vec, c color.NRGBA) error
	Circle(center r2.Vec, radius, width float64, c color.NRGBA) error
	Disc(center r2.Vec, radius float64, c color.NRGBA) error
}

// layersOf returns the layers used in s in drawing order.
func layersOf(s *Scene) []eagle.Layer {
	seen := map[eagle.Layer]bool{}
	for _, st := range s.Strokes {
		seen[st.Layer] = true
	}
	for _, c := range s.Circles {
		seen[c.Layer] = true
	}
	for _, p := range s.Polygons {
		seen[p.Layer] = true
	}
	layers := make([]eagle.Layer, 0, len(seen))
	for l := range seen {
		layers = append(layers, l)
	}
	sort.Slice(layers, func(i, j int) bool {
		ri, rj := layerRank(layers[i]), layerRank(layers[j])
		if ri != rj {
			return ri < rj
		}
		return layers[i] < layers[j]
	})
	return layers
}

func toScreen(cam *Camera, pts []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, len(pts))
	for i, p := range pts {
		x, y := cam.WorldToScreen(p)
		out[i] = r2.Vec{X: x, Y: y}
	}
	return out
}

// draw paints the visible layers of s, then the element markers.
func draw(cv canvas, cam *Camera, s *Scene, cfg *LayerConfig) error {
	theme := cfg.Theme
	for _, l := range layersOf(s) {
		if !cfg.IsVisible(l) {
			continue
		}
		col := theme.LayerColor(l)

		for _, p := range s.Polygons {
			if p.Layer != l || len(p.Points) < 3 {
				continue
			}
			if err := cv.Polygon(toScreen(cam, p.Points), col); err != nil {
				return err
			}
		}
		for _, c := range s.Circles {
			if c.Layer != l {
				continue
			}
			x, y := cam.WorldToScreen(c.Center)
			center := r2.Vec{X: x, Y: y}
			var err error
			if c.Width == 0 {
				err = cv.Disc(center, c.Radius*cam.Zoom, col)
			} else {
				err = cv.Circle(center, c.Radius*cam.Zoom, cam.PixelWidth(c.Width, minStrokePx), col)
			}
			if err != nil {
				return err
			}
		}
		for _, st := range s.Strokes {
			if st.Layer != l {
				continue
			}
			if err := cv.Polyline(toScreen(cam, st.Points), cam.PixelWidth(st.Width, minStrokePx), col); err != nil {
				return err
			}
		}
	}

	if !cfg.Markers {
		return nil
	}
	for _, m := range s.Markers {
		x, y := cam.WorldToScreen(m.Position)
		if err := cv.Disc(r2.Vec{X: x, Y: y}, markerPx, theme.Marker); err != nil {
			return err
		}
	}
	return nil
}
