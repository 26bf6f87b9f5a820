package render

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gonum.org/v1/gonum/spatial/r2"
)

// circleSegments is how many chords approximate an outlined circle.
const circleSegments = 64

type gioCanvas struct {
	gtx layout.Context
}

func pt(p r2.Vec) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}

func (c gioCanvas) Polyline(pts []r2.Vec, width float64, col color.NRGBA) error {
	if len(pts) < 2 {
		return nil
	}
	var path clip.Path
	path.Begin(c.gtx.Ops)
	path.MoveTo(pt(pts[0]))
	for _, p := range pts[1:] {
		path.LineTo(pt(p))
	}
	stroke := clip.Stroke{
		Path:  path.End(),
		Width: float32(width),
	}.Op()
	paint.FillShape(c.gtx.Ops, col, stroke)
	return nil
}

func (c gioCanvas) Polygon(pts []r2.Vec, col color.NRGBA) error {
	var path clip.Path
	path.Begin(c.gtx.Ops)
	for i, p := range pts {
		if i == 0 {
			path.MoveTo(pt(p))
		} else {
			path.LineTo(pt(p))
		}
	}
	path.Close()
	paint.FillShape(c.gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
	return nil
}

func (c gioCanvas) Circle(center r2.Vec, radius, width float64, col color.NRGBA) error {
	var path clip.Path
	path.Begin(c.gtx.Ops)
	for i := 0; i <= circleSegments; i++ {
		theta := 2 * math.Pi * float64(i) / circleSegments
		p := pt(r2.Add(center, r2.Scale(radius, r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)})))
		if i == 0 {
			path.MoveTo(p)
		} else {
			path.LineTo(p)
		}
	}
	path.Close()
	stroke := clip.Stroke{Path: path.End(), Width: float32(width)}.Op()
	paint.FillShape(c.gtx.Ops, col, stroke)
	return nil
}

func (c gioCanvas) Disc(center r2.Vec, radius float64, col color.NRGBA) error {
	stack := op.Affine(f32.Affine2D{}.Offset(pt(center))).Push(c.gtx.Ops)
	defer stack.Pop()

	r := int(math.Ceil(radius))
	rect := image.Rectangle{
		Min: image.Pt(-r, -r),
		Max: image.Pt(r, r),
	}
	paint.FillShape(c.gtx.Ops, col, clip.Ellipse(rect).Op(c.gtx.Ops))
	return nil
}

// Draw paints the scene into a gio frame filling gtx.Constraints.Max.
func Draw(gtx layout.Context, cam *Camera, s *Scene, cfg *LayerConfig) layout.Dimensions {
	if cfg == nil {
		cfg = NewLayerConfig()
	}
	size := gtx.Constraints.Max
	cam.UpdateScreenSize(size.X, size.Y)

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	paint.Fill(gtx.Ops, cfg.Theme.Background)
	// gio backends never fail to record ops.
	_ = draw(gioCanvas{gtx: gtx}, cam, s, cfg)
	area.Pop()

	return layout.Dimensions{Size: size}
}
