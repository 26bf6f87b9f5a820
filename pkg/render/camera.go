package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Camera maps board millimetres to screen pixels. Board Y grows upward,
// screen Y downward, so Y is inverted.
type Camera struct {
	// Center position in world coordinates (mm)
	Center r2.Vec

	// Zoom level (pixels per mm)
	Zoom float64

	// Screen dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int

	// View controls
	FlipView bool    // true = mirrored view, as seen from the bottom side
	Rotation float64 // degrees

	// View rotates and flips around this point (mm)
	RotationCenter r2.Vec
}

// NewCamera creates a camera at 10 px/mm.
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         10.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts world coordinates (mm) to screen coordinates (pixels)
func (c *Camera) WorldToScreen(pos r2.Vec) (float64, float64) {
	pos = c.applyViewTransform(pos)

	x := (pos.X-c.Center.X)*c.Zoom + float64(c.ScreenWidth)/2.0
	y := (pos.Y-c.Center.Y)*c.Zoom + float64(c.ScreenHeight)/2.0

	return x, float64(c.ScreenHeight) - y
}

// ScreenToWorld converts screen coordinates (pixels) to world coordinates (mm)
func (c *Camera) ScreenToWorld(screenX, screenY float64) r2.Vec {
	y := float64(c.ScreenHeight) - screenY

	x := (screenX-float64(c.ScreenWidth)/2.0)/c.Zoom + c.Center.X
	y = (y-float64(c.ScreenHeight)/2.0)/c.Zoom + c.Center.Y

	return c.applyInverseViewTransform(r2.Vec{X: x, Y: y})
}

// Pan moves the camera by screen pixel offsets
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.Center.X -= deltaX / c.Zoom
	c.Center.Y += deltaY / c.Zoom
}

// ZoomAt zooms in/out keeping the world point under the given screen position
// fixed. factor > 1 zooms in.
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ScreenToWorld(screenX, screenY)

	c.Zoom *= factor
	if c.Zoom < 0.1 {
		c.Zoom = 0.1
	}
	if c.Zoom > 1000.0 {
		c.Zoom = 1000.0
	}

	after := c.ScreenToWorld(screenX, screenY)
	c.Center = r2.Add(c.Center, r2.Sub(before, after))
}

// Fit centres b and zooms so it fills 90% of the screen.
func (c *Camera) Fit(b Bounds) {
	size := b.Size()
	if b.Empty() || size.X <= 0 || size.Y <= 0 {
		return
	}

	c.Center = r2.Scale(0.5, r2.Add(b.Min, b.Max))
	c.RotationCenter = c.Center

	zoomX := float64(c.ScreenWidth) * 0.9 / size.X
	zoomY := float64(c.ScreenHeight) * 0.9 / size.Y
	c.Zoom = math.Min(zoomX, zoomY)
}

// UpdateScreenSize updates camera when window is resized
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}

// Flip toggles the view flip state (mirrored/normal)
func (c *Camera) Flip() {
	c.FlipView = !c.FlipView
}

// Rotate rotates the view by the given degrees
func (c *Camera) Rotate(degrees float64) {
	c.Rotation = math.Mod(c.Rotation+degrees, 360)
	if c.Rotation < 0 {
		c.Rotation += 360
	}
}

func (c *Camera) applyViewTransform(pos r2.Vec) r2.Vec {
	p := r2.Sub(pos, c.RotationCenter)
	if c.Rotation != 0 {
		p = rotate(p, c.Rotation*math.Pi/180.0)
	}
	if c.FlipView {
		p.X = -p.X
	}
	return r2.Add(p, c.RotationCenter)
}

func (c *Camera) applyInverseViewTransform(pos r2.Vec) r2.Vec {
	p := r2.Sub(pos, c.RotationCenter)
	if c.FlipView {
		p.X = -p.X
	}
	if c.Rotation != 0 {
		p = rotate(p, -c.Rotation*math.Pi/180.0)
	}
	return r2.Add(p, c.RotationCenter)
}

func rotate(p r2.Vec, rad float64) r2.Vec {
	cos, sin := math.Cos(rad), math.Sin(rad)
	return r2.Vec{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}

// PixelWidth converts a width in mm to pixels, at least floor.
func (c *Camera) PixelWidth(mm, floor float64) float64 {
	return math.Max(mm*c.Zoom, floor)
}
