// Package viewport maps data-space coordinates onto a drawing area.
//
// [Fit] computes one uniform scale for both axes so the bounding box of the
// given points, plus a padding margin, fills the drawing area without
// distortion. The content is centred along the axis with slack.
//
//	vp := viewport.Fit(points, 480, 400, 32, true)
//	x, y := vp.ToScreenX(p.X), vp.ToScreenY(p.Y)
//
// Diagrams drawn on a Cartesian plane invert Y (data "up" is a smaller screen
// Y); diagrams authored directly in screen-like coordinates do not.
package viewport

import (
	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/geodraw/pkg/geom"
)

// Projector is an immutable data-to-screen mapping.
type Projector struct {
	scale   float64
	minX    float64
	maxY    float64
	minY    float64
	offX    float64
	offY    float64
	invertY bool
}

// Fit returns the projector that fits points inside a width × height area
// with padding on every side. When the bounding box has zero extent on an
// axis, that axis contributes a scale of 1 instead of dividing by zero.
func Fit(points []geom.Point, width, height, padding float64, invertY bool) Projector {
	availW := max(0, width-2*padding)
	availH := max(0, height-2*padding)

	if len(points) == 0 {
		return Projector{scale: 1, offX: width / 2, offY: height / 2, invertY: invertY}
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)
	spanX, spanY := maxX-minX, maxY-minY

	sx, sy := 1.0, 1.0
	if spanX > 0 {
		sx = availW / spanX
	}
	if spanY > 0 {
		sy = availH / spanY
	}
	scale := min(sx, sy)

	return Projector{
		scale:   scale,
		minX:    minX,
		minY:    minY,
		maxY:    maxY,
		offX:    padding + (availW-spanX*scale)/2,
		offY:    padding + (availH-spanY*scale)/2,
		invertY: invertY,
	}
}

// Scale returns screen units per data unit.
func (p Projector) Scale() float64 { return p.scale }

// InvertY reports whether data Y grows upward on screen.
func (p Projector) InvertY() bool { return p.invertY }

// ToScreenX maps a data X coordinate to screen space.
func (p Projector) ToScreenX(x float64) float64 {
	return p.offX + (x-p.minX)*p.scale
}

// ToScreenY maps a data Y coordinate to screen space.
func (p Projector) ToScreenY(y float64) float64 {
	if p.invertY {
		return p.offY + (p.maxY-y)*p.scale
	}
	return p.offY + (y-p.minY)*p.scale
}

// ToScreen maps a data point to screen space.
func (p Projector) ToScreen(pt geom.Point) geom.Point {
	return geom.Pt(p.ToScreenX(pt.X), p.ToScreenY(pt.Y))
}

// ToScreenAll maps every point in pts.
func (p Projector) ToScreenAll(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, pt := range pts {
		out[i] = p.ToScreen(pt)
	}
	return out
}
