package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position (or vector) in data space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Line is the infinite line through two points.
type Line struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

func (p Point) vec() r2.Vec  { return r2.Vec{X: p.X, Y: p.Y} }
func fromVec(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Add returns the vector sum p + q.
func (p Point) Add(q Point) Point { return fromVec(r2.Add(p.vec(), q.vec())) }

// Sub returns the vector difference p - q.
func (p Point) Sub(q Point) Point { return fromVec(r2.Sub(p.vec(), q.vec())) }

// Scale returns p multiplied by s.
func (p Point) Scale(s float64) Point { return fromVec(r2.Scale(s, p.vec())) }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return r2.Dot(p.vec(), q.vec()) }

// Cross returns the z component of the cross product p × q.
func (p Point) Cross(q Point) float64 { return r2.Cross(p.vec(), q.vec()) }

// Len returns the Euclidean length of p.
func (p Point) Len() float64 { return r2.Norm(p.vec()) }

// Dist returns the distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }

// Unit returns p scaled to length 1, or the zero vector when p is zero.
func (p Point) Unit() Point {
	if p.Len() == 0 {
		return Point{}
	}
	return fromVec(r2.Unit(p.vec()))
}

// Perp returns p rotated by +90°.
func (p Point) Perp() Point { return Point{X: -p.Y, Y: p.X} }

// Angle returns the direction of p in radians, as math.Atan2.
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }

// Near reports whether p and q are within tol of each other on both axes.
func (p Point) Near(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

// Centroid returns the arithmetic mean of pts. The zero point is returned
// for an empty slice.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sum Point
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}

// Dir returns the unit vector pointing from a to b.
func Dir(a, b Point) Point { return b.Sub(a).Unit() }
