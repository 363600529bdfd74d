package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DegenerateAxisError is returned when a reflection line has zero length.
type DegenerateAxisError struct {
	From, To Point
}

func (e *DegenerateAxisError) Error() string {
	return fmt.Sprintf("reflection axis is degenerate: (%g, %g) to (%g, %g)", e.From.X, e.From.Y, e.To.X, e.To.Y)
}

// Translate returns p moved by v.
func Translate(p, v Point) Point { return p.Add(v) }

// Rotate returns p rotated about center by degrees. Positive angles turn
// counter-clockwise in data space (Y up).
func Rotate(p, center Point, degrees float64) Point {
	return fromVec(r2.Rotate(p.vec(), degrees*math.Pi/180, center.vec()))
}

// Reflect mirrors p across the line through from and to. The offset from
// the line is split into components parallel and perpendicular to the line
// and the perpendicular part is negated.
func Reflect(p, from, to Point) (Point, error) {
	axis := to.Sub(from)
	if axis.Len() == 0 {
		return Point{}, &DegenerateAxisError{From: from, To: to}
	}
	u := axis.Unit()
	rel := p.Sub(from)
	parallel := u.Scale(rel.Dot(u))
	perpendicular := rel.Sub(parallel)
	return from.Add(parallel).Sub(perpendicular), nil
}

// Dilate scales p away from center by factor k. k == 1 is the identity,
// k == 0 collapses onto center and negative factors pass through center.
func Dilate(p, center Point, k float64) Point {
	return center.Add(p.Sub(center).Scale(k))
}
