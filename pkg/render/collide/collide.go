// Package collide implements the screen-space predicates used to accept or
// reject a candidate label position.
//
// Both predicates are O(1) and side-effect free. A single diagram holds tens
// of segments and a handful of labels, so callers test candidates against
// every obstacle directly rather than through a spatial index.
package collide

import (
	"math"

	"github.com/matzehuels/geodraw/pkg/geom"
)

// Rect is an axis-aligned rectangle in screen space. X and Y are the
// top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Segment is a screen-space line segment.
type Segment struct {
	A geom.Point `json:"a"`
	B geom.Point `json:"b"`
}

// RectAround returns the w × h rectangle centred on c.
func RectAround(c geom.Point, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Center returns the centre of r.
func (r Rect) Center() geom.Point { return geom.Pt(r.X+r.W/2, r.Y+r.H/2) }

// Inflate grows r by d on every side. Negative d shrinks it.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Contains reports whether p lies strictly inside r.
func (r Rect) Contains(p geom.Point) bool {
	return p.X > r.X && p.X < r.X+r.W && p.Y > r.Y && p.Y < r.Y+r.H
}

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	x0, y0 := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	x1, y1 := math.Max(r.X+r.W, o.X+o.W), math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Bounds returns the bounding rectangle of pts.
func Bounds(pts []geom.Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	x0, y0, x1, y1 := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		x0, x1 = math.Min(x0, p.X), math.Max(x1, p.X)
		y0, y1 = math.Min(y0, p.Y), math.Max(y1, p.Y)
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// SegmentIntersectsRect reports whether segment ab passes through the
// interior of r after r is expanded by pad on every side. Segments that only
// touch an edge or a corner do not intersect.
func SegmentIntersectsRect(a, b geom.Point, r Rect, pad float64) bool {
	r = r.Inflate(pad)
	t0, t1, ok := clip(a, b, r)
	if !ok {
		return false
	}
	// The part of ab inside a convex box is a chord; it meets the interior
	// exactly when its midpoint does.
	mid := a.Add(b.Sub(a).Scale((t0 + t1) / 2))
	return r.Contains(mid)
}

// clip returns the parameter range [t0, t1] of ab that lies within the
// closed rectangle r (Liang-Barsky). ok is false when ab misses r.
func clip(a, b geom.Point, r Rect) (t0, t1 float64, ok bool) {
	d := b.Sub(a)
	edges := [4][2]float64{
		{-d.X, a.X - r.X},
		{d.X, r.X + r.W - a.X},
		{-d.Y, a.Y - r.Y},
		{d.Y, r.Y + r.H - a.Y},
	}
	t0, t1 = 0, 1
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return t0, t1, true
}

// RectsOverlap reports whether a, grown by grow on every side, shares area
// with b. Rectangles that only touch do not overlap.
func RectsOverlap(a, b Rect, grow float64) bool {
	a = a.Inflate(grow)
	return a.X < b.X+b.W && a.X+a.W > b.X &&
		a.Y < b.Y+b.H && a.Y+a.H > b.Y
}
