package placement

import (
	"math"

	"github.com/matzehuels/geodraw/pkg/geom"
	"github.com/matzehuels/geodraw/pkg/render/collide"
)

// Base offsets between an anchor and the nearest edge of its label box.
const (
	VertexOffset = 8.0
	EdgeOffset   = 6.0
	ShapeOffset  = 10.0
)

// antiparallelTol is the bisector length below which the two incident edges
// of a vertex are treated as a straight line.
const antiparallelTol = 1e-6

// Side selects where a shape label goes relative to the shape's bounds.
type Side int

const (
	Above Side = iota
	Below
)

func (s Side) String() string {
	if s == Below {
		return "below"
	}
	return "above"
}

func (s Side) other() Side {
	if s == Above {
		return Below
	}
	return Above
}

// halfExtent is the distance from the centre of a w × h box to its boundary
// along unit direction d.
func halfExtent(d geom.Point, w, h float64) float64 {
	return math.Abs(d.X)*w/2 + math.Abs(d.Y)*h/2
}

// awayFrom flips d when it points toward target as seen from origin.
func awayFrom(d, origin, target geom.Point) geom.Point {
	if d.Dot(target.Sub(origin)) > 0 {
		return d.Scale(-1)
	}
	return d
}

// OutwardBisector returns the unit bisector of the corner at vertex, oriented
// away from centroid. When the incident edges are nearly antiparallel it
// falls back to the edge normal.
func OutwardBisector(vertex, prev, next, centroid geom.Point) geom.Point {
	u1 := geom.Dir(vertex, prev)
	u2 := geom.Dir(vertex, next)
	b := u1.Add(u2)
	if b.Len() < antiparallelTol {
		b = u1.Perp()
	}
	return awayFrom(b.Unit(), vertex, centroid)
}

// VertexLabel places a w × h label outside the corner at vertex and records
// it in ix.
func VertexLabel(ix *Index, vertex, prev, next, centroid geom.Point, w, h float64) Candidate {
	return PointLabel(ix, vertex, OutwardBisector(vertex, prev, next, centroid), w, h)
}

// PointLabel places a w × h label beside anchor in unit direction dir,
// stepping sideways when that spot is taken, and records it in ix.
func PointLabel(ix *Index, anchor, dir geom.Point, w, h float64) Candidate {
	start := anchor.Add(dir.Scale(VertexOffset + halfExtent(dir, w, h)))
	c := Tangential(start, dir.Perp(), VertexBudget, ix.Probe(w, h))
	ix.AddRect(collide.RectAround(c.Center, w, h))
	return c
}

// Near places a w × h label as close to start as the search allows,
// stepping perpendicular to dir, and records it in ix.
func Near(ix *Index, start, dir geom.Point, w, h float64) Candidate {
	c := Tangential(start, dir.Perp(), VertexBudget, ix.Probe(w, h))
	ix.AddRect(collide.RectAround(c.Center, w, h))
	return c
}

// EdgeLabel places a w × h label beside the edge ab, on the side away from
// centroid, sliding along the edge when the first spot is taken. A
// zero-length edge has no normal; it returns ok=false and records nothing.
func EdgeLabel(ix *Index, a, b, centroid geom.Point, w, h float64) (c Candidate, ok bool) {
	if a.Dist(b) < antiparallelTol {
		return Candidate{}, false
	}
	d := geom.Dir(a, b)
	mid := a.Add(b).Scale(0.5)
	n := awayFrom(d.Perp(), mid, centroid)
	start := mid.Add(n.Scale(EdgeOffset + halfExtent(n, w, h)))
	c = Tangential(start, d, EdgeBudget, ix.Probe(w, h))
	ix.AddRect(collide.RectAround(c.Center, w, h))
	return c, true
}

// ShapeLabel places a w × h label centred above or below bbox. The primary
// side is tried first; the other side is used only when the primary search
// cannot find a free spot and the other can do better.
func ShapeLabel(ix *Index, bbox collide.Rect, w, h float64, primary Side) (Candidate, Side) {
	probe := ix.Probe(w, h)
	search := func(s Side) Candidate {
		return Horizontal(shapeAnchor(bbox, h, s), ShapeBudget, probe)
	}

	side := primary
	c := search(primary)
	if !c.Fits() {
		if alt := search(primary.other()); better(alt, c) {
			c, side = alt, primary.other()
		}
	}
	ix.AddRect(collide.RectAround(c.Center, w, h))
	return c, side
}

func shapeAnchor(bbox collide.Rect, h float64, s Side) geom.Point {
	x := bbox.X + bbox.W/2
	if s == Below {
		return geom.Pt(x, bbox.Y+bbox.H+ShapeOffset+h/2)
	}
	return geom.Pt(x, bbox.Y-ShapeOffset-h/2)
}
