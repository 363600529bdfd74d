// Package angle computes angle arcs, right-angle markers and the position of
// their labels in screen space.
package angle

import (
	"fmt"
	"math"

	"github.com/matzehuels/geodraw/pkg/geom"
	"github.com/matzehuels/geodraw/pkg/render/collide"
)

const (
	// RightAngleSize is the default leg length of a right-angle marker.
	RightAngleSize = 12.0
	// LabelClearance separates an angle label from its arc.
	LabelClearance = 4.0
	// HelperLength is how far a helper ray extends past the marker corner.
	HelperLength = 10.0

	// colinearDot is the cosine above which two directions count as the
	// same ray.
	colinearDot = 0.985

	// radiusGrowth controls how fast the arc radius grows as the angle
	// shrinks; minScale and maxScale bound the multiplier.
	radiusGrowth = 0.6
	minScale     = 1.0
	maxScale     = 2.5

	degenerateTol = 1e-9
)

// ScaleRadius enlarges base for acute angles so the arc and its label stay
// legible. theta is the rendered sweep in radians.
func ScaleRadius(base, theta float64) float64 {
	if theta <= 0 {
		return base * maxScale
	}
	m := 1 - radiusGrowth*math.Log(theta/math.Pi)
	return base * math.Max(minScale, math.Min(maxScale, m))
}

// ArcMark is an angle arc centred on Vertex. The arc runs from angle Start
// to angle End in the direction of increasing screen angle.
type ArcMark struct {
	Vertex   geom.Point
	Radius   float64
	Start    float64
	End      float64
	Theta    float64    // swept angle
	Bisector geom.Point // unit direction through the middle of the arc
	Interior bool       // the small arc was chosen
}

// Arc builds the arc for the corner at vertex between rays toward p1 and p2.
// The small arc is drawn when its bisector faces centroid, the large arc
// otherwise. ok is false when either ray has zero length.
func Arc(vertex, p1, p2, centroid geom.Point, baseRadius float64) (m ArcMark, ok bool) {
	u1, u2, ok := rays(vertex, p1, p2)
	if !ok {
		return ArcMark{}, false
	}
	if u1.Cross(u2) < 0 {
		u1, u2 = u2, u1
	}
	small := math.Atan2(u1.Cross(u2), u1.Dot(u2))
	mid := bisector(u1, u2)

	m = ArcMark{Vertex: vertex, Start: u1.Angle(), End: u2.Angle()}
	if mid.Dot(centroid.Sub(vertex)) >= 0 {
		m.Theta, m.Bisector, m.Interior = small, mid, true
	} else {
		m.Start, m.End = m.End, m.Start
		m.Theta, m.Bisector = 2*math.Pi-small, mid.Scale(-1)
	}
	m.Radius = ScaleRadius(baseRadius, m.Theta)
	return m, true
}

// Endpoints returns the screen positions where the arc starts and ends.
func (m ArcMark) Endpoints() (geom.Point, geom.Point) {
	at := func(a float64) geom.Point {
		return m.Vertex.Add(geom.Pt(math.Cos(a), math.Sin(a)).Scale(m.Radius))
	}
	return at(m.Start), at(m.End)
}

// Flags returns the SVG large-arc and sweep flags for the arc.
func (m ArcMark) Flags() (large, sweep int) {
	diff := math.Mod(m.End-m.Start+2*math.Pi, 2*math.Pi)
	if diff > math.Pi {
		large = 1
	}
	return large, 1
}

// Path returns the arc as SVG path data.
func (m ArcMark) Path() string {
	a, b := m.Endpoints()
	large, sweep := m.Flags()
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d %d %.2f %.2f",
		a.X, a.Y, m.Radius, m.Radius, large, sweep, b.X, b.Y)
}

// SquareMark is a right-angle marker: legs of Size along each ray meeting at
// Corner.
type SquareMark struct {
	Vertex   geom.Point
	Size     float64
	Legs     [2]geom.Point // marker ends on the first and second ray
	Corner   geom.Point
	Bisector geom.Point
}

// RightAngle builds the square marker for the corner at vertex. ok is false
// when either ray has zero length.
func RightAngle(vertex, p1, p2 geom.Point, size float64) (SquareMark, bool) {
	u1, u2, ok := rays(vertex, p1, p2)
	if !ok {
		return SquareMark{}, false
	}
	return SquareMark{
		Vertex:   vertex,
		Size:     size,
		Legs:     [2]geom.Point{vertex.Add(u1.Scale(size)), vertex.Add(u2.Scale(size))},
		Corner:   vertex.Add(u1.Add(u2).Scale(size)),
		Bisector: bisector(u1, u2),
	}, true
}

// Points returns the three points of the marker polyline.
func (m SquareMark) Points() []geom.Point {
	return []geom.Point{m.Legs[0], m.Corner, m.Legs[1]}
}

// Path returns the marker as SVG path data.
func (m SquareMark) Path() string {
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f L %.2f %.2f",
		m.Legs[0].X, m.Legs[0].Y, m.Corner.X, m.Corner.Y, m.Legs[1].X, m.Legs[1].Y)
}

// RightAngleLabelDirection points away from the corner's interior, so the
// label clears the square marker.
func RightAngleLabelDirection(vertex, p1, p2 geom.Point) geom.Point {
	u1, u2, ok := rays(vertex, p1, p2)
	if !ok {
		return geom.Pt(0, -1)
	}
	return bisector(u1, u2).Scale(-1)
}

// LabelPosition returns the centre of a w × h label placed along unit dir,
// just beyond a mark of the given radius.
func LabelPosition(vertex, dir geom.Point, radius, w, h float64) geom.Point {
	extent := math.Max(h/2, math.Abs(dir.X)*w/2+math.Abs(dir.Y)*h/2)
	return vertex.Add(dir.Scale(radius + extent + LabelClearance))
}

// HelperRays returns short segments that continue each ray of a right-angle
// marker beyond its leg end. A ray is skipped when it runs along one of
// dashed, the directions of dashed lines already drawn at vertex.
func HelperRays(m SquareMark, dashed []geom.Point, length float64) []collide.Segment {
	var out []collide.Segment
	for _, leg := range m.Legs {
		u := geom.Dir(m.Vertex, leg)
		if alongAny(u, dashed) {
			continue
		}
		out = append(out, collide.Segment{A: leg, B: leg.Add(u.Scale(length))})
	}
	return out
}

// ImpliedHeight returns the segment from vertex to whichever of p1 and p2 is
// farther from it.
func ImpliedHeight(vertex, p1, p2 geom.Point) collide.Segment {
	if vertex.Dist(p2) > vertex.Dist(p1) {
		return collide.Segment{A: vertex, B: p2}
	}
	return collide.Segment{A: vertex, B: p1}
}

// Colinear reports whether unit directions a and b point the same way.
func Colinear(a, b geom.Point) bool {
	return a.Unit().Dot(b.Unit()) > colinearDot
}

func alongAny(u geom.Point, dirs []geom.Point) bool {
	for _, d := range dirs {
		if Colinear(u, d) {
			return true
		}
	}
	return false
}

func rays(vertex, p1, p2 geom.Point) (u1, u2 geom.Point, ok bool) {
	if vertex.Dist(p1) < degenerateTol || vertex.Dist(p2) < degenerateTol {
		return geom.Point{}, geom.Point{}, false
	}
	return geom.Dir(vertex, p1), geom.Dir(vertex, p2), true
}

// bisector of unit vectors u1 and u2. Antiparallel rays use the normal of u1
// that lies inside the sweep from u1 to u2.
func bisector(u1, u2 geom.Point) geom.Point {
	b := u1.Add(u2)
	if b.Len() < 1e-6 {
		return u1.Perp()
	}
	return b.Unit()
}
