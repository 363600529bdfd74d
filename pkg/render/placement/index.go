package placement

import (
	"github.com/matzehuels/geodraw/pkg/geom"
	"github.com/matzehuels/geodraw/pkg/render/collide"
)

const (
	// SegmentPad is the clearance a label keeps from drawn segments.
	SegmentPad = 3.0
	// LabelGap is the minimum separation between two label boxes.
	LabelGap = 6.0
)

// Index holds the screen-space geometry a render has drawn so far: every
// polygon edge, auxiliary line and transform aid, plus each placed label box.
//
// An Index is append-only and belongs to a single render. It is not safe for
// concurrent use.
type Index struct {
	segments []collide.Segment
	rects    []collide.Rect
}

// NewIndex returns an empty index.
func NewIndex() *Index { return &Index{} }

// AddSegment records the segment ab.
func (ix *Index) AddSegment(a, b geom.Point) {
	ix.segments = append(ix.segments, collide.Segment{A: a, B: b})
}

// AddSegments records the polyline through pts, closing it back to pts[0]
// when closed is set.
func (ix *Index) AddSegments(pts []geom.Point, closed bool) {
	for i := 0; i+1 < len(pts); i++ {
		ix.AddSegment(pts[i], pts[i+1])
	}
	if closed && len(pts) > 2 {
		ix.AddSegment(pts[len(pts)-1], pts[0])
	}
}

// AddRect records a placed label box.
func (ix *Index) AddRect(r collide.Rect) {
	ix.rects = append(ix.rects, r)
}

// Collisions counts the obstacles that r hits: segments within SegmentPad
// and label boxes within LabelGap.
func (ix *Index) Collisions(r collide.Rect) int {
	n := 0
	for _, s := range ix.segments {
		if collide.SegmentIntersectsRect(s.A, s.B, r, SegmentPad) {
			n++
		}
	}
	for _, o := range ix.rects {
		if collide.RectsOverlap(r, o, LabelGap) {
			n++
		}
	}
	return n
}

// Fits reports whether r hits nothing.
func (ix *Index) Fits(r collide.Rect) bool { return ix.Collisions(r) == 0 }

// Segments returns a copy of the recorded segments.
func (ix *Index) Segments() []collide.Segment {
	return append([]collide.Segment(nil), ix.segments...)
}

// Rects returns a copy of the recorded label boxes.
func (ix *Index) Rects() []collide.Rect {
	return append([]collide.Rect(nil), ix.rects...)
}

// Probe returns a Probe that tests a w × h box centred on each candidate.
func (ix *Index) Probe(w, h float64) Probe {
	return func(c geom.Point) int {
		return ix.Collisions(collide.RectAround(c, w, h))
	}
}
