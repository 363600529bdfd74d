package placement

import (
	"math"
	"testing"

	"github.com/matzehuels/geodraw/pkg/geom"
	"github.com/matzehuels/geodraw/pkg/render/collide"
)

func TestIndexCollisions(t *testing.T) {
	ix := NewIndex()
	ix.AddSegment(geom.Pt(0, 50), geom.Pt(100, 50))
	ix.AddRect(collide.Rect{X: 200, Y: 0, W: 20, H: 20})

	tests := []struct {
		name string
		r    collide.Rect
		want int
	}{
		{"clear", collide.Rect{X: 0, Y: 0, W: 10, H: 10}, 0},
		{"crosses segment", collide.Rect{X: 10, Y: 45, W: 10, H: 10}, 1},
		{"within segment pad", collide.Rect{X: 10, Y: 38, W: 10, H: 10}, 1},
		{"within label gap", collide.Rect{X: 170, Y: 0, W: 25, H: 10}, 1},
		{"beyond label gap", collide.Rect{X: 160, Y: 0, W: 25, H: 10}, 0},
		{"hits both", collide.Rect{X: 90, Y: 10, W: 115, H: 45}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ix.Collisions(tt.r); got != tt.want {
				t.Errorf("Collisions(%v) = %d, want %d", tt.r, got, tt.want)
			}
		})
	}
}

func TestIndexAddSegments(t *testing.T) {
	tri := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 10)}
	ix := NewIndex()
	ix.AddSegments(tri, false)
	if n := len(ix.Segments()); n != 2 {
		t.Errorf("open polyline: %d segments, want 2", n)
	}
	ix.AddSegments(tri, true)
	if n := len(ix.Segments()); n != 5 {
		t.Errorf("after closed polygon: %d segments, want 5", n)
	}
}

func TestVertexLabelOutside(t *testing.T) {
	tri := []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(0, 100)}
	ix := NewIndex()
	ix.AddSegments(tri, true)
	centroid := geom.Centroid(tri)

	c := VertexLabel(ix, tri[0], tri[2], tri[1], centroid, 10, 10)
	if !c.Fits() || c.Steps != 0 {
		t.Fatalf("VertexLabel() = %+v, want a free spot without stepping", c)
	}
	if c.Center.X >= 0 || c.Center.Y >= 0 {
		t.Errorf("label center %v is not outside corner (0,0)", c.Center)
	}
	if n := len(ix.Rects()); n != 1 {
		t.Errorf("recorded %d rects, want 1", n)
	}
}

func TestVertexLabelAntiparallel(t *testing.T) {
	ix := NewIndex()
	v := geom.Pt(50, 0)
	c := VertexLabel(ix, v, geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(50, 50), 10, 10)
	if math.IsNaN(c.Center.X) || math.IsNaN(c.Center.Y) {
		t.Fatalf("label center is NaN")
	}
	if c.Center.Y >= 0 {
		t.Errorf("label center %v should sit on the side away from the centroid", c.Center)
	}
}

func TestSecondLabelAvoidsFirst(t *testing.T) {
	ix := NewIndex()
	v := geom.Pt(0, 0)
	first := VertexLabel(ix, v, geom.Pt(100, 0), geom.Pt(0, 100), geom.Pt(30, 30), 20, 10)
	second := VertexLabel(ix, v, geom.Pt(100, 0), geom.Pt(0, 100), geom.Pt(30, 30), 20, 10)
	if !second.Fits() {
		t.Fatalf("second label did not find a free spot: %+v", second)
	}
	a := collide.RectAround(first.Center, 20, 10)
	b := collide.RectAround(second.Center, 20, 10)
	if collide.RectsOverlap(a, b, 0) {
		t.Errorf("labels overlap: %v and %v", a, b)
	}
}

func TestEdgeLabel(t *testing.T) {
	ix := NewIndex()
	c, ok := EdgeLabel(ix, geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(50, 50), 20, 10)
	if !ok {
		t.Fatal("EdgeLabel() ok = false")
	}
	want := geom.Pt(50, -(EdgeOffset + 5))
	if !c.Center.Near(want, 1e-9) {
		t.Errorf("EdgeLabel() center = %v, want %v", c.Center, want)
	}
}

func TestEdgeLabelZeroLength(t *testing.T) {
	ix := NewIndex()
	if _, ok := EdgeLabel(ix, geom.Pt(5, 5), geom.Pt(5, 5), geom.Pt(0, 0), 10, 10); ok {
		t.Error("EdgeLabel() on a zero-length edge returned ok = true")
	}
	if len(ix.Rects()) != 0 {
		t.Error("zero-length edge recorded a rect")
	}
}

func TestShapeLabel(t *testing.T) {
	bbox := collide.Rect{X: 0, Y: 0, W: 100, H: 50}

	t.Run("primary free", func(t *testing.T) {
		ix := NewIndex()
		c, side := ShapeLabel(ix, bbox, 30, 10, Above)
		if side != Above {
			t.Errorf("side = %v, want above", side)
		}
		if want := geom.Pt(50, -15); c.Center != want {
			t.Errorf("center = %v, want %v", c.Center, want)
		}
	})

	t.Run("falls back to secondary", func(t *testing.T) {
		ix := NewIndex()
		ix.AddRect(collide.Rect{X: -1000, Y: -200, W: 2000, H: 195})
		c, side := ShapeLabel(ix, bbox, 30, 10, Above)
		if side != Below {
			t.Errorf("side = %v, want below", side)
		}
		if !c.Fits() {
			t.Errorf("secondary candidate %+v does not fit", c)
		}
	})
}

func TestPlacementTerminatesWhenOccluded(t *testing.T) {
	ix := NewIndex()
	ix.AddRect(collide.Rect{X: -1e6, Y: -1e6, W: 2e6, H: 2e6})
	for i := 0; i < 50; i++ {
		ix.AddSegment(geom.Pt(float64(-500+20*i), -1000), geom.Pt(float64(-500+20*i), 1000))
	}

	c := VertexLabel(ix, geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 10), geom.Pt(3, 3), 12, 8)
	if c.Fits() {
		t.Errorf("occluded vertex label unexpectedly fits: %+v", c)
	}
	if c.Steps > VertexBudget {
		t.Errorf("vertex search used %d steps, budget %d", c.Steps, VertexBudget)
	}

	s, _ := ShapeLabel(ix, collide.Rect{W: 10, H: 10}, 12, 8, Below)
	if s.Steps > ShapeBudget {
		t.Errorf("shape search used %d steps, budget %d", s.Steps, ShapeBudget)
	}

	e, ok := EdgeLabel(ix, geom.Pt(0, 0), geom.Pt(50, 0), geom.Pt(25, 25), 12, 8)
	if !ok || e.Steps > EdgeBudget {
		t.Errorf("edge search = %+v ok=%v, budget %d", e, ok, EdgeBudget)
	}
}
