package collide

import (
	"testing"

	"github.com/matzehuels/geodraw/pkg/geom"
)

func TestSegmentIntersectsRect(t *testing.T) {
	box := Rect{X: 0, Y: 0, W: 20, H: 20}
	tests := []struct {
		name string
		a, b geom.Point
		pad  float64
		want bool
	}{
		{"crosses diagonal", geom.Pt(-10, -10), geom.Pt(30, 30), 0, true},
		{"crosses anti-diagonal", geom.Pt(30, -10), geom.Pt(-10, 30), 0, true},
		{"horizontal through middle", geom.Pt(-5, 10), geom.Pt(25, 10), 0, true},
		{"entirely inside", geom.Pt(5, 5), geom.Pt(15, 12), 0, true},
		{"one endpoint inside", geom.Pt(10, 10), geom.Pt(50, 50), 0, true},
		{"entirely outside right", geom.Pt(30, 0), geom.Pt(40, 20), 0, false},
		{"outside but bbox overlaps", geom.Pt(15, -10), geom.Pt(35, 10), 0, false},
		{"touches edge only", geom.Pt(-5, 0), geom.Pt(25, 0), 0, false},
		{"touches corner only", geom.Pt(20, 20), geom.Pt(30, 30), 0, false},
		{"caught by padding", geom.Pt(23, -10), geom.Pt(23, 30), 5, true},
		{"clear of padding", geom.Pt(30, -10), geom.Pt(30, 30), 5, false},
		{"degenerate segment inside", geom.Pt(3, 3), geom.Pt(3, 3), 0, true},
		{"degenerate segment on edge", geom.Pt(0, 5), geom.Pt(0, 5), 0, false},
		{"corner to corner", geom.Pt(0, 0), geom.Pt(20, 20), 0, true},
		{"corner to corner padded", geom.Pt(0, 0), geom.Pt(20, 20), 3, true},
		{"edge to opposite edge", geom.Pt(0, 10), geom.Pt(20, 10), 0, true},
		{"boundary to inside", geom.Pt(20, 10), geom.Pt(10, 10), 0, true},
		{"lies along edge", geom.Pt(0, 0), geom.Pt(20, 0), 0, false},
		{"grazes corner", geom.Pt(10, -10), geom.Pt(30, 10), 0, false},
		{"ends on edge from outside", geom.Pt(-10, 5), geom.Pt(0, 5), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentIntersectsRect(tt.a, tt.b, box, tt.pad); got != tt.want {
				t.Errorf("SegmentIntersectsRect(%v, %v, pad=%v) = %v, want %v", tt.a, tt.b, tt.pad, got, tt.want)
			}
		})
	}
}

func TestRectsOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name string
		b    Rect
		grow float64
		want bool
	}{
		{"shared area", Rect{X: 5, Y: 5, W: 10, H: 10}, 0, true},
		{"contained", Rect{X: 2, Y: 2, W: 2, H: 2}, 0, true},
		{"disjoint", Rect{X: 20, Y: 0, W: 5, H: 5}, 0, false},
		{"touching edges", Rect{X: 10, Y: 0, W: 5, H: 5}, 0, false},
		{"within grow margin", Rect{X: 13, Y: 0, W: 5, H: 5}, 4, true},
		{"beyond grow margin", Rect{X: 15, Y: 0, W: 5, H: 5}, 4, false},
		{"diagonal neighbour", Rect{X: 11, Y: 11, W: 5, H: 5}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RectsOverlap(a, tt.b, tt.grow); got != tt.want {
				t.Errorf("RectsOverlap(%v, %v, %v) = %v, want %v", a, tt.b, tt.grow, got, tt.want)
			}
		})
	}
}

func TestRectHelpers(t *testing.T) {
	r := RectAround(geom.Pt(10, 10), 4, 2)
	if r != (Rect{X: 8, Y: 9, W: 4, H: 2}) {
		t.Errorf("RectAround = %v", r)
	}
	if c := r.Center(); c != geom.Pt(10, 10) {
		t.Errorf("Center = %v", c)
	}
	if got := Bounds([]geom.Point{geom.Pt(1, 5), geom.Pt(-2, 3), geom.Pt(4, -1)}); got != (Rect{X: -2, Y: -1, W: 6, H: 6}) {
		t.Errorf("Bounds = %v", got)
	}
	u := Rect{X: 0, Y: 0, W: 1, H: 1}.Union(Rect{X: 3, Y: -1, W: 1, H: 1})
	if u != (Rect{X: 0, Y: -1, W: 4, H: 2}) {
		t.Errorf("Union = %v", u)
	}
}
