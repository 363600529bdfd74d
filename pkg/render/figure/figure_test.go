package figure

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/geodraw/pkg/diagram"
	"github.com/matzehuels/geodraw/pkg/errors"
	"github.com/matzehuels/geodraw/pkg/geom"
	"github.com/matzehuels/geodraw/pkg/render/angle"
	"github.com/matzehuels/geodraw/pkg/render/canvas"
	"github.com/matzehuels/geodraw/pkg/render/collide"
	"github.com/matzehuels/geodraw/pkg/render/viewport"
)

const tol = 1e-6

func rightTriangle() *diagram.Triangle {
	return &diagram.Triangle{
		Points: []diagram.NamedPoint{
			{ID: "A", X: 0, Y: 0},
			{ID: "B", X: 4, Y: 0},
			{ID: "C", X: 0, Y: 3},
		},
		AngleMarks: []diagram.AngleMark{
			{PointOnFirstRay: "B", Vertex: "A", PointOnSecondRay: "C", IsRightAngle: true},
		},
	}
}

func commandsOf(cv *canvas.Canvas, kind canvas.Kind) []canvas.Command {
	var out []canvas.Command
	for _, c := range cv.Commands() {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func textsOf(cv *canvas.Canvas) map[string]geom.Point {
	out := make(map[string]geom.Point)
	for _, c := range commandsOf(cv, canvas.KindText) {
		out[c.Text] = c.Points[0]
	}
	return out
}

func TestRightAngleRendersSquareMarker(t *testing.T) {
	tri := rightTriangle()
	opts := Options{Width: 400, Height: 320}
	cv, err := RenderTriangle(tri, opts)
	if err != nil {
		t.Fatalf("RenderTriangle() error = %v", err)
	}

	o := opts.withDefaults()
	vp := viewport.Fit(tri.Positions(), o.Width, o.Height, o.Padding, true)
	a, b, c := vp.ToScreen(geom.Pt(0, 0)), vp.ToScreen(geom.Pt(4, 0)), vp.ToScreen(geom.Pt(0, 3))
	want, _ := angle.RightAngle(a, b, c, o.MarkerSize)

	paths := commandsOf(cv, canvas.KindPath)
	if len(paths) != 1 {
		t.Fatalf("got %d path commands, want 1", len(paths))
	}
	if paths[0].Path != want.Path() {
		t.Errorf("marker path = %q, want %q", paths[0].Path, want.Path())
	}
	if strings.Contains(paths[0].Path, " A ") {
		t.Errorf("right angle rendered as an arc: %q", paths[0].Path)
	}
	for i, toward := range []geom.Point{b, c} {
		leg := want.Legs[i]
		if d := leg.Dist(a); d < o.MarkerSize-tol || d > o.MarkerSize+tol {
			t.Errorf("leg %d length = %v, want %v", i, d, o.MarkerSize)
		}
		if !geom.Dir(a, leg).Near(geom.Dir(a, toward), tol) {
			t.Errorf("leg %d does not run along its edge", i)
		}
	}
	if n := len(commandsOf(cv, canvas.KindLine)); n != 0 {
		t.Errorf("core right angle drew %d helper lines, want 0", n)
	}
}

func TestTriangleLabelsDoNotOverlap(t *testing.T) {
	tri := rightTriangle()
	tri.AngleMarks = append(tri.AngleMarks, diagram.AngleMark{
		PointOnFirstRay: "A", Vertex: "B", PointOnSecondRay: "C", Label: "θ",
	})
	tri.SideLabels = []diagram.SideLabel{
		{From: "A", To: "B", Label: "4 cm"},
		{From: "A", To: "C", Label: "3 cm"},
		{From: "B", To: "C", Label: "5 cm"},
	}
	opts := Options{}.withDefaults()
	cv, err := RenderTriangle(tri, opts)
	if err != nil {
		t.Fatalf("RenderTriangle() error = %v", err)
	}

	var boxes []collide.Rect
	for _, c := range commandsOf(cv, canvas.KindText) {
		b := opts.Measurer.Measure(c.Text, 0, opts.FontSize, opts.LineHeight)
		boxes = append(boxes, collide.RectAround(c.Points[0], b.Width, b.Height))
	}
	if len(boxes) != 7 {
		t.Fatalf("got %d labels, want 7", len(boxes))
	}
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if collide.RectsOverlap(boxes[i], boxes[j], 0) {
				t.Errorf("labels %d and %d overlap: %v %v", i, j, boxes[i], boxes[j])
			}
		}
	}
}

func TestVertexLabelsSitOutside(t *testing.T) {
	tri := rightTriangle()
	opts := Options{}.withDefaults()
	cv, err := RenderTriangle(tri, opts)
	if err != nil {
		t.Fatal(err)
	}
	vp := viewport.Fit(tri.Positions(), opts.Width, opts.Height, opts.Padding, true)
	a := vp.ToScreen(geom.Pt(0, 0))
	got := textsOf(cv)["A"]
	// A is the bottom-left corner on screen, so its label sits left and below.
	if got.X >= a.X || got.Y <= a.Y {
		t.Errorf("label A at %v, vertex at %v", got, a)
	}
}

func TestImpliedHeight(t *testing.T) {
	tri := &diagram.Triangle{
		Points: []diagram.NamedPoint{
			{ID: "A", X: 0, Y: 0},
			{ID: "B", X: 6, Y: 0},
			{ID: "C", X: -2, Y: 4},
			{ID: "D", X: -2, Y: 0},
		},
		AngleMarks: []diagram.AngleMark{
			{PointOnFirstRay: "A", Vertex: "D", PointOnSecondRay: "C", IsRightAngle: true},
		},
	}
	opts := Options{}.withDefaults()
	cv, err := RenderTriangle(tri, opts)
	if err != nil {
		t.Fatal(err)
	}
	vp := viewport.Fit(tri.Positions(), opts.Width, opts.Height, opts.Padding, true)
	d, c := vp.ToScreen(geom.Pt(-2, 0)), vp.ToScreen(geom.Pt(-2, 4))

	lines := commandsOf(cv, canvas.KindLine)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want the implied height and one helper ray", len(lines))
	}
	h := lines[0]
	if !h.Points[0].Near(d, tol) || !h.Points[1].Near(c, tol) || h.Style.Dash == nil {
		t.Errorf("implied height = %+v, want dashed %v -> %v", h, d, c)
	}
	ray := lines[1]
	if angle.Colinear(geom.Dir(ray.Points[0], ray.Points[1]), geom.Dir(d, c)) {
		t.Error("helper ray doubles the height line")
	}
}

func TestExplicitDashedLineSuppressesImpliedHeight(t *testing.T) {
	tri := &diagram.Triangle{
		Points: []diagram.NamedPoint{
			{ID: "A", X: 0, Y: 0},
			{ID: "B", X: 6, Y: 0},
			{ID: "C", X: 2, Y: 6},
			{ID: "H", X: 2, Y: 0},
		},
		InternalLines: []diagram.InternalLine{{From: "C", To: "H", Style: diagram.LineDashed}},
		AngleMarks: []diagram.AngleMark{
			{PointOnFirstRay: "B", Vertex: "H", PointOnSecondRay: "C", IsRightAngle: true},
		},
	}
	cv, err := RenderTriangle(tri, Options{})
	if err != nil {
		t.Fatal(err)
	}
	lines := commandsOf(cv, canvas.KindLine)
	// The explicit height plus one helper ray along HB.
	if len(lines) != 2 {
		t.Errorf("got %d lines, want 2", len(lines))
	}
}

func TestDottedLineKeepsImpliedHeight(t *testing.T) {
	tri := &diagram.Triangle{
		Points: []diagram.NamedPoint{
			{ID: "A", X: 0, Y: 0},
			{ID: "B", X: 6, Y: 0},
			{ID: "C", X: 2, Y: 6},
			{ID: "H", X: 2, Y: 0},
		},
		InternalLines: []diagram.InternalLine{{From: "C", To: "H", Style: diagram.LineDotted}},
		AngleMarks: []diagram.AngleMark{
			{PointOnFirstRay: "B", Vertex: "H", PointOnSecondRay: "C", IsRightAngle: true},
		},
	}
	cv, err := RenderTriangle(tri, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var dotted, dashed int
	for _, l := range commandsOf(cv, canvas.KindLine) {
		switch fmt.Sprint(l.Style.Dash) {
		case fmt.Sprint(canvas.Dotted):
			dotted++
		case fmt.Sprint(canvas.Dashed):
			dashed++
		}
	}
	// The dotted line, the implied dashed height HC and one helper ray along HB.
	if dotted != 1 || dashed != 2 {
		t.Errorf("got %d dotted and %d dashed lines, want 1 and 2", dotted, dashed)
	}
}

func TestSoftConditionsSkipAnnotation(t *testing.T) {
	tri := rightTriangle()
	tri.Points = append(tri.Points, diagram.NamedPoint{ID: "D", X: 0, Y: 0})
	tri.SideLabels = []diagram.SideLabel{
		{From: "A", To: "Z", Label: "x"},
		{From: "A", To: "D", Label: "0"},
		{From: "A", To: "B", Label: "4"},
	}
	tri.InternalLines = []diagram.InternalLine{{From: "Q", To: "B"}}
	tri.AngleMarks = append(tri.AngleMarks, diagram.AngleMark{PointOnFirstRay: "A", Vertex: "Y", PointOnSecondRay: "B"})

	var skipped []string
	cv, err := RenderTriangle(tri, Options{OnSkip: func(kind, _ string) { skipped = append(skipped, kind) }})
	if err != nil {
		t.Fatalf("RenderTriangle() error = %v", err)
	}
	want := []string{"internal_line", "angle_mark", "side_label", "side_label"}
	if strings.Join(skipped, ",") != strings.Join(want, ",") {
		t.Errorf("skipped = %v, want %v", skipped, want)
	}
	if _, ok := textsOf(cv)["4"]; !ok {
		t.Error("valid side label was not drawn")
	}
}

func TestFatalErrors(t *testing.T) {
	_, err := RenderTriangle(&diagram.Triangle{Points: []diagram.NamedPoint{{ID: "A"}, {ID: "B", X: 1}}}, Options{})
	if !errors.Is(err, errors.ErrCodeTooFewPoints) {
		t.Errorf("two points: error = %v, want TOO_FEW_POINTS", err)
	}

	_, err = RenderTriangle(&diagram.Triangle{Points: []diagram.NamedPoint{{ID: "A"}, {ID: "", X: 1}, {ID: "C", Y: 1}}}, Options{})
	if !errors.Is(err, errors.ErrCodeMissingPoint) {
		t.Errorf("missing core id: error = %v, want MISSING_POINT", err)
	}

	d := &diagram.TransformDiagram{
		PreImage:       diagram.Shape{Vertices: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0, 1)}},
		Transformation: diagram.Transformation{Transformation: geom.Reflection{Line: geom.Line{From: geom.Pt(2, 2), To: geom.Pt(2, 2)}}},
	}
	if _, err := RenderTransformation(d, Options{}); !errors.Is(err, errors.ErrCodeDegenerateAxis) {
		t.Errorf("degenerate axis: error = %v, want DEGENERATE_AXIS", err)
	}

	if _, err := Render(diagram.Document{Family: "hanger"}, Options{}); !errors.Is(err, errors.ErrCodeInvalidFamily) {
		t.Errorf("unknown family: error = %v, want INVALID_FAMILY", err)
	}
}

func TestExtendAcross(t *testing.T) {
	frame := collide.Rect{W: 100, H: 50}
	tests := []struct {
		name   string
		a, b   geom.Point
		p, q   geom.Point
		wantOK bool
	}{
		{"vertical", geom.Pt(20, 10), geom.Pt(20, 30), geom.Pt(20, 0), geom.Pt(20, 50), true},
		{"horizontal reversed", geom.Pt(60, 25), geom.Pt(40, 25), geom.Pt(100, 25), geom.Pt(0, 25), true},
		{"diagonal", geom.Pt(10, 10), geom.Pt(20, 20), geom.Pt(0, 0), geom.Pt(50, 50), true},
		{"misses frame", geom.Pt(-10, 0), geom.Pt(0, -10), geom.Point{}, geom.Point{}, false},
		{"degenerate", geom.Pt(5, 5), geom.Pt(5, 5), geom.Point{}, geom.Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, q, ok := extendAcross(tt.a, tt.b, frame)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (!p.Near(tt.p, tol) || !q.Near(tt.q, tol)) {
				t.Errorf("extendAcross() = %v, %v, want %v, %v", p, q, tt.p, tt.q)
			}
		})
	}
}
