package figure

import (
	"bytes"
	"math"
	"testing"

	"github.com/matzehuels/geodraw/pkg/diagram"
	"github.com/matzehuels/geodraw/pkg/geom"
	"github.com/matzehuels/geodraw/pkg/render/canvas"
	"github.com/matzehuels/geodraw/pkg/render/viewport"
)

func reflectionDiagram() *diagram.TransformDiagram {
	return &diagram.TransformDiagram{
		PreImage: diagram.Shape{
			Vertices:     []geom.Point{geom.Pt(1, 1), geom.Pt(3, 1), geom.Pt(1, 4)},
			VertexLabels: []string{"A", "B", "C"},
		},
		Transformation: diagram.Transformation{
			Transformation: geom.Reflection{Line: geom.Line{From: geom.Pt(0, 0), To: geom.Pt(0, 1)}},
		},
	}
}

func TestReflectionImage(t *testing.T) {
	d := reflectionDiagram()
	opts := Options{}.withDefaults()
	cv, err := RenderTransformation(d, opts)
	if err != nil {
		t.Fatalf("RenderTransformation() error = %v", err)
	}

	img := []geom.Point{geom.Pt(-1, 1), geom.Pt(-3, 1), geom.Pt(-1, 4)}
	visible := append(append(append([]geom.Point(nil), d.PreImage.Vertices...), img...), geom.Pt(0, 0), geom.Pt(0, 1))
	vp := viewport.Fit(visible, opts.Width, opts.Height, opts.Padding, true)

	polys := commandsOf(cv, canvas.KindPolygon)
	if len(polys) != 2 {
		t.Fatalf("got %d polygons, want pre-image and image", len(polys))
	}
	for i, p := range vp.ToScreenAll(img) {
		if !polys[1].Points[i].Near(p, tol) {
			t.Errorf("image vertex %d = %v, want %v", i, polys[1].Points[i], p)
		}
	}

	texts := textsOf(cv)
	for _, label := range []string{"A", "B", "C", "A'", "B'", "C'"} {
		if _, ok := texts[label]; !ok {
			t.Errorf("label %q missing", label)
		}
	}
}

func TestReflectionAxisSpansCanvas(t *testing.T) {
	opts := Options{}.withDefaults()
	cv, err := RenderTransformation(reflectionDiagram(), opts)
	if err != nil {
		t.Fatal(err)
	}
	lines := commandsOf(cv, canvas.KindLine)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want the axis only", len(lines))
	}
	a, b := lines[0].Points[0], lines[0].Points[1]
	if math.Abs(a.X-b.X) > tol {
		t.Errorf("axis is not vertical: %v %v", a, b)
	}
	top, bottom := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	if math.Abs(top-axisInset) > tol || math.Abs(bottom-(opts.Height-axisInset)) > tol {
		t.Errorf("axis spans %v..%v, want %v..%v", top, bottom, axisInset, opts.Height-axisInset)
	}
	if lines[0].Style.Dash == nil {
		t.Error("axis is not dashed")
	}
}

func TestExplicitImageLabels(t *testing.T) {
	d := reflectionDiagram()
	d.ImageLabels = []string{"P", "Q", "R"}
	cv, err := RenderTransformation(d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	texts := textsOf(cv)
	for _, label := range []string{"P", "Q", "R"} {
		if _, ok := texts[label]; !ok {
			t.Errorf("label %q missing", label)
		}
	}
	if _, ok := texts["A'"]; ok {
		t.Error("default prime label drawn despite explicit image labels")
	}
}

func TestTransformationAids(t *testing.T) {
	square := []geom.Point{geom.Pt(1, 1), geom.Pt(2, 1), geom.Pt(2, 2), geom.Pt(1, 2)}
	tests := []struct {
		name        string
		t           geom.Transformation
		correspond  bool
		wantLines   int
		wantCircles int
		wantArrow   bool
	}{
		{"translation", geom.Translation{Vector: geom.Pt(3, 0)}, false, 1, 0, true},
		{"zero translation", geom.Translation{}, false, 0, 0, false},
		{"rotation", geom.Rotation{AngleDegrees: 90}, false, 0, 1, false},
		{"rotation guides", geom.Rotation{AngleDegrees: 90}, true, 8, 1, false},
		{"dilation guides", geom.Dilation{ScaleFactor: 2}, true, 4, 1, false},
		{"translation guides", geom.Translation{Vector: geom.Pt(0, 3)}, true, 5, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &diagram.TransformDiagram{
				PreImage:           diagram.Shape{Vertices: square},
				Transformation:     diagram.Transformation{Transformation: tt.t},
				ShowCorrespondence: tt.correspond,
			}
			cv, err := RenderTransformation(d, Options{})
			if err != nil {
				t.Fatal(err)
			}
			lines := commandsOf(cv, canvas.KindLine)
			if len(lines) != tt.wantLines {
				t.Errorf("lines = %d, want %d", len(lines), tt.wantLines)
			}
			if n := len(commandsOf(cv, canvas.KindCircle)); n != tt.wantCircles {
				t.Errorf("circles = %d, want %d", n, tt.wantCircles)
			}
			arrow := len(lines) > 0 && lines[0].Style.Arrow
			if arrow != tt.wantArrow {
				t.Errorf("arrow = %v, want %v", arrow, tt.wantArrow)
			}
		})
	}
}

func TestCenterLabel(t *testing.T) {
	d := &diagram.TransformDiagram{
		PreImage:       diagram.Shape{Vertices: []geom.Point{geom.Pt(1, 0), geom.Pt(2, 0), geom.Pt(1, 1)}},
		Transformation: diagram.Transformation{Transformation: geom.Dilation{ScaleFactor: 2}},
		CenterLabel:    "O",
	}
	cv, err := RenderTransformation(d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := textsOf(cv)["O"]; !ok {
		t.Error("centre label missing")
	}
}

func TestPolygonAngleMarks(t *testing.T) {
	d := reflectionDiagram()
	d.PreImage.AngleMarks = []diagram.PolygonAngleMark{
		{VertexIndex: 0, IsRightAngle: true},
		{VertexIndex: 1, Label: "α"},
	}
	cv, err := RenderTransformation(d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	paths := commandsOf(cv, canvas.KindPath)
	if len(paths) != 2 {
		t.Fatalf("got %d marks, want 2", len(paths))
	}
	if paths[0].Path[0] != 'M' || bytes.Contains([]byte(paths[0].Path), []byte(" A ")) {
		t.Errorf("right angle mark = %q, want a square", paths[0].Path)
	}
	if !bytes.Contains([]byte(paths[1].Path), []byte(" A ")) {
		t.Errorf("angle mark = %q, want an arc", paths[1].Path)
	}
	if _, ok := textsOf(cv)["α"]; !ok {
		t.Error("angle label missing")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	d := reflectionDiagram()
	d.PreImage.SideLengths = []string{"2", "3.6", "3"}
	d.Title = "Reflection in the y-axis"
	first, err := RenderTransformation(d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := RenderTransformation(d, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first.SVG(), again.SVG()) {
			t.Fatalf("render %d differs from the first", i+1)
		}
	}
}

func TestRenderDispatch(t *testing.T) {
	doc := diagram.Document{
		Name:     "fig",
		Family:   diagram.FamilyTriangle,
		Width:    200,
		Height:   100,
		Triangle: rightTriangle(),
	}
	cv, err := Render(doc, Options{Width: 999})
	if err != nil {
		t.Fatal(err)
	}
	if cv.Width() != 200 || cv.Height() != 100 {
		t.Errorf("canvas = %vx%v, want 200x100", cv.Width(), cv.Height())
	}
}
