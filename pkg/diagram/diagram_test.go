package diagram

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/geodraw/pkg/errors"
	"github.com/matzehuels/geodraw/pkg/geom"
)

const triangleJSON = `{
  "family": "triangle",
  "diagram": {
    "points": [{"id": "A", "x": 0, "y": 0}, {"id": "B", "x": 4, "y": 0}, {"id": "C", "x": 0, "y": 3}],
    "angleMarks": [{"pointOnFirstRay": "B", "vertex": "A", "pointOnSecondRay": "C", "isRightAngle": true}]
  }
}`

func TestDecodeSingle(t *testing.T) {
	docs, err := Decode(strings.NewReader(triangleJSON))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("Decode() returned %d docs, want 1", len(docs))
	}
	d := docs[0]
	if d.Name != "diagram" || d.Family != FamilyTriangle || d.Triangle == nil {
		t.Fatalf("Decode() = %+v", d)
	}
	if got := len(d.Triangle.Points); got != 3 {
		t.Errorf("points = %d, want 3", got)
	}
	if m := d.Triangle.AngleMarks[0]; !m.IsRightAngle || !m.ArcVisible() {
		t.Errorf("angle mark = %+v", m)
	}
}

func TestDecodeBatchNamesByPosition(t *testing.T) {
	batch := `{"diagrams": [` + triangleJSON + `,` + triangleJSON + `]}`
	docs, err := Decode(strings.NewReader(batch))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(docs) != 2 || docs[0].Name != "diagram-1" || docs[1].Name != "diagram-2" {
		t.Errorf("Decode() names = %q, %q", docs[0].Name, docs[1].Name)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"not json", `{`, errors.ErrCodeInvalidInput},
		{"unknown family", `{"family": "hanger", "diagram": {}}`, errors.ErrCodeInvalidFamily},
		{"missing family", `{"diagram": {}}`, errors.ErrCodeInvalidFamily},
		{"missing diagram", `{"family": "triangle"}`, errors.ErrCodeInvalidInput},
		{"unknown field", `{"family": "triangle", "diagram": {"points": [], "bogus": 1}}`, errors.ErrCodeInvalidInput},
		{"empty batch", `{"diagrams": []}`, errors.ErrCodeInvalidInput},
		{"batch with extra keys", `{"diagrams": [], "name": "x"}`, errors.ErrCodeInvalidInput},
		{"unknown transformation", `{"family": "transformation", "diagram": {"preImage": {"vertices": []}, "transformation": {"type": "shear"}}}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Decode() error = nil")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Decode() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestTransformationJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want geom.Transformation
	}{
		{"translation", `{"type":"translation","vector":{"x":4,"y":1}}`, geom.Translation{Vector: geom.Pt(4, 1)}},
		{"reflection", `{"type":"reflection","line":{"from":{"x":0,"y":0},"to":{"x":0,"y":5}}}`,
			geom.Reflection{Line: geom.Line{From: geom.Pt(0, 0), To: geom.Pt(0, 5)}}},
		{"rotation", `{"type":"rotation","center":{"x":1,"y":2},"angleDegrees":90}`,
			geom.Rotation{Center: geom.Pt(1, 2), AngleDegrees: 90}},
		{"dilation", `{"type":"dilation","center":{"x":2,"y":2},"scaleFactor":0.5}`,
			geom.Dilation{Center: geom.Pt(2, 2), ScaleFactor: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Transformation
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got.Transformation != tt.want {
				t.Errorf("Unmarshal() = %#v, want %#v", got.Transformation, tt.want)
			}

			out, err := json.Marshal(got)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if !strings.Contains(string(out), `"type":"`+tt.name+`"`) {
				t.Errorf("Marshal() = %s, missing type discriminator", out)
			}
		})
	}
}

func TestValidateTriangle(t *testing.T) {
	pts := func(ids ...string) []NamedPoint {
		out := make([]NamedPoint, len(ids))
		for i, id := range ids {
			out[i] = NamedPoint{ID: id, X: float64(i), Y: float64(i * i)}
		}
		return out
	}
	tests := []struct {
		name string
		tri  Triangle
		code errors.Code
	}{
		{"valid", Triangle{Points: pts("A", "B", "C", "D")}, ""},
		{"two points", Triangle{Points: pts("A", "B")}, errors.ErrCodeTooFewPoints},
		{"core without id", Triangle{Points: pts("A", "", "C")}, errors.ErrCodeMissingPoint},
		{"core duplicate", Triangle{Points: pts("A", "A", "C")}, errors.ErrCodeMissingPoint},
		{"auxiliary duplicate", Triangle{Points: pts("A", "B", "C", "B")}, errors.ErrCodeInvalidInput},
		{"bad line style", Triangle{Points: pts("A", "B", "C"), InternalLines: []InternalLine{{From: "A", To: "B", Style: "wavy"}}}, errors.ErrCodeInvalidInput},
		{"bad color", Triangle{Points: pts("A", "B", "C"), Color: "nope"}, errors.ErrCodeInvalidInput},
		{"dangling reference is allowed", Triangle{Points: pts("A", "B", "C"), SideLabels: []SideLabel{{From: "A", To: "Z", Label: "x"}}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTriangle(&tt.tri)
			if tt.code == "" {
				if err != nil {
					t.Errorf("ValidateTriangle() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateTriangle() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateTransform(t *testing.T) {
	square := Shape{Vertices: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}}
	rot := Transformation{geom.Rotation{AngleDegrees: 90}}

	tests := []struct {
		name string
		d    TransformDiagram
		code errors.Code
	}{
		{"valid", TransformDiagram{PreImage: square, Transformation: rot}, ""},
		{"too few vertices", TransformDiagram{PreImage: Shape{Vertices: square.Vertices[:2]}, Transformation: rot}, errors.ErrCodeTooFewPoints},
		{"label count", TransformDiagram{PreImage: Shape{Vertices: square.Vertices, VertexLabels: []string{"A"}}, Transformation: rot}, errors.ErrCodeInvalidInput},
		{"side count", TransformDiagram{PreImage: Shape{Vertices: square.Vertices, SideLengths: []string{"1", "1", "1"}}, Transformation: rot}, errors.ErrCodeInvalidInput},
		{"angle index", TransformDiagram{PreImage: Shape{Vertices: square.Vertices, AngleMarks: []PolygonAngleMark{{VertexIndex: 4}}}, Transformation: rot}, errors.ErrCodeInvalidInput},
		{"image label count", TransformDiagram{PreImage: square, Transformation: rot, ImageLabels: []string{"A'"}}, errors.ErrCodeInvalidInput},
		{"missing transformation", TransformDiagram{PreImage: square}, errors.ErrCodeInvalidInput},
		{"degenerate axis", TransformDiagram{PreImage: square, Transformation: Transformation{geom.Reflection{Line: geom.Line{From: geom.Pt(1, 1), To: geom.Pt(1, 1)}}}}, errors.ErrCodeDegenerateAxis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransform(&tt.d)
			if tt.code == "" {
				if err != nil {
					t.Errorf("ValidateTransform() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateTransform() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateDocument(t *testing.T) {
	d := Document{Name: "lesson/1", Family: FamilyTriangle, Triangle: &Triangle{}}
	if err := Validate(d); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("Validate() error = %v, want INVALID_NAME", err)
	}
	d = Document{Name: "t", Family: FamilyTriangle, Width: -1, Triangle: &Triangle{}}
	if err := Validate(d); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Validate() error = %v, want INVALID_INPUT", err)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	docs, err := Decode(strings.NewReader(triangleJSON))
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(docs[0])
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	again, err := DecodeOne(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("DecodeOne() error = %v", err)
	}
	if again.Name != "diagram" || len(again.Triangle.Points) != 3 {
		t.Errorf("round trip = %+v", again)
	}
}

func TestExamplesAreValid(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "examples", "diagrams", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no example diagrams found")
	}
	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			r, err := os.Open(f)
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()
			docs, err := Decode(r)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			for _, d := range docs {
				if err := Validate(d); err != nil {
					t.Errorf("Validate(%s) error = %v", d.Name, err)
				}
			}
		})
	}
}
