package diagram

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/geodraw/pkg/geom"
)

// ShapeStyle is the stroke and fill of a polygon. Empty fields take the
// renderer's defaults.
type ShapeStyle struct {
	Stroke string `json:"stroke,omitempty"`
	Fill   string `json:"fill,omitempty"`
	Dashed bool   `json:"dashed,omitempty"`
}

// PolygonAngleMark marks the interior angle at Vertices[VertexIndex],
// between the polygon's two edges at that vertex.
type PolygonAngleMark struct {
	VertexIndex   int     `json:"vertexIndex"`
	Radius        float64 `json:"radius,omitempty"`
	Label         string  `json:"label,omitempty"`
	LabelDistance float64 `json:"labelDistance,omitempty"`
	IsRightAngle  bool    `json:"isRightAngle,omitempty"`
}

// Shape is a polygon with optional annotations. Edge i runs from
// Vertices[i] to Vertices[(i+1) % n], and SideLengths[i] labels edge i.
type Shape struct {
	Vertices     []geom.Point       `json:"vertices"`
	VertexLabels []string           `json:"vertexLabels,omitempty"`
	Label        string             `json:"label,omitempty"`
	Style        ShapeStyle         `json:"style,omitzero"`
	AngleMarks   []PolygonAngleMark `json:"angleMarks,omitempty"`
	SideLengths  []string           `json:"sideLengths,omitempty"`
}

// TransformDiagram is a pre-image polygon and the transformation that maps
// it to its image.
type TransformDiagram struct {
	PreImage       Shape          `json:"preImage"`
	Transformation Transformation `json:"transformation"`

	// ImageLabels overrides the image's vertex labels. By default each
	// pre-image label is reused with a prime appended.
	ImageLabels []string   `json:"imageLabels,omitempty"`
	ImageLabel  string     `json:"imageLabel,omitempty"`
	ImageStyle  ShapeStyle `json:"imageStyle,omitzero"`

	// ShowCorrespondence draws guides from each vertex to its image.
	ShowCorrespondence bool   `json:"showCorrespondence,omitempty"`
	CenterLabel        string `json:"centerLabel,omitempty"`
	Title              string `json:"title,omitempty"`
}

// Transformation carries a geom.Transformation through JSON, using a "type"
// field to select the variant:
//
//	{"type": "rotation", "center": {"x": 0, "y": 0}, "angleDegrees": 90}
type Transformation struct {
	geom.Transformation
}

func (t Transformation) MarshalJSON() ([]byte, error) {
	if t.Transformation == nil {
		return []byte("null"), nil
	}
	body, err := json.Marshal(t.Transformation)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["type"], _ = json.Marshal(t.Kind())
	return json.Marshal(fields)
}

func (t *Transformation) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Transformation = nil
		return nil
	}
	var head struct {
		Type geom.Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	var err error
	switch head.Type {
	case geom.KindTranslation:
		t.Transformation, err = decodeVariant[geom.Translation](data)
	case geom.KindReflection:
		t.Transformation, err = decodeVariant[geom.Reflection](data)
	case geom.KindRotation:
		t.Transformation, err = decodeVariant[geom.Rotation](data)
	case geom.KindDilation:
		t.Transformation, err = decodeVariant[geom.Dilation](data)
	case "":
		return fmt.Errorf("transformation type is required")
	default:
		return fmt.Errorf("unknown transformation type %q", head.Type)
	}
	return err
}

func decodeVariant[T geom.Transformation](data []byte) (geom.Transformation, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
