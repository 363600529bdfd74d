package figure

import (
	"strconv"

	"github.com/matzehuels/geodraw/pkg/diagram"
	"github.com/matzehuels/geodraw/pkg/errors"
	"github.com/matzehuels/geodraw/pkg/geom"
	"github.com/matzehuels/geodraw/pkg/render/viewport"
)

// Point roles reported by Inspect.
const (
	RoleVertex    = "vertex"
	RoleAuxiliary = "auxiliary"
	RolePreImage  = "pre-image"
	RoleImage     = "image"
)

// InspectedPoint is one input point with its canvas position.
type InspectedPoint struct {
	Label  string
	Role   string
	Data   geom.Point
	Screen geom.Point
}

// Inspection describes how a document maps onto the canvas without drawing
// it.
type Inspection struct {
	Family string
	Width  float64
	Height float64
	Scale  float64
	Points []InspectedPoint
}

// Inspect validates doc and projects its points the same way Render would.
func Inspect(doc diagram.Document, opts Options) (*Inspection, error) {
	if doc.Width > 0 {
		opts.Width = doc.Width
	}
	if doc.Height > 0 {
		opts.Height = doc.Height
	}
	opts = opts.withDefaults()

	var (
		visible []geom.Point
		points  []InspectedPoint
	)
	switch doc.Family {
	case diagram.FamilyTriangle:
		t := doc.Triangle
		if t == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "triangle is required")
		}
		if err := diagram.ValidateTriangle(t); err != nil {
			return nil, err
		}
		visible = t.Positions()
		for i, p := range t.Points {
			role := RoleVertex
			if i >= 3 {
				role = RoleAuxiliary
			}
			points = append(points, InspectedPoint{Label: p.DisplayLabel(), Role: role, Data: p.Point()})
		}
	case diagram.FamilyTransformation:
		d := doc.Transformation
		if d == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "transformation diagram is required")
		}
		if err := diagram.ValidateTransform(d); err != nil {
			return nil, err
		}
		img, err := imageOf(d)
		if err != nil {
			return nil, err
		}
		visible = transformExtent(d.Transformation.Transformation, d.PreImage.Vertices, img)
		points = append(points, labelled(d.PreImage.Vertices, d.PreImage.VertexLabels, "P", RolePreImage)...)
		points = append(points, labelled(img, imageLabels(d), "Q", RoleImage)...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFamily, "unknown family %q", doc.Family)
	}

	vp := viewport.Fit(visible, opts.Width, opts.Height, opts.Padding, !opts.ScreenCoordinates)
	for i := range points {
		points[i].Screen = vp.ToScreen(points[i].Data)
	}
	return &Inspection{
		Family: string(doc.Family),
		Width:  opts.Width,
		Height: opts.Height,
		Scale:  vp.Scale(),
		Points: points,
	}, nil
}

// labelled pairs pts with labels, naming unlabelled points prefix+index.
func labelled(pts []geom.Point, labels []string, prefix, role string) []InspectedPoint {
	out := make([]InspectedPoint, len(pts))
	for i, p := range pts {
		label := prefix + strconv.Itoa(i)
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}
		out[i] = InspectedPoint{Label: label, Role: role, Data: p}
	}
	return out
}
