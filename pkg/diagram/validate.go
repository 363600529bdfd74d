package diagram

import (
	stderrors "errors"

	"github.com/matzehuels/geodraw/pkg/errors"
	"github.com/matzehuels/geodraw/pkg/geom"
	"github.com/matzehuels/geodraw/pkg/render/palette"
)

// Validate checks d and returns the first problem found as a coded error.
func Validate(d Document) error {
	if err := errors.ValidateName(d.Name); err != nil {
		return err
	}
	if d.Width != 0 {
		if err := errors.ValidateDimension("width", d.Width); err != nil {
			return err
		}
	}
	if d.Height != 0 {
		if err := errors.ValidateDimension("height", d.Height); err != nil {
			return err
		}
	}
	switch d.Family {
	case FamilyTriangle:
		if d.Triangle == nil {
			return errors.New(errors.ErrCodeInvalidInput, "triangle diagram is missing")
		}
		return ValidateTriangle(d.Triangle)
	case FamilyTransformation:
		if d.Transformation == nil {
			return errors.New(errors.ErrCodeInvalidInput, "transformation diagram is missing")
		}
		return ValidateTransform(d.Transformation)
	default:
		return errors.New(errors.ErrCodeInvalidFamily, "unknown family %q", d.Family)
	}
}

// ValidateTriangle checks a triangle construction. It needs at least three
// points, and the three core points must carry distinct IDs. Auxiliary
// points must not reuse an ID.
func ValidateTriangle(t *Triangle) error {
	if len(t.Points) < 3 {
		return errors.New(errors.ErrCodeTooFewPoints, "triangle needs at least 3 points, got %d", len(t.Points))
	}
	seen := make(map[string]bool, len(t.Points))
	for i, p := range t.Points {
		if p.ID == "" {
			if i < 3 {
				return errors.New(errors.ErrCodeMissingPoint, "core point %d has no id", i+1)
			}
			return errors.New(errors.ErrCodeInvalidInput, "point %d has no id", i+1)
		}
		if seen[p.ID] {
			if i < 3 {
				return errors.New(errors.ErrCodeMissingPoint, "core point id %q is used twice", p.ID)
			}
			return errors.New(errors.ErrCodeInvalidInput, "duplicate point id %q", p.ID)
		}
		seen[p.ID] = true
	}
	for i, l := range t.InternalLines {
		if !l.Style.Valid() {
			return errors.New(errors.ErrCodeInvalidInput, "internal line %d: unknown style %q", i+1, l.Style)
		}
	}
	for i, m := range t.AngleMarks {
		if m.Radius < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "angle mark %d: radius must not be negative", i+1)
		}
	}
	return validateColors(t.Color, t.FillColor)
}

// ValidateTransform checks a transformation diagram.
func ValidateTransform(d *TransformDiagram) error {
	if err := ValidateShape("preImage", &d.PreImage); err != nil {
		return err
	}
	if n := len(d.ImageLabels); n > 0 && n != len(d.PreImage.Vertices) {
		return errors.New(errors.ErrCodeInvalidInput,
			"imageLabels has %d entries, want %d", n, len(d.PreImage.Vertices))
	}
	if err := geom.Validate(d.Transformation.Transformation); err != nil {
		var degenerate *geom.DegenerateAxisError
		if stderrors.As(err, &degenerate) {
			return errors.Wrap(errors.ErrCodeDegenerateAxis, err, "transformation")
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "transformation")
	}
	return validateColors(d.ImageStyle.Stroke, d.ImageStyle.Fill)
}

// ValidateShape checks a polygon: at least three vertices, and per-vertex
// and per-edge lists aligned with the vertex count.
func ValidateShape(what string, s *Shape) error {
	n := len(s.Vertices)
	if n < 3 {
		return errors.New(errors.ErrCodeTooFewPoints, "%s needs at least 3 vertices, got %d", what, n)
	}
	if l := len(s.VertexLabels); l > 0 && l != n {
		return errors.New(errors.ErrCodeInvalidInput, "%s: vertexLabels has %d entries, want %d", what, l, n)
	}
	if l := len(s.SideLengths); l > 0 && l != n {
		return errors.New(errors.ErrCodeInvalidInput, "%s: sideLengths has %d entries, want %d", what, l, n)
	}
	for i, m := range s.AngleMarks {
		if m.VertexIndex < 0 || m.VertexIndex >= n {
			return errors.New(errors.ErrCodeInvalidInput,
				"%s: angle mark %d references vertex %d of %d", what, i+1, m.VertexIndex, n)
		}
	}
	return validateColors(s.Style.Stroke, s.Style.Fill)
}

func validateColors(colors ...string) error {
	for _, c := range colors {
		if c == "" {
			continue
		}
		if _, err := palette.Parse(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "color")
		}
	}
	return nil
}
