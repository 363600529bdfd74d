package figure

import (
	"github.com/matzehuels/geodraw/pkg/diagram"
	"github.com/matzehuels/geodraw/pkg/errors"
	"github.com/matzehuels/geodraw/pkg/render/canvas"
)

// Render draws doc with the renderer for its family. A width or height set
// on the document overrides opts.
func Render(doc diagram.Document, opts Options) (*canvas.Canvas, error) {
	if doc.Width > 0 {
		opts.Width = doc.Width
	}
	if doc.Height > 0 {
		opts.Height = doc.Height
	}
	switch doc.Family {
	case diagram.FamilyTriangle:
		return RenderTriangle(doc.Triangle, opts)
	case diagram.FamilyTransformation:
		return RenderTransformation(doc.Transformation, opts)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFamily, "unknown family %q", doc.Family)
	}
}
