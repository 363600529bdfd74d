package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/geodraw/pkg/errors"
	"github.com/matzehuels/geodraw/pkg/render"
	"github.com/matzehuels/geodraw/pkg/render/canvas"
)

// Export serializes cv into each of opts.Formats. SVG is produced once and
// reused for the raster formats.
func Export(ctx context.Context, cv *canvas.Canvas, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = cv.SVG()
		}
		return svg
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatPNG:
			data, err = render.ToPNG(ctx, svgOnce(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, svgOnce())
		case FormatJSON:
			data, err = json.MarshalIndent(cv, "", "  ")
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
