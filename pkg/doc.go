// Package pkg provides the libraries behind geodraw, an engine that draws
// annotated geometry diagrams: triangle constructions with angle marks, side
// labels and auxiliary lines, and transformation diagrams that show a polygon,
// its image and the aids that explain the mapping.
//
// # Overview
//
// Every label geodraw draws is placed by a collision-aware search, so vertex
// names, side lengths and angle labels never overlap each other or the
// figure's strokes. The pkg directory is organized into four areas:
//
//  1. Geometry - pure math in data space ([geom])
//  2. Diagrams - the input model and its validation ([diagram])
//  3. Rendering - projection, placement and drawing ([render] and subpackages)
//  4. Infrastructure - orchestration, caching, configuration and HTTP ([pipeline],
//     [cache], [config], [server])
//
// # Architecture
//
// The data flow through geodraw:
//
//	JSON document
//	     ↓
//	[diagram] (decode + validate)
//	     ↓
//	[geom] (image under a transformation, implied constructions)
//	     ↓
//	[render/viewport] (fit data space onto the canvas)
//	     ↓
//	[render/angle] + [render/placement] (marks and label positions)
//	     ↓
//	[render/canvas] (draw commands)
//	     ↓
//	SVG / PNG / PDF / JSON
//
// # Quick Start
//
//	doc, _ := diagram.DecodeOne(strings.NewReader(input))
//	cv, err := figure.Render(doc, figure.Options{Width: 480, Height: 400})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("triangle.svg", cv.SVG(), 0o644)
//
// With caching and several output formats:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, doc, pipeline.Options{Formats: []string{"svg", "png"}})
//
// # Main Packages
//
// [geom] - Points, vectors and the four rigid and similarity transformations
// (translation, reflection, rotation, dilation).
//
// [diagram] - Document model for the triangle and transformation families,
// strict JSON decoding and validation with coded errors.
//
// [render/viewport] - Uniform-scale fit of data space onto a padded canvas.
//
// [render/collide] - Rectangles, segments and overlap tests.
//
// [render/placement] - Label candidates and the bounded searches that move a
// label until it stops colliding.
//
// [render/angle] - Angle arcs, right-angle squares, helper rays and implied
// heights.
//
// [render/figure] - The two renderers and Inspect, which reports the
// projection without drawing.
//
// [render/canvas] - Recorded draw commands with SVG and JSON output.
//
// [render] - SVG to PDF and PNG conversion.
//
// [pipeline] - Validate, render, export and cache one or many documents.
//
// [cache] - Artifact cache with file, Redis and MongoDB backends.
//
// [config] - TOML configuration for the CLI and server.
//
// [server] - HTTP render API.
//
// [errors] - Coded errors shared by every layer.
//
// [observability] - Hooks for render, cache and server events.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/geom
// [diagram]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/diagram
// [render]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/render
// [render/viewport]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/render/viewport
// [render/collide]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/render/collide
// [render/placement]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/render/placement
// [render/angle]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/render/angle
// [render/figure]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/render/figure
// [render/canvas]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/render/canvas
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/geodraw/pkg/observability
package pkg
