// Package render provides the drawing side of geodraw.
//
// # Overview
//
// The subpackages split a render into small, independently testable steps:
//
//   - [viewport]: fit world coordinates into a padded canvas
//   - [collide]: segment and rectangle tests in screen space
//   - [placement]: collision-aware label search
//   - [angle]: arcs and right-angle markers
//   - [textbox]: label box measurement
//   - [palette]: named colours and tints
//   - [canvas]: the draw-command buffer and its SVG and JSON forms
//   - [figure]: the renderers that drive all of the above per diagram family
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	cv, err := figure.RenderTriangle(t, figure.Options{})
//	pdf, err := render.ToPDF(ctx, cv.SVG())
//	png, err := render.ToPNG(ctx, cv.SVG(), 2.0) // 2x scale
//
// [Available] reports whether the converter is installed, so callers can
// refuse raster formats up front.
package render
