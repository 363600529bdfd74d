// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP server.
//
// A run takes one [diagram.Document] through three steps:
//
//  1. Validate: reject documents that cannot be drawn (coded errors)
//  2. Render: draw the document onto a canvas with [figure.Render]
//  3. Export: serialize the canvas into each requested format
//
// Artifacts are cached per format under a key derived from the document
// content and the options that change the output, so a second run of the
// same document skips steps 2 and 3.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/geodraw/pkg/cache"
	"github.com/matzehuels/geodraw/pkg/errors"
	"github.com/matzehuels/geodraw/pkg/render/figure"
	"github.com/matzehuels/geodraw/pkg/render/textbox"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = figure.DefaultWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = figure.DefaultHeight

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = 7 * 24 * time.Hour

	// DefaultConcurrency bounds parallel renders in ExecuteBatch.
	DefaultConcurrency = 4
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. Zero fields take defaults; a
// document's own width and height win over Width and Height.
type Options struct {
	Formats    []string `json:"formats,omitempty"`
	Width      float64  `json:"width,omitempty"`
	Height     float64  `json:"height,omitempty"`
	Padding    float64  `json:"padding,omitempty"`
	FontSize   float64  `json:"font_size,omitempty"`
	LineHeight float64  `json:"line_height,omitempty"`
	Scale      float64  `json:"scale,omitempty"` // PNG only
	Background string   `json:"background,omitempty"`

	// ScreenCoordinates treats input y as growing downward.
	ScreenCoordinates bool `json:"screen_coordinates,omitempty"`

	// EmbedFont embeds the label font in SVG output.
	EmbedFont bool `json:"embed_font,omitempty"`

	// Refresh skips cache reads; fresh artifacts are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger       `json:"-"`
	Measurer *textbox.Measurer `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Name   string
	Family string

	// DocHash is the content hash of the input document.
	DocHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Skipped lists annotations left out of the drawing. It is empty on a
	// cache hit.
	Skipped []Skip

	Stats     Stats
	CacheInfo CacheInfo
}

// Skip is one annotation the renderer left out, with the reason.
type Skip struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Commands   int
	RenderTime time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // every requested artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetRenderDefaults fills zero fields with defaults. It is idempotent.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults and validates the options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateDimension("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", o.Height); err != nil {
		return err
	}
	if o.Scale < 0 || o.Padding < 0 || o.FontSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale, padding and font_size must not be negative")
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(family, format string, width, height float64) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Family:            family,
		Format:            format,
		Width:             width,
		Height:            height,
		Padding:           o.Padding,
		FontSize:          o.FontSize,
		LineHeight:        o.LineHeight,
		Background:        o.Background,
		ScreenCoordinates: o.ScreenCoordinates,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if format != FormatJSON {
		k.EmbedFont = o.EmbedFont
	}
	return k
}

// figureOptions converts o into renderer options.
func (o *Options) figureOptions() figure.Options {
	return figure.Options{
		Width:             o.Width,
		Height:            o.Height,
		Padding:           o.Padding,
		FontSize:          o.FontSize,
		LineHeight:        o.LineHeight,
		ScreenCoordinates: o.ScreenCoordinates,
		Measurer:          o.Measurer,
		Logger:            o.Logger,
	}
}
