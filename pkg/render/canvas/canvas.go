// Package canvas is the drawing surface diagrams render onto.
//
// A [Canvas] records primitive draw commands in screen space (lines,
// polygons, circles, text and SVG paths) without interpreting them. The
// recorded scene is serialized with [Canvas.SVG] or exported as JSON.
package canvas

import (
	"github.com/matzehuels/geodraw/pkg/geom"
)

// Kind identifies a draw command.
type Kind string

const (
	KindLine    Kind = "line"
	KindPolygon Kind = "polygon"
	KindCircle  Kind = "circle"
	KindText    Kind = "text"
	KindPath    Kind = "path"
)

// Anchor is the horizontal alignment of text relative to its position.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Style describes how a shape is stroked and filled. Empty colours mean
// "none".
type Style struct {
	Stroke string    `json:"stroke,omitempty"`
	Fill   string    `json:"fill,omitempty"`
	Width  float64   `json:"width,omitempty"`
	Dash   []float64 `json:"dash,omitempty"`
	Arrow  bool      `json:"arrow,omitempty"`
}

// TextStyle describes how text is drawn.
type TextStyle struct {
	Color      string  `json:"color,omitempty"`
	Size       float64 `json:"size"`
	LineHeight float64 `json:"line_height,omitempty"`
	Anchor     Anchor  `json:"anchor,omitempty"`
	Bold       bool    `json:"bold,omitempty"`
	Italic     bool    `json:"italic,omitempty"`
}

// Common dash patterns.
var (
	Dashed = []float64{6, 4}
	Dotted = []float64{2, 3}
)

// Command is one recorded draw call. Which fields are set depends on Kind.
type Command struct {
	Kind      Kind         `json:"kind"`
	Points    []geom.Point `json:"points,omitempty"`
	Radius    float64      `json:"radius,omitempty"`
	Text      string       `json:"text,omitempty"`
	Path      string       `json:"d,omitempty"`
	Style     *Style       `json:"style,omitempty"`
	TextStyle *TextStyle   `json:"text_style,omitempty"`
}

// Canvas is an append-only buffer of draw commands. It is not safe for
// concurrent use; each render owns its canvas.
type Canvas struct {
	width      float64
	height     float64
	background string
	embedFont  bool
	cmds       []Command
}

// New returns an empty width × height canvas with a white background.
func New(width, height float64) *Canvas {
	return &Canvas{width: width, height: height, background: "#ffffff"}
}

// SetBackground sets the background fill. An empty string leaves the
// background transparent.
func (c *Canvas) SetBackground(color string) { c.background = color }

// SetEmbedFont makes SVG output carry the label font as a data URI.
func (c *Canvas) SetEmbedFont(embed bool) { c.embedFont = embed }

func (c *Canvas) Width() float64  { return c.width }
func (c *Canvas) Height() float64 { return c.height }

// Commands returns the recorded commands in draw order.
func (c *Canvas) Commands() []Command { return c.cmds }

// Len returns the number of recorded commands.
func (c *Canvas) Len() int { return len(c.cmds) }

func (c *Canvas) Line(a, b geom.Point, s Style) {
	c.add(Command{Kind: KindLine, Points: []geom.Point{a, b}, Style: &s})
}

func (c *Canvas) Polygon(pts []geom.Point, s Style) {
	c.add(Command{Kind: KindPolygon, Points: append([]geom.Point(nil), pts...), Style: &s})
}

func (c *Canvas) Circle(center geom.Point, r float64, s Style) {
	c.add(Command{Kind: KindCircle, Points: []geom.Point{center}, Radius: r, Style: &s})
}

// Text draws text centred vertically on pos. Newlines start new lines
// spaced by the style's line height.
func (c *Canvas) Text(pos geom.Point, text string, ts TextStyle) {
	c.add(Command{Kind: KindText, Points: []geom.Point{pos}, Text: text, TextStyle: &ts})
}

// Path draws SVG path data d.
func (c *Canvas) Path(d string, s Style) {
	c.add(Command{Kind: KindPath, Path: d, Style: &s})
}

func (c *Canvas) add(cmd Command) { c.cmds = append(c.cmds, cmd) }
