// Package figure renders diagram descriptions onto a canvas.
//
// A render runs in a fixed order so that every placement sees everything
// drawn before it:
//
//  1. compute derived geometry (the image of a transformed shape)
//  2. fit the viewport around every point that must be visible
//  3. draw polygons, internal lines and transform aids
//  4. draw angle arcs and right-angle markers
//  5. place side labels, then vertex labels, then shape labels
//
// Each drawn segment and placed label box is recorded in a
// [placement.Index] owned by the render, and later labels avoid all of it.
// References to unknown points and zero-length edges skip the affected
// annotation; only the input errors listed in pkg/errors abort a render.
package figure

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/geodraw/pkg/geom"
	"github.com/matzehuels/geodraw/pkg/render/angle"
	"github.com/matzehuels/geodraw/pkg/render/canvas"
	"github.com/matzehuels/geodraw/pkg/render/collide"
	"github.com/matzehuels/geodraw/pkg/render/palette"
	"github.com/matzehuels/geodraw/pkg/render/placement"
	"github.com/matzehuels/geodraw/pkg/render/textbox"
	"github.com/matzehuels/geodraw/pkg/render/viewport"
)

// Defaults applied by [Options] for zero fields.
const (
	DefaultWidth      = 400.0
	DefaultHeight     = 320.0
	DefaultPadding    = 40.0
	DefaultFontSize   = 14.0
	DefaultArcRadius  = 18.0
	DefaultStrokeWide = 2.0

	labelPad  = 2.0
	pointDot  = 3.0
	thinWidth = 1.2
)

// Options configures a render. The zero value is usable.
type Options struct {
	Width      float64
	Height     float64
	Padding    float64
	FontSize   float64
	LineHeight float64

	// ArcRadius is the base radius of angle arcs before acute-angle scaling.
	ArcRadius float64
	// MarkerSize is the leg length of right-angle markers.
	MarkerSize float64

	// ScreenCoordinates lays the diagram out with y growing downward, as
	// given. By default y grows upward like a coordinate plane.
	ScreenCoordinates bool

	Measurer *textbox.Measurer
	Logger   *log.Logger

	// OnSkip, if set, is called for every annotation left out of the
	// drawing.
	OnSkip func(kind, reason string)
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.ArcRadius <= 0 {
		o.ArcRadius = DefaultArcRadius
	}
	if o.MarkerSize <= 0 {
		o.MarkerSize = angle.RightAngleSize
	}
	if o.Measurer == nil {
		o.Measurer = textbox.Default()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// renderer carries the per-render state shared by both families.
type renderer struct {
	opts   Options
	family string
	cv     *canvas.Canvas
	ix     *placement.Index
	vp     viewport.Projector
}

func newRenderer(family string, opts Options, visible []geom.Point) *renderer {
	opts = opts.withDefaults()
	return &renderer{
		opts:   opts,
		family: family,
		cv:     canvas.New(opts.Width, opts.Height),
		ix:     placement.NewIndex(),
		vp:     viewport.Fit(visible, opts.Width, opts.Height, opts.Padding, !opts.ScreenCoordinates),
	}
}

func (r *renderer) skip(kind, format string, args ...any) {
	reason := fmt.Sprintf(format, args...)
	r.opts.Logger.Debug("annotation skipped", "family", r.family, "kind", kind, "reason", reason)
	if r.opts.OnSkip != nil {
		r.opts.OnSkip(kind, reason)
	}
}

func (r *renderer) screen(pts []geom.Point) []geom.Point { return r.vp.ToScreenAll(pts) }

// labelSize returns the padded box of text.
func (r *renderer) labelSize(text string) (w, h float64) {
	b := r.opts.Measurer.Measure(text, 0, r.opts.FontSize, r.opts.LineHeight)
	return b.Width + 2*labelPad, b.Height + 2*labelPad
}

func (r *renderer) text(c geom.Point, s, color string, italic bool) {
	r.cv.Text(c, s, canvas.TextStyle{
		Color:      color,
		Size:       r.opts.FontSize,
		LineHeight: r.opts.LineHeight,
		Anchor:     canvas.AnchorMiddle,
		Italic:     italic,
	})
}

// polygon draws and records a closed outline.
func (r *renderer) polygon(pts []geom.Point, style canvas.Style) {
	r.cv.Polygon(pts, style)
	r.ix.AddSegments(pts, true)
}

// segment draws and records a single line.
func (r *renderer) segment(a, b geom.Point, style canvas.Style) {
	r.cv.Line(a, b, style)
	r.ix.AddSegment(a, b)
}

// dot draws a point marker and reserves its area.
func (r *renderer) dot(p geom.Point, color string) {
	r.cv.Circle(p, pointDot, canvas.Style{Fill: color})
	r.ix.AddRect(collide.RectAround(p, 2*pointDot, 2*pointDot))
}

// markAngle draws an arc or square marker at vertex between the rays toward
// p1 and p2, then places its label. All points are in screen space.
func (r *renderer) markAngle(m angleMark, vertex, p1, p2, centroid geom.Point) {
	color := palette.Resolve(m.color, palette.AngleMark)
	style := canvas.Style{Stroke: color, Width: thinWidth}

	if m.right {
		sq, ok := angle.RightAngle(vertex, p1, p2, r.opts.MarkerSize)
		if !ok {
			r.skip("angle_mark", "degenerate right angle at %s", m.name)
			return
		}
		r.cv.Path(sq.Path(), style)
		r.ix.AddSegments(sq.Points(), false)
		if m.label != "" {
			dir := angle.RightAngleLabelDirection(vertex, p1, p2)
			r.placeAngleLabel(m.label, vertex, dir, r.distance(m, r.opts.MarkerSize/2), color)
		}
		return
	}

	arc, ok := angle.Arc(vertex, p1, p2, centroid, r.radius(m))
	if !ok {
		r.skip("angle_mark", "degenerate angle at %s", m.name)
		return
	}
	if m.arc {
		r.cv.Path(arc.Path(), style)
	}
	if m.label != "" {
		r.placeAngleLabel(m.label, vertex, arc.Bisector, r.distance(m, arc.Radius), color)
	}
}

func (r *renderer) radius(m angleMark) float64 {
	if m.radius > 0 {
		return m.radius
	}
	return r.opts.ArcRadius
}

// distance is how far an angle label sits from its vertex: an explicit
// label distance wins over the mark's own extent.
func (r *renderer) distance(m angleMark, extent float64) float64 {
	if m.labelDistance > 0 {
		return m.labelDistance
	}
	return extent
}

func (r *renderer) placeAngleLabel(label string, vertex, dir geom.Point, radius float64, color string) {
	w, h := r.labelSize(label)
	start := angle.LabelPosition(vertex, dir, radius, w, h)
	c := placement.Near(r.ix, start, dir, w, h)
	r.text(c.Center, label, color, false)
}

// angleMark is the family-independent form of an angle annotation.
type angleMark struct {
	name          string
	label         string
	color         string
	radius        float64
	labelDistance float64
	right         bool
	arc           bool
}

// extendAcross returns the part of the infinite line through a and b that
// lies inside r. ok is false when the line misses r or a == b.
func extendAcross(a, b geom.Point, r collide.Rect) (p, q geom.Point, ok bool) {
	d := b.Sub(a)
	t0, t1 := math.Inf(-1), math.Inf(1)
	// Each boundary constrains t by num*t <= den.
	bound := func(num, den float64) bool {
		if num == 0 {
			return den >= 0
		}
		t := den / num
		if num < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		return true
	}
	if !bound(-d.X, a.X-r.X) || !bound(d.X, r.X+r.W-a.X) ||
		!bound(-d.Y, a.Y-r.Y) || !bound(d.Y, r.Y+r.H-a.Y) {
		return geom.Point{}, geom.Point{}, false
	}
	if math.IsInf(t0, 0) || math.IsInf(t1, 0) || t0 > t1 {
		return geom.Point{}, geom.Point{}, false
	}
	return a.Add(d.Scale(t0)), a.Add(d.Scale(t1)), true
}

// outward returns the unit direction from centre to p, or straight up when
// they coincide.
func outward(p, centre geom.Point) geom.Point {
	if d := p.Sub(centre); d.Len() > 1e-9 {
		return d.Unit()
	}
	return geom.Pt(0, -1)
}

func dashFor(dashed bool) []float64 {
	if dashed {
		return canvas.Dashed
	}
	return nil
}
