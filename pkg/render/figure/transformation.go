package figure

import (
	stderrors "errors"
	"strconv"

	"github.com/matzehuels/geodraw/pkg/diagram"
	"github.com/matzehuels/geodraw/pkg/errors"
	"github.com/matzehuels/geodraw/pkg/geom"
	"github.com/matzehuels/geodraw/pkg/render/canvas"
	"github.com/matzehuels/geodraw/pkg/render/collide"
	"github.com/matzehuels/geodraw/pkg/render/palette"
	"github.com/matzehuels/geodraw/pkg/render/placement"
)

// axisInset keeps an extended reflection axis off the canvas edge.
const axisInset = 4.0

// RenderTransformation draws a pre-image polygon, its image under the
// diagram's transformation, and the aids that explain the transformation.
func RenderTransformation(d *diagram.TransformDiagram, opts Options) (*canvas.Canvas, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "transformation diagram is required")
	}
	if err := diagram.ValidateTransform(d); err != nil {
		return nil, err
	}
	t := d.Transformation.Transformation
	pre := d.PreImage.Vertices
	img, err := imageOf(d)
	if err != nil {
		return nil, err
	}
	visible := transformExtent(t, pre, img)

	xr := &transformRenderer{
		renderer: newRenderer(string(diagram.FamilyTransformation), opts, visible),
		d:        d,
		t:        t,
	}
	xr.pre, xr.img = xr.screen(pre), xr.screen(img)

	preStroke := palette.Resolve(d.PreImage.Style.Stroke, palette.PreImage)
	xr.polygon(xr.pre, canvas.Style{
		Stroke: preStroke,
		Fill:   palette.Resolve(d.PreImage.Style.Fill, palette.Fill(preStroke)),
		Width:  DefaultStrokeWide,
		Dash:   dashFor(d.PreImage.Style.Dashed),
	})
	imgStroke := palette.Resolve(d.ImageStyle.Stroke, palette.Image)
	xr.polygon(xr.img, canvas.Style{
		Stroke: imgStroke,
		Fill:   palette.Resolve(d.ImageStyle.Fill, palette.Fill(imgStroke)),
		Width:  DefaultStrokeWide,
		Dash:   dashFor(d.ImageStyle.Dashed),
	})

	xr.drawAids()
	if d.ShowCorrespondence {
		xr.drawGuides()
	}
	xr.drawAngleMarks()
	xr.drawSideLengths()
	xr.drawVertexLabels()
	xr.drawShapeLabels()
	return xr.cv, nil
}

type transformRenderer struct {
	*renderer
	d        *diagram.TransformDiagram
	t        geom.Transformation
	pre, img []geom.Point // screen space
}

func imageOf(d *diagram.TransformDiagram) ([]geom.Point, error) {
	img, err := geom.Image(d.Transformation.Transformation, d.PreImage.Vertices)
	if err != nil {
		var degenerate *geom.DegenerateAxisError
		if stderrors.As(err, &degenerate) {
			return nil, errors.Wrap(errors.ErrCodeDegenerateAxis, err, "transformation")
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "compute image")
	}
	return img, nil
}

// transformExtent lists every point the viewport must keep in frame.
func transformExtent(t geom.Transformation, pre, img []geom.Point) []geom.Point {
	visible := make([]geom.Point, 0, len(pre)+len(img)+2)
	visible = append(visible, pre...)
	visible = append(visible, img...)
	return append(visible, geom.Aids(t)...)
}

func (xr *transformRenderer) center() (geom.Point, bool) {
	switch t := xr.t.(type) {
	case geom.Rotation:
		return xr.vp.ToScreen(t.Center), true
	case geom.Dilation:
		return xr.vp.ToScreen(t.Center), true
	}
	return geom.Point{}, false
}

func (xr *transformRenderer) drawAids() {
	aid := canvas.Style{Stroke: palette.Aid, Width: thinWidth, Dash: canvas.Dashed}
	switch t := xr.t.(type) {
	case geom.Reflection:
		a, b := xr.vp.ToScreen(t.Line.From), xr.vp.ToScreen(t.Line.To)
		frame := collide.Rect{W: xr.opts.Width, H: xr.opts.Height}.Inflate(-axisInset)
		if p, q, ok := extendAcross(a, b, frame); ok {
			xr.segment(p, q, aid)
		} else {
			xr.segment(a, b, aid)
		}
	case geom.Translation:
		from, to := geom.Centroid(xr.pre), geom.Centroid(xr.img)
		if from.Dist(to) > 1e-6 {
			aid.Arrow = true
			xr.segment(from, to, aid)
		}
	}
	if c, ok := xr.center(); ok {
		xr.dot(c, palette.Aid)
	}
}

// drawGuides links each vertex to its image. Dilations draw one ray from
// the centre through both points; rotations draw both radii.
func (xr *transformRenderer) drawGuides() {
	guide := canvas.Style{Stroke: palette.Aid, Width: 1, Dash: canvas.Dotted}
	line := func(a, b geom.Point) {
		if a.Dist(b) > 1e-6 {
			xr.segment(a, b, guide)
		}
	}
	c, _ := xr.center()
	for i := range xr.pre {
		p, q := xr.pre[i], xr.img[i]
		switch xr.t.(type) {
		case geom.Dilation:
			far := p
			if c.Dist(q) > c.Dist(p) {
				far = q
			}
			line(c, far)
		case geom.Rotation:
			line(c, p)
			line(c, q)
		default:
			line(p, q)
		}
	}
}

func (xr *transformRenderer) drawAngleMarks() {
	n := len(xr.pre)
	centroid := geom.Centroid(xr.pre)
	for _, m := range xr.d.PreImage.AngleMarks {
		i := m.VertexIndex
		xr.markAngle(angleMark{
			name:          xr.vertexName(i),
			label:         m.Label,
			radius:        m.Radius,
			labelDistance: m.LabelDistance,
			right:         m.IsRightAngle,
			arc:           true,
		}, xr.pre[i], xr.pre[(i+n-1)%n], xr.pre[(i+1)%n], centroid)
	}
}

func (xr *transformRenderer) vertexName(i int) string {
	if labels := xr.d.PreImage.VertexLabels; i < len(labels) && labels[i] != "" {
		return labels[i]
	}
	return "vertex " + strconv.Itoa(i)
}

func (xr *transformRenderer) drawSideLengths() {
	n := len(xr.pre)
	centroid := geom.Centroid(xr.pre)
	for i, s := range xr.d.PreImage.SideLengths {
		if s == "" {
			continue
		}
		w, h := xr.labelSize(s)
		c, ok := placement.EdgeLabel(xr.ix, xr.pre[i], xr.pre[(i+1)%n], centroid, w, h)
		if !ok {
			xr.skip("side_label", "zero-length edge %d", i)
			continue
		}
		xr.text(c.Center, s, palette.Label, false)
	}
}

func (xr *transformRenderer) drawVertexLabels() {
	xr.labelVertices(xr.pre, xr.d.PreImage.VertexLabels, palette.Resolve(xr.d.PreImage.Style.Stroke, palette.PreImage))
	xr.labelVertices(xr.img, imageLabels(xr.d), palette.Resolve(xr.d.ImageStyle.Stroke, palette.Image))

	if c, ok := xr.center(); ok && xr.d.CenterLabel != "" {
		all := append(append([]geom.Point(nil), xr.pre...), xr.img...)
		w, h := xr.labelSize(xr.d.CenterLabel)
		at := placement.PointLabel(xr.ix, c, outward(c, geom.Centroid(all)), w, h)
		xr.text(at.Center, xr.d.CenterLabel, palette.Aid, true)
	}
}

func (xr *transformRenderer) labelVertices(pts []geom.Point, labels []string, color string) {
	n := len(pts)
	centroid := geom.Centroid(pts)
	for i, label := range labels {
		if label == "" {
			continue
		}
		w, h := xr.labelSize(label)
		c := placement.VertexLabel(xr.ix, pts[i], pts[(i+n-1)%n], pts[(i+1)%n], centroid, w, h)
		xr.text(c.Center, label, color, true)
	}
}

// imageLabels returns the explicit image labels, or the pre-image labels
// with a prime appended.
func imageLabels(d *diagram.TransformDiagram) []string {
	if len(d.ImageLabels) > 0 {
		return d.ImageLabels
	}
	out := make([]string, len(d.PreImage.VertexLabels))
	for i, l := range d.PreImage.VertexLabels {
		if l != "" {
			out[i] = l + "'"
		}
	}
	return out
}

func (xr *transformRenderer) drawShapeLabels() {
	if xr.d.Title != "" {
		xr.title(xr.d.Title, collide.Bounds(xr.pre).Union(collide.Bounds(xr.img)))
	}
	if l := xr.d.PreImage.Label; l != "" {
		w, h := xr.labelSize(l)
		c, _ := placement.ShapeLabel(xr.ix, collide.Bounds(xr.pre), w, h, placement.Above)
		xr.text(c.Center, l, palette.Resolve(xr.d.PreImage.Style.Stroke, palette.PreImage), false)
	}
	if l := xr.d.ImageLabel; l != "" {
		w, h := xr.labelSize(l)
		c, _ := placement.ShapeLabel(xr.ix, collide.Bounds(xr.img), w, h, placement.Below)
		xr.text(c.Center, l, palette.Resolve(xr.d.ImageStyle.Stroke, palette.Image), false)
	}
}
