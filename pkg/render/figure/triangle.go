package figure

import (
	"github.com/matzehuels/geodraw/pkg/diagram"
	"github.com/matzehuels/geodraw/pkg/errors"
	"github.com/matzehuels/geodraw/pkg/geom"
	"github.com/matzehuels/geodraw/pkg/render/angle"
	"github.com/matzehuels/geodraw/pkg/render/canvas"
	"github.com/matzehuels/geodraw/pkg/render/collide"
	"github.com/matzehuels/geodraw/pkg/render/palette"
	"github.com/matzehuels/geodraw/pkg/render/placement"
)

// RenderTriangle draws a triangle construction: the triangle through the
// first three points, internal lines, angle marks, side labels and point
// labels. Fewer than three points or a broken core point is fatal.
func RenderTriangle(t *diagram.Triangle, opts Options) (*canvas.Canvas, error) {
	if t == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "triangle is required")
	}
	if err := diagram.ValidateTriangle(t); err != nil {
		return nil, err
	}

	tr := &triangleRenderer{
		renderer: newRenderer(string(diagram.FamilyTriangle), opts, t.Positions()),
		t:        t,
		pts:      make(map[string]geom.Point, len(t.Points)),
		dashed:   newDashedLines(),
	}
	for _, p := range t.Points {
		tr.pts[p.ID] = tr.vp.ToScreen(p.Point())
	}
	core := tr.screen(t.Positions()[:3])
	centroid := geom.Centroid(core)

	stroke := palette.Resolve(t.Color, palette.Ink)
	tr.polygon(core, canvas.Style{
		Stroke: stroke,
		Fill:   palette.Resolve(t.FillColor, palette.Fill(stroke)),
		Width:  DefaultStrokeWide,
	})
	tr.drawInternalLines()
	tr.drawAuxiliaryPoints()
	tr.drawAngleMarks(centroid)
	tr.drawSideLabels(centroid)
	if !t.HideLabels {
		tr.drawPointLabels(core, centroid)
	}
	if t.Title != "" {
		tr.title(t.Title, collide.Bounds(core))
	}
	return tr.cv, nil
}

type triangleRenderer struct {
	*renderer
	t      *diagram.Triangle
	pts    map[string]geom.Point // screen positions by ID
	dashed *dashedLines
}

// isCoreVertex reports whether id names one of the triangle's own three
// vertices rather than an auxiliary construction point.
func (tr *triangleRenderer) isCoreVertex(id string) bool {
	for _, p := range tr.t.Core() {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (tr *triangleRenderer) lookup(ids ...string) ([]geom.Point, string, bool) {
	out := make([]geom.Point, len(ids))
	for i, id := range ids {
		p, ok := tr.pts[id]
		if !ok {
			return nil, id, false
		}
		out[i] = p
	}
	return out, "", true
}

func (tr *triangleRenderer) drawInternalLines() {
	for _, l := range tr.t.InternalLines {
		ends, missing, ok := tr.lookup(l.From, l.To)
		if !ok {
			tr.skip("internal_line", "unknown point %q", missing)
			continue
		}
		if ends[0].Dist(ends[1]) < 1e-9 {
			tr.skip("internal_line", "zero-length line %s-%s", l.From, l.To)
			continue
		}
		style := canvas.Style{Stroke: palette.Resolve(l.Color, palette.Aid), Width: thinWidth}
		switch l.Style {
		case diagram.LineDashed:
			style.Dash = canvas.Dashed
		case diagram.LineDotted:
			style.Dash = canvas.Dotted
		}
		tr.segment(ends[0], ends[1], style)
		if l.Style == diagram.LineDashed {
			tr.dashed.add(l.From, l.To, ends[0], ends[1])
		}
	}
}

func (tr *triangleRenderer) drawAuxiliaryPoints() {
	for _, p := range tr.t.Points[3:] {
		tr.dot(tr.pts[p.ID], palette.Ink)
	}
}

func (tr *triangleRenderer) drawAngleMarks(centroid geom.Point) {
	for _, m := range tr.t.AngleMarks {
		pts, missing, ok := tr.lookup(m.Vertex, m.PointOnFirstRay, m.PointOnSecondRay)
		if !ok {
			tr.skip("angle_mark", "unknown point %q", missing)
			continue
		}
		v, p1, p2 := pts[0], pts[1], pts[2]
		if m.IsRightAngle {
			tr.impliedHeight(m, v, p1, p2)
		}
		tr.markAngle(angleMark{
			name:   m.Vertex,
			label:  m.Label,
			color:  m.Color,
			radius: m.Radius,
			right:  m.IsRightAngle,
			arc:    m.ArcVisible(),
		}, v, p1, p2, centroid)
		if m.IsRightAngle {
			tr.helperRays(m.Vertex, v, p1, p2)
		}
	}
}

// impliedHeight draws the dashed height a right angle at an auxiliary point
// implies when the input leaves it out: from the vertex to the farther of
// the two ray points.
func (tr *triangleRenderer) impliedHeight(m diagram.AngleMark, v, p1, p2 geom.Point) {
	if tr.isCoreVertex(m.Vertex) {
		return
	}
	far := m.PointOnFirstRay
	if v.Dist(p2) > v.Dist(p1) {
		far = m.PointOnSecondRay
	}
	if far == m.Vertex || tr.dashed.connects(m.Vertex, far) {
		return
	}
	seg := angle.ImpliedHeight(v, p1, p2)
	if seg.A.Dist(seg.B) < 1e-9 {
		return
	}
	tr.segment(seg.A, seg.B, canvas.Style{Stroke: palette.Aid, Width: thinWidth, Dash: canvas.Dashed})
	tr.dashed.add(m.Vertex, far, seg.A, seg.B)
}

func (tr *triangleRenderer) helperRays(id string, v, p1, p2 geom.Point) {
	dirs := tr.dashed.at(id)
	if len(dirs) == 0 {
		return
	}
	sq, ok := angle.RightAngle(v, p1, p2, tr.opts.MarkerSize)
	if !ok {
		return
	}
	style := canvas.Style{Stroke: palette.Aid, Width: thinWidth, Dash: canvas.Dashed}
	for _, s := range angle.HelperRays(sq, dirs, angle.HelperLength) {
		tr.segment(s.A, s.B, style)
	}
}

func (tr *triangleRenderer) drawSideLabels(centroid geom.Point) {
	for _, s := range tr.t.SideLabels {
		if s.Label == "" {
			continue
		}
		ends, missing, ok := tr.lookup(s.From, s.To)
		if !ok {
			tr.skip("side_label", "unknown point %q", missing)
			continue
		}
		w, h := tr.labelSize(s.Label)
		c, ok := placement.EdgeLabel(tr.ix, ends[0], ends[1], centroid, w, h)
		if !ok {
			tr.skip("side_label", "zero-length side %s-%s", s.From, s.To)
			continue
		}
		tr.text(c.Center, s.Label, palette.Resolve(s.Color, palette.Label), false)
	}
}

func (tr *triangleRenderer) drawPointLabels(core []geom.Point, centroid geom.Point) {
	for i, p := range tr.t.Core() {
		label := p.DisplayLabel()
		w, h := tr.labelSize(label)
		c := placement.VertexLabel(tr.ix, core[i], core[(i+2)%3], core[(i+1)%3], centroid, w, h)
		tr.text(c.Center, label, palette.Label, true)
	}
	for _, p := range tr.t.Points[3:] {
		label := p.DisplayLabel()
		at := tr.pts[p.ID]
		w, h := tr.labelSize(label)
		c := placement.PointLabel(tr.ix, at, outward(at, centroid), w, h)
		tr.text(c.Center, label, palette.Label, true)
	}
}

func (r *renderer) title(text string, bbox collide.Rect) {
	w, h := r.labelSize(text)
	c, _ := placement.ShapeLabel(r.ix, bbox, w, h, placement.Above)
	r.cv.Text(c.Center, text, canvas.TextStyle{
		Color:  palette.Label,
		Size:   r.opts.FontSize,
		Anchor: canvas.AnchorMiddle,
		Bold:   true,
	})
}

// dashedLines tracks dashed and dotted lines by endpoint ID.
type dashedLines struct {
	dirs  map[string][]geom.Point
	pairs map[[2]string]bool
}

func newDashedLines() *dashedLines {
	return &dashedLines{dirs: make(map[string][]geom.Point), pairs: make(map[[2]string]bool)}
}

func (d *dashedLines) add(from, to string, a, b geom.Point) {
	d.dirs[from] = append(d.dirs[from], geom.Dir(a, b))
	d.dirs[to] = append(d.dirs[to], geom.Dir(b, a))
	d.pairs[[2]string{from, to}] = true
	d.pairs[[2]string{to, from}] = true
}

func (d *dashedLines) connects(a, b string) bool { return d.pairs[[2]string{a, b}] }

// at returns the directions of dashed lines leaving id.
func (d *dashedLines) at(id string) []geom.Point { return d.dirs[id] }
