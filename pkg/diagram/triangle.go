package diagram

import "github.com/matzehuels/geodraw/pkg/geom"

// NamedPoint is a point of a triangle construction, referenced by ID.
type NamedPoint struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// Point returns the position of p.
func (p NamedPoint) Point() geom.Point { return geom.Pt(p.X, p.Y) }

// DisplayLabel returns the label drawn next to p, defaulting to its ID.
func (p NamedPoint) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}

// AngleMark marks the angle at Vertex between the rays toward
// PointOnFirstRay and PointOnSecondRay.
type AngleMark struct {
	PointOnFirstRay  string  `json:"pointOnFirstRay"`
	Vertex           string  `json:"vertex"`
	PointOnSecondRay string  `json:"pointOnSecondRay"`
	Label            string  `json:"label,omitempty"`
	Color            string  `json:"color,omitempty"`
	Radius           float64 `json:"radius,omitempty"`
	IsRightAngle     bool    `json:"isRightAngle,omitempty"`
	ShowArc          *bool   `json:"showArc,omitempty"`
}

// ArcVisible reports whether the arc is drawn. Arcs are shown unless
// ShowArc is explicitly false.
func (m AngleMark) ArcVisible() bool { return m.ShowArc == nil || *m.ShowArc }

// LineStyle is the stroke pattern of an internal line.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
)

// Valid reports whether s is a known style. The empty style means solid.
func (s LineStyle) Valid() bool {
	switch s {
	case "", LineSolid, LineDashed, LineDotted:
		return true
	}
	return false
}

// InternalLine is an auxiliary segment between two named points, such as an
// altitude, median or bisector.
type InternalLine struct {
	From  string    `json:"from"`
	To    string    `json:"to"`
	Style LineStyle `json:"style,omitempty"`
	Color string    `json:"color,omitempty"`
}

// SideLabel labels the segment between two named points.
type SideLabel struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// Triangle is a triangle construction. The first three points form the
// triangle; further points are auxiliary construction points.
type Triangle struct {
	Points        []NamedPoint   `json:"points"`
	AngleMarks    []AngleMark    `json:"angleMarks,omitempty"`
	SideLabels    []SideLabel    `json:"sideLabels,omitempty"`
	InternalLines []InternalLine `json:"internalLines,omitempty"`
	Title         string         `json:"title,omitempty"`
	Color         string         `json:"color,omitempty"`
	FillColor     string         `json:"fillColor,omitempty"`
	HideLabels    bool           `json:"hideVertexLabels,omitempty"`
}

// Lookup indexes the points by ID.
func (t *Triangle) Lookup() map[string]NamedPoint {
	m := make(map[string]NamedPoint, len(t.Points))
	for _, p := range t.Points {
		m[p.ID] = p
	}
	return m
}

// Core returns the three points that form the triangle.
func (t *Triangle) Core() []NamedPoint {
	if len(t.Points) < 3 {
		return t.Points
	}
	return t.Points[:3]
}

// Positions returns the coordinates of every point.
func (t *Triangle) Positions() []geom.Point {
	out := make([]geom.Point, len(t.Points))
	for i, p := range t.Points {
		out[i] = p.Point()
	}
	return out
}
