package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/geodraw/pkg/fonts"
)

const fontFamily = fonts.FallbackFontFamily

// SVG serializes the recorded commands to a standalone SVG document.
func (c *Canvas) SVG() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.width, c.height, c.width, c.height)

	if c.usesArrows() {
		buf.WriteString(`  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="context-stroke"/>
    </marker>
  </defs>
`)
	}
	if c.embedFont && c.hasText() {
		fmt.Fprintf(&buf, "  <style>%s</style>\n", fonts.FontFace())
	}
	if c.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(c.background))
	}
	for _, cmd := range c.cmds {
		writeCommand(&buf, cmd)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (c *Canvas) usesArrows() bool {
	for _, cmd := range c.cmds {
		if cmd.Style != nil && cmd.Style.Arrow {
			return true
		}
	}
	return false
}

func (c *Canvas) hasText() bool {
	for _, cmd := range c.cmds {
		if cmd.Kind == KindText {
			return true
		}
	}
	return false
}

func writeCommand(buf *bytes.Buffer, cmd Command) {
	switch cmd.Kind {
	case KindLine:
		a, b := cmd.Points[0], cmd.Points[1]
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s/>`+"\n",
			a.X, a.Y, b.X, b.Y, styleAttrs(cmd.Style))
	case KindPolygon:
		pts := make([]string, len(cmd.Points))
		for i, p := range cmd.Points {
			pts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
		}
		fmt.Fprintf(buf, `  <polygon points="%s"%s/>`+"\n", strings.Join(pts, " "), styleAttrs(cmd.Style))
	case KindCircle:
		c := cmd.Points[0]
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f"%s/>`+"\n", c.X, c.Y, cmd.Radius, styleAttrs(cmd.Style))
	case KindPath:
		fmt.Fprintf(buf, `  <path d="%s"%s/>`+"\n", EscapeXML(cmd.Path), styleAttrs(cmd.Style))
	case KindText:
		writeText(buf, cmd)
	}
}

func styleAttrs(s *Style) string {
	if s == nil {
		return ` fill="none" stroke="#000000"`
	}
	var b strings.Builder
	fmt.Fprintf(&b, ` fill="%s"`, colorOrNone(s.Fill))
	fmt.Fprintf(&b, ` stroke="%s"`, colorOrNone(s.Stroke))
	if s.Width > 0 {
		fmt.Fprintf(&b, ` stroke-width="%.2f"`, s.Width)
	}
	if len(s.Dash) > 0 {
		parts := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			parts[i] = fmt.Sprintf("%g", d)
		}
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	if s.Arrow {
		b.WriteString(` marker-end="url(#arrow)"`)
	}
	return b.String()
}

func writeText(buf *bytes.Buffer, cmd Command) {
	ts := cmd.TextStyle
	pos := cmd.Points[0]
	anchor := ts.Anchor
	if anchor == "" {
		anchor = AnchorMiddle
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="central" font-family="%s" font-size="%.1f" fill="%s"`,
		pos.X, pos.Y, anchor, EscapeXML(fontFamily), ts.Size, colorOr(ts.Color, "#000000"))
	if ts.Bold {
		buf.WriteString(` font-weight="bold"`)
	}
	if ts.Italic {
		buf.WriteString(` font-style="italic"`)
	}
	buf.WriteString(">")

	lines := strings.Split(cmd.Text, "\n")
	if len(lines) == 1 {
		buf.WriteString(EscapeXML(cmd.Text))
		buf.WriteString("</text>\n")
		return
	}
	lh := ts.LineHeight
	if lh <= 0 {
		lh = ts.Size * 1.2
	}
	y := pos.Y - float64(len(lines)-1)*lh/2
	for i, line := range lines {
		fmt.Fprintf(buf, `<tspan x="%.2f" y="%.2f">%s</tspan>`, pos.X, y+float64(i)*lh, EscapeXML(line))
	}
	buf.WriteString("</text>\n")
}

func colorOrNone(c string) string { return colorOr(c, "none") }

func colorOr(c, def string) string {
	if c == "" {
		return def
	}
	return EscapeXML(c)
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
