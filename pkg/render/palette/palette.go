// Package palette parses the colour strings found in diagram descriptions
// and derives fills and tints from them.
package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Default colours.
const (
	Ink       = "#1f2937"
	PreImage  = "#2563eb"
	Image     = "#dc2626"
	Aid       = "#6b7280"
	AngleMark = "#b45309"
	Label     = "#111827"
)

var named = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#dc2626",
	"green":  "#16a34a",
	"blue":   "#2563eb",
	"orange": "#ea580c",
	"purple": "#7c3aed",
	"teal":   "#0d9488",
	"yellow": "#ca8a04",
	"pink":   "#db2777",
	"gray":   "#6b7280",
	"grey":   "#6b7280",
	"brown":  "#92400e",
}

// Parse normalizes a named colour, #rgb or #rrggbb string to lower-case
// #rrggbb.
func Parse(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[s]; ok {
		return hex, nil
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil || len(s) != 7 {
		return "", fmt.Errorf("invalid colour %q", s)
	}
	return c.Hex(), nil
}

// Resolve returns the parsed colour s, or fallback when s is empty or
// invalid.
func Resolve(s, fallback string) string {
	if s == "" {
		return fallback
	}
	c, err := Parse(s)
	if err != nil {
		return fallback
	}
	return c
}

// Tint blends hex toward white by t in [0, 1], in Lab space.
func Tint(hex string, t float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.BlendLab(white, t).Clamped().Hex()
}

// Fill returns the translucent-looking fill used for a shape stroked in
// hex.
func Fill(hex string) string { return Tint(hex, 0.85) }
