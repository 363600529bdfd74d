// Package textbox estimates the bounding box of label text.
//
// Widths come from the advance widths of the Go Regular font at the
// requested size, which is close enough to the sans-serif stack used in SVG
// output for collision tests. No shaping or kerning beyond what
// font.MeasureString applies is attempted.
package textbox

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/geodraw/pkg/fonts"
)

// DefaultLineHeight is the line height used when a caller passes zero, as a
// multiple of the font size.
const DefaultLineHeight = 1.2

// Box is the size of a block of text in pixels.
type Box struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Measurer measures text with one font. Faces are created lazily per size
// and cached. A Measurer is safe for concurrent use.
type Measurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewMeasurer parses an OpenType or TrueType font.
func NewMeasurer(ttf []byte) (*Measurer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Measurer{font: f, faces: make(map[float64]font.Face)}, nil
}

var (
	defaultMeasurer     *Measurer
	defaultMeasurerOnce sync.Once
)

// Default returns the shared Measurer for Go Regular.
func Default() *Measurer {
	defaultMeasurerOnce.Do(func() {
		m, err := NewMeasurer(fonts.TTF())
		if err != nil {
			panic(err)
		}
		defaultMeasurer = m
	})
	return defaultMeasurer
}

// Estimate measures text with the default font. See [Measurer.Measure].
func Estimate(text string, maxWidth, fontSize, lineHeight float64) Box {
	return Default().Measure(text, maxWidth, fontSize, lineHeight)
}

// Measure returns the box of text at fontSize. When maxWidth > 0 the text is
// greedily wrapped at word boundaries. lineHeight is the distance between
// baselines; zero selects DefaultLineHeight × fontSize.
func (m *Measurer) Measure(text string, maxWidth, fontSize, lineHeight float64) Box {
	if text == "" {
		return Box{}
	}
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight * fontSize
	}
	lines := m.Wrap(text, maxWidth, fontSize)

	m.mu.Lock()
	defer m.mu.Unlock()
	face := m.faceLocked(fontSize)
	var w float64
	for _, l := range lines {
		w = math.Max(w, advance(face, l))
	}
	return Box{Width: math.Ceil(w), Height: float64(len(lines)) * lineHeight}
}

// Width returns the advance width of a single line of text.
func (m *Measurer) Width(text string, fontSize float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return advance(m.faceLocked(fontSize), text)
}

// Wrap splits text into lines no wider than maxWidth where word boundaries
// allow. Explicit newlines are kept. A word wider than maxWidth gets a line
// of its own.
func (m *Measurer) Wrap(text string, maxWidth, fontSize float64) []string {
	paragraphs := strings.Split(text, "\n")
	if maxWidth <= 0 {
		return paragraphs
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	face := m.faceLocked(fontSize)

	var lines []string
	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			if next := cur + " " + w; advance(face, next) <= maxWidth {
				cur = next
				continue
			}
			lines = append(lines, cur)
			cur = w
		}
		lines = append(lines, cur)
	}
	return lines
}

func (m *Measurer) faceLocked(size float64) font.Face {
	if f, ok := m.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		// Only reachable with a non-positive size.
		return nil
	}
	m.faces[size] = f
	return f
}

func advance(face font.Face, s string) float64 {
	if face == nil {
		return 0
	}
	return float64(font.MeasureString(face, s)) / 64
}
