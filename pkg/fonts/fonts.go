// Package fonts provides the font geodraw measures labels with, in the forms
// the renderers need: raw TrueType for measurement and a CSS @font-face rule
// for SVG documents that embed it.
//
// Embedding keeps the drawn glyphs the same width as the measured ones, so
// label boxes computed during placement match what a viewer shows.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name of the embedded face.
const FontFamily = "Go"

// FallbackFontFamily lists FontFamily first, then common sans-serif faces
// for viewers of SVGs that do not embed it.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

// TTF returns the Go Regular TrueType data.
func TTF() []byte {
	return goregular.TTF
}

var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// TTFBase64 returns TTF as standard base64. The encoding is computed once.
func TTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

// FontFace returns an @font-face rule that loads FontFamily from a data URI.
func FontFace() string {
	return fmt.Sprintf(`@font-face{font-family:'%s';src:url(data:font/ttf;base64,%s) format('truetype');}`,
		FontFamily, TTFBase64())
}
