package renderer

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	atlasFirst   = ' '
	atlasLast    = '~'
	atlasColumns = 16
)

// glyphAtlas is a fixed-width bitmap font rendered into a single RGBA image.
// Glyph coverage is stored in the alpha channel over white.
type glyphAtlas struct {
	img   *image.RGBA
	cellW int
	cellH int
}

// newGlyphAtlas renders the printable ASCII range of the 7x13 basic font.
func newGlyphAtlas() *glyphAtlas {
	face := basicfont.Face7x13
	a := &glyphAtlas{
		cellW: face.Advance,
		cellH: face.Height,
	}
	count := int(atlasLast-atlasFirst) + 1
	rows := (count + atlasColumns - 1) / atlasColumns
	a.img = image.NewRGBA(image.Rect(0, 0, atlasColumns*a.cellW, rows*a.cellH))

	d := font.Drawer{Dst: a.img, Src: image.White, Face: face}
	for ch := atlasFirst; ch <= atlasLast; ch++ {
		col, row := a.cell(ch)
		d.Dot = fixed.P(col*a.cellW, row*a.cellH+face.Ascent)
		d.DrawString(string(ch))
	}
	return a
}

func (a *glyphAtlas) cell(ch rune) (col, row int) {
	if ch < atlasFirst || ch > atlasLast {
		ch = '?'
	}
	i := int(ch - atlasFirst)
	return i % atlasColumns, i / atlasColumns
}

// GlyphSize returns the size of one character cell in pixels.
func (a *glyphAtlas) GlyphSize() (int, int) {
	return a.cellW, a.cellH
}

// GlyphUV returns the texture coordinates of ch. Characters outside the atlas
// map to '?'.
func (a *glyphAtlas) GlyphUV(ch rune) (u0, v0, u1, v1 float32) {
	col, row := a.cell(ch)
	w := float32(a.img.Bounds().Dx())
	h := float32(a.img.Bounds().Dy())
	u0 = float32(col*a.cellW) / w
	v0 = float32(row*a.cellH) / h
	u1 = float32((col+1)*a.cellW) / w
	v1 = float32((row+1)*a.cellH) / h
	return u0, v0, u1, v1
}

// MeasureText returns the size of text. Lines are separated by '\n'.
func (a *glyphAtlas) MeasureText(text string) (float32, float32) {
	lines := strings.Split(text, "\n")
	widest := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > widest {
			widest = n
		}
	}
	return float32(widest * a.cellW), float32(len(lines) * a.cellH)
}
