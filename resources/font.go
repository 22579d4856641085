package resources

import (
	"image"
	"image/color"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/32bitkid/lackpaint/font"
)

const (
	// FontHeight is the distance from the top of a text line to its baseline.
	FontHeight = 12
	// FontDescender is the space reserved below the baseline.
	FontDescender = 3

	Bullet  = 0x7F
	Apple   = 0x80
	Command = 0x81
)

// Codepoints the bundled font draws by hand rather than from the source face.
var extras = []struct {
	codepoint byte
	yOffset   int
	art       string
}{
	{Bullet, 2, `
		.###.
		#####
		#####
		#####
		.###.
	`},
	{Apple, 0, `
		......#....
		.....#.....
		.###...###.
		###########
		##########.
		#########..
		#########..
		##########.
		###########
		.#########.
		..###.###..
	`},
	{Command, 0, `
		..##...##.
		.#..#.#..#
		.#..#.#..#
		..######..
		....#.#...
		..######..
		.#..#.#..#
		.#..#.#..#
		..##...##.
	`},
}

func inked(mask image.Image, x, y int) bool {
	return color.AlphaModel.Convert(mask.At(x, y)).(color.Alpha).A >= 0x80
}

// glyphFromFace trims the face's glyph for r to its ink and expresses the
// box relative to the baseline, the way the table stores it.
func glyphFromFace(face xfont.Face, r rune) (font.Glyph, bool) {
	dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, 0), r)
	if !ok || dr.Empty() {
		return font.Glyph{}, false
	}

	ink := image.Rectangle{}
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			if inked(mask, maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y) {
				ink = ink.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	if ink.Empty() {
		return font.Glyph{}, false
	}

	// the table can't lift a glyph more than seven rows, pad below instead
	if lift := -ink.Max.Y; lift > 7 {
		ink.Max.Y += lift - 7
	}

	m := image.NewGray(image.Rect(0, 0, ink.Dx(), ink.Dy()))
	for y := 0; y < ink.Dy(); y++ {
		for x := 0; x < ink.Dx(); x++ {
			sx, sy := ink.Min.X+x, ink.Min.Y+y
			if (image.Point{X: sx, Y: sy}).In(dr) && inked(mask, maskp.X+sx-dr.Min.X, maskp.Y+sy-dr.Min.Y) {
				m.SetGray(x, y, color.Gray{})
			} else {
				m.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}

	return font.Glyph{
		Codepoint: byte(r),
		Width:     ink.Dx(),
		Height:    ink.Dy(),
		XOffset:   ink.Min.X,
		YOffset:   -ink.Max.Y,
		Bitmap:    glyphBits(m),
	}, true
}

// FontTable builds the compact glyph table: printable ASCII from the
// 7x13 fixed face, trimmed to proportional widths, plus the hand-drawn
// symbols.
func FontTable() []byte {
	var glyphs []font.Glyph
	for r := rune('!'); r <= '~'; r++ {
		if g, ok := glyphFromFace(basicfont.Face7x13, r); ok {
			glyphs = append(glyphs, g)
		}
	}
	for _, e := range extras {
		m := bitmapFromTemplate(e.art)
		glyphs = append(glyphs, font.Glyph{
			Codepoint: e.codepoint,
			Width:     m.Bounds().Dx(),
			Height:    m.Bounds().Dy(),
			YOffset:   e.yOffset,
			Bitmap:    glyphBits(m),
		})
	}

	table, err := font.Table(glyphs)
	if err != nil {
		panic(err)
	}
	return table
}

var systemFace = sync.OnceValue(func() *font.Face {
	face, err := font.Parse(FontTable(), FontHeight, FontDescender)
	if err != nil {
		panic(err)
	}
	return face
})

// Font returns the shared system face.
func Font() *font.Face { return systemFace() }
