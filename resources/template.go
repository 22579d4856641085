package resources

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/32bitkid/lackpaint/raster"
)

// bitmapFromTemplate turns ASCII art into a bitmap. '#' (or 'X', '1') is
// ink, anything else is paper. Every line must be the same width.
func bitmapFromTemplate(s string) *image.Gray {
	var lines [][]rune
	for _, l := range strings.Split(strings.TrimSpace(s), "\n") {
		lines = append(lines, []rune(strings.TrimSpace(l)))
	}

	w := len(lines[0])
	for i, line := range lines {
		if len(line) != w {
			panic(fmt.Errorf("invalid template width: line %d is %d, expected %d", i, len(line), w))
		}
	}

	m := image.NewGray(image.Rect(0, 0, w, len(lines)))
	for y, line := range lines {
		for x, r := range line {
			if r == '#' || r == 'X' || r == '1' {
				m.SetGray(x, y, color.Gray{Y: 0})
			} else {
				m.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return m
}

// glyphBits packs ink as set bits, the glyph convention.
func glyphBits(m *image.Gray) []byte {
	b := m.Bounds()
	stride := (b.Dx() + 7) >> 3
	out := make([]byte, stride*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if m.GrayAt(b.Min.X+x, b.Min.Y+y).Y < 0x80 {
				out[y*stride+x>>3] |= 0x80 >> uint(x&7)
			}
		}
	}
	return out
}

func mustEncode(m image.Image, at image.Point) raster.Raster {
	r, err := raster.Encode(m, m.Bounds())
	if err != nil {
		panic(err)
	}
	r.Origin = at
	return r
}
