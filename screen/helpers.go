package screen

import (
	"image/color"

	clr "github.com/lucasb-eyer/go-colorful"
)

// Grey returns the panel colour for an 8-bit grey level.
func Grey(level uint8) Color {
	v := float64(level) / 255
	r, g, b := clr.Color{R: v, G: v, B: v}.RGB255()
	return RGB(r, g, b)
}

// FromColor converts any colour to RGB565.
func FromColor(c color.Color) Color {
	if sc, ok := c.(Color); ok {
		return sc
	}
	cc, _ := clr.MakeColor(c)
	r, g, b := cc.Clamped().RGB255()
	return RGB(r, g, b)
}

// ParseHex parses "#rrggbb" into a panel colour.
func ParseHex(s string) (Color, error) {
	cc, err := clr.Hex(s)
	if err != nil {
		return Black, err
	}
	r, g, b := cc.RGB255()
	return RGB(r, g, b), nil
}
