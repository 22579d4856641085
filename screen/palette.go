package screen

import "image/color"

// Color is a packed RGB565 display colour.
type Color uint16

const (
	Black Color = 0x0000
	White Color = 0xFFFF
)

// RGB packs 8-bit components, discarding the low bits the panel can't show.
func RGB(r, g, b uint8) Color {
	return Color(uint16(b&0xF8)>>3 | uint16(g&0xFC)<<3 | uint16(r&0xF8)<<8)
}

// RGB888 expands the packed components back to 8 bits each.
func (c Color) RGB888() (r, g, b uint8) {
	r5 := uint8(c >> 11 & 0x1F)
	g6 := uint8(c >> 5 & 0x3F)
	b5 := uint8(c & 0x1F)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

func (c Color) RGBA() (r, g, b, a uint32) {
	rb, gb, bb := c.RGB888()
	r = uint32(rb)<<8 | uint32(rb)
	g = uint32(gb)<<8 | uint32(gb)
	b = uint32(bb)<<8 | uint32(bb)
	a = 0xFFFF
	return
}

// Model converts arbitrary colours to the panel's RGB565.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	return FromColor(c)
})
