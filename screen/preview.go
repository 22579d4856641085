package screen

import (
	"image"
	"image/color"

	clr "github.com/lucasb-eyer/go-colorful"
)

// gridShade is how much the gap between panel pixels darkens them.
const gridShade = 0.35

var gridColour = clr.Color{R: 0.1, G: 0.1, B: 0.12}

func shade(c color.Color, t float64) color.Color {
	cc, _ := clr.MakeColor(c)
	r, g, b := cc.BlendRgb(gridColour, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Magnify enlarges src by scale in each direction, shading the last row and
// column of every enlarged pixel so the result looks like a close-up of
// the panel. Scales below 2 return a plain copy.
func Magnify(src image.Image, scale int) *image.RGBA {
	b := src.Bounds()
	if scale < 1 {
		scale = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))

	for sy, dy := b.Min.Y, 0; sy < b.Max.Y; sy, dy = sy+1, dy+scale {
		for sx, dx := b.Min.X, 0; sx < b.Max.X; sx, dx = sx+1, dx+scale {
			c := src.At(sx, sy)
			edge := c
			if scale > 1 {
				edge = shade(c, gridShade)
			}
			for i := 0; i < scale*scale; i++ {
				ix, iy := i%scale, i/scale
				co := c
				if scale > 1 && (ix == scale-1 || iy == scale-1) {
					co = edge
				}
				dst.Set(dx+ix, dy+iy, co)
			}
		}
	}
	return dst
}
