package screen

import (
	"image"
	"image/color"
)

// Framebuffer is an in-memory Sink. It stands in for the panel in the
// simulator and in tests, and doubles as an image.Image for exporting.
type Framebuffer struct {
	Pix  []Color
	Rect image.Rectangle

	window    image.Rectangle
	cursor    int
	remaining int

	violations int
}

func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{
		Pix:  make([]Color, w*h),
		Rect: image.Rect(0, 0, w, h),
	}
}

func (fb *Framebuffer) BeginFill(x, y, w, h int) int {
	if fb.remaining != 0 {
		// previous window was left short
		fb.violations++
	}
	if w <= 0 || h <= 0 {
		fb.window = image.Rectangle{}
		fb.cursor, fb.remaining = 0, 0
		return 0
	}
	fb.window = image.Rect(x, y, x+w, y+h)
	fb.cursor = 0
	fb.remaining = w * h
	return fb.remaining
}

func (fb *Framebuffer) PushPixel(c Color) {
	if fb.remaining == 0 {
		fb.violations++
		return
	}
	w := fb.window.Dx()
	x := fb.window.Min.X + fb.cursor%w
	y := fb.window.Min.Y + fb.cursor/w
	if (image.Point{X: x, Y: y}).In(fb.Rect) {
		fb.Pix[(y-fb.Rect.Min.Y)*fb.Rect.Dx()+(x-fb.Rect.Min.X)] = c
	}
	fb.cursor++
	fb.remaining--
}

func (fb *Framebuffer) FillSolid(n int, c Color) {
	for i := 0; i < n; i++ {
		fb.PushPixel(c)
	}
}

// Violations counts pushes outside a declared window and windows abandoned
// before their declared pixel count was reached.
func (fb *Framebuffer) Violations() int {
	v := fb.violations
	if fb.remaining != 0 {
		v++
	}
	return v
}

// Pending is the number of pixels still owed to the current window.
func (fb *Framebuffer) Pending() int { return fb.remaining }

func (fb *Framebuffer) ColorModel() color.Model { return Model }
func (fb *Framebuffer) Bounds() image.Rectangle { return fb.Rect }

func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.ColorAt(x, y)
}

func (fb *Framebuffer) ColorAt(x, y int) Color {
	if !(image.Point{X: x, Y: y}).In(fb.Rect) {
		return Black
	}
	return fb.Pix[(y-fb.Rect.Min.Y)*fb.Rect.Dx()+(x-fb.Rect.Min.X)]
}

// Clear fills the whole buffer outside of the fill protocol.
func (fb *Framebuffer) Clear(c Color) {
	for i := range fb.Pix {
		fb.Pix[i] = c
	}
}
