package screen

// Sink is the display's pixel-push protocol. BeginFill declares a window and
// returns the number of pixels it covers; exactly that many pixels must be
// pushed (PushPixel or FillSolid) before the next BeginFill.
type Sink interface {
	BeginFill(x, y, w, h int) int
	PushPixel(c Color)
	FillSolid(n int, c Color)
}

// FillRect paints a solid rectangle as a single fill window.
func FillRect(s Sink, x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	n := s.BeginFill(x, y, w, h)
	s.FillSolid(n, c)
}

// Rect paints a one pixel outline.
func Rect(s Sink, x, y, w, h int, c Color) {
	FillRect(s, x, y, w, 1, c)
	FillRect(s, x, y, 1, h, c)
	FillRect(s, x+w-1, y, 1, h, c)
	FillRect(s, x, y+h-1, w, 1, c)
}
