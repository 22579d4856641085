package bmp

import (
	"fmt"
	"image"
)

// Plan places a source bitmap inside a target rectangle. Only exact matches
// in one dimension are supported: no scaling happens.
type Plan struct {
	Target image.Rectangle
	// Paint is the part of Target covered by image columns.
	Paint image.Rectangle

	// gap fill either side of Paint
	LeftGap  int
	RightGap int

	// source pixels cropped above (rows) and to the left (columns)
	StartRow int
	StartCol int
}

// RowsBelow is the number of source rows cropped under the painted strip.
func (p Plan) RowsBelow(height int) int {
	return height - p.Target.Dy() - p.StartRow
}

// Fit plans how a w x h bitmap fills target.
func Fit(w, h int, target image.Rectangle) (Plan, error) {
	tw, th := target.Dx(), target.Dy()
	p := Plan{Target: target, Paint: target}

	switch {
	case h == th && w < tw:
		p.LeftGap = (tw - w) / 2
		p.RightGap = tw - w - p.LeftGap
		p.Paint.Min.X += p.LeftGap
		p.Paint.Max.X -= p.RightGap
	case h == th:
		p.StartCol = (w - tw) / 2
	case w == tw && h > th:
		p.StartRow = (h - th) / 2
	case w == tw:
		return p, fmt.Errorf("%w: %dx%d in %dx%d", ErrTooShort, w, h, tw, th)
	default:
		return p, fmt.Errorf("%w: %dx%d in %dx%d", ErrNoFit, w, h, tw, th)
	}
	return p, nil
}
