package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
)

func (s *slots) find(row []byte) int {
	for i, candidate := range s.rows {
		if i == blackSlot || candidate == nil {
			continue
		}
		if bytes.Equal(candidate, row) {
			return i
		}
	}
	return -1
}

func isWhite(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y >= 0x80
}

// Encode packs the pixels of m inside bounds into a compressed raster with
// OnesWhite polarity. All-black rows use the constant slot; any row already
// held in a slot is replaced by an escape to the lowest matching slot.
func Encode(m image.Image, bounds image.Rectangle) (Raster, error) {
	w, h := bounds.Dx(), bounds.Dy()
	stride := (w + 7) >> 3
	s := newSlots()

	var out []byte
	for y := 0; y < h; y++ {
		row := make([]byte, stride)
		black := true
		for x := 0; x < w; x++ {
			if isWhite(m.At(bounds.Min.X+x, bounds.Min.Y+y)) {
				row[x>>3] |= 0x80 >> uint(x&7)
				black = false
			}
		}

		if black {
			out = append(out, escValue|blackSlot)
			continue
		}
		if slot := s.find(row); slot >= 0 {
			out = append(out, escValue|byte(slot))
			continue
		}
		if row[0]&escMask == escValue {
			return Raster{}, fmt.Errorf("%w: row %d begins 0x%02X", ErrEscapeCollision, y, row[0])
		}

		out = append(out, row...)
		s.remember(row)
	}

	return Raster{
		Origin:     bounds.Min,
		Width:      w,
		Height:     h,
		Data:       out,
		Compressed: true,
	}, nil
}
