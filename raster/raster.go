/*
Package raster implements the compact monochrome raster format used for the
screen chrome and for glyph bitmaps.

Rows are packed one bit per pixel, most significant bit leftmost, and padded
to a whole byte. When a raster is compressed, a row may instead be a single
escape byte 0b1010ssss naming one of sixteen slots:

	0-7    the eight most recently decoded literal rows (a ring)
	8      a constant all-black row, usable before any literal row
	9-15   the first seven literal rows, in order

The two pools cover rows repeated nearby (vertical mirroring) and rows
repeated from the top of the raster (tiling). A literal row can therefore
never start with a byte in the range 0xA0-0xAF.
*/
package raster

import (
	"encoding/binary"
	"errors"
	"image"
)

const (
	escMask   = 0xF0
	escValue  = 0xA0
	escSlot   = 0x0F
	ringSlots = 8
	blackSlot = 8
	slotCount = 16

	headerLen = 8
)

var (
	ErrTruncated       = errors.New("raster: truncated row data")
	ErrHeader          = errors.New("raster: short window header")
	ErrEscapeCollision = errors.New("raster: literal row starts with an escape byte")
)

// Polarity selects which bit value paints as the white background.
type Polarity uint8

const (
	// OnesWhite treats set bits as white; used by the chrome.
	OnesWhite Polarity = iota
	// OnesBlack treats set bits as ink; used by glyphs.
	OnesBlack
)

// Raster is a monochrome bitmap, optionally row-compressed.
type Raster struct {
	Origin     image.Point
	Width      int
	Height     int
	Data       []byte
	Compressed bool
}

func (r Raster) Bounds() image.Rectangle {
	return image.Rectangle{Min: r.Origin, Max: r.Origin.Add(image.Pt(r.Width, r.Height))}
}

func (r Raster) stride() int { return (r.Width + 7) >> 3 }

// Parse reads a window resource: a big-endian x, y, w, h header followed by
// row data.
func Parse(b []byte, compressed bool) (Raster, error) {
	if len(b) < headerLen {
		return Raster{}, ErrHeader
	}
	var header struct {
		X, Y, W, H uint16
	}
	header.X = binary.BigEndian.Uint16(b[0:])
	header.Y = binary.BigEndian.Uint16(b[2:])
	header.W = binary.BigEndian.Uint16(b[4:])
	header.H = binary.BigEndian.Uint16(b[6:])

	return Raster{
		Origin:     image.Pt(int(header.X), int(header.Y)),
		Width:      int(header.W),
		Height:     int(header.H),
		Data:       b[headerLen:],
		Compressed: compressed,
	}, nil
}

// slots is the decoder's row arena. Entries alias the raster's data; nothing
// is copied and nothing escapes the decode.
type slots struct {
	rows    [slotCount][]byte
	recent  int
	initial int
}

func newSlots() *slots {
	return &slots{initial: blackSlot + 1}
}

func (s *slots) remember(row []byte) {
	if s.initial < slotCount {
		s.rows[s.initial] = row
		s.initial++
	}
	s.rows[s.recent] = row
	s.recent++
	if s.recent == ringSlots {
		s.recent = 0
	}
}
