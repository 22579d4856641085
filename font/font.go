// Package font reads the compact variable-width glyph tables used for all
// on-screen text and measures or draws byte strings with them.
package font

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/32bitkid/lackpaint/raster"
	"github.com/32bitkid/lackpaint/screen"
)

var (
	ErrTruncated = errors.New("font: truncated glyph table")
	ErrOrder     = errors.New("font: codepoints out of order")
	ErrRange     = errors.New("font: glyph metrics out of range")
)

const (
	spaceAdvance = 4
	maxSize      = 15
	maxOffset    = 7
)

type Glyph struct {
	Codepoint byte
	Width     int
	Height    int
	XOffset   int
	YOffset   int
	Bitmap    []byte
}

func (g Glyph) stride() int { return (g.Width + 7) >> 3 }

// String draws the glyph as block art, one line per row.
func (g Glyph) String() string {
	var sb strings.Builder
	stride := g.stride()
	for y := 0; y < g.Height; y++ {
		row := g.Bitmap[y*stride : (y+1)*stride]
		for x := 0; x < g.Width; x++ {
			if row[x>>3]&(0x80>>uint(x&7)) != 0 {
				sb.WriteRune('█')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Face is an immutable glyph table, ascending by codepoint.
type Face struct {
	Glyphs    []Glyph
	Height    int
	Descender int
}

func signedNibble(v byte) int {
	if v&0x08 != 0 {
		return -int(v & 0x07)
	}
	return int(v & 0x07)
}

func packSigned(v int) byte {
	if v < 0 {
		return byte(-v) | 0x08
	}
	return byte(v)
}

// Parse reads a table of records
//
//	codepoint, w<<4|h, sxxx<<4|syyy, rows...
//
// terminated by a zero codepoint. Each row is one byte for glyphs up to
// eight pixels wide, two otherwise.
func Parse(table []byte, height, descender int) (*Face, error) {
	face := &Face{Height: height, Descender: descender}

	pos := 0
	for {
		if pos >= len(table) {
			return nil, ErrTruncated
		}
		cp := table[pos]
		if cp == 0 {
			break
		}
		if pos+3 > len(table) {
			return nil, fmt.Errorf("%w: header of 0x%02X", ErrTruncated, cp)
		}
		if n := len(face.Glyphs); n > 0 && face.Glyphs[n-1].Codepoint >= cp {
			return nil, fmt.Errorf("%w: 0x%02X after 0x%02X", ErrOrder, cp, face.Glyphs[n-1].Codepoint)
		}

		g := Glyph{
			Codepoint: cp,
			Width:     int(table[pos+1] >> 4),
			Height:    int(table[pos+1] & 0x0F),
			XOffset:   signedNibble(table[pos+2] >> 4),
			YOffset:   signedNibble(table[pos+2] & 0x0F),
		}
		pos += 3

		n := g.stride() * g.Height
		if pos+n > len(table) {
			return nil, fmt.Errorf("%w: bitmap of 0x%02X", ErrTruncated, cp)
		}
		g.Bitmap = table[pos : pos+n : pos+n]
		pos += n

		face.Glyphs = append(face.Glyphs, g)
	}

	return face, nil
}

// Table encodes glyphs into the format read by Parse.
func Table(glyphs []Glyph) ([]byte, error) {
	var out []byte
	var last byte
	for i, g := range glyphs {
		if g.Codepoint == 0 || (i > 0 && g.Codepoint <= last) {
			return nil, fmt.Errorf("%w: 0x%02X", ErrOrder, g.Codepoint)
		}
		if g.Width < 0 || g.Width > maxSize || g.Height < 0 || g.Height > maxSize ||
			g.XOffset < -maxOffset || g.XOffset > maxOffset ||
			g.YOffset < -maxOffset || g.YOffset > maxOffset {
			return nil, fmt.Errorf("%w: 0x%02X", ErrRange, g.Codepoint)
		}
		if len(g.Bitmap) != g.stride()*g.Height {
			return nil, fmt.Errorf("%w: bitmap of 0x%02X", ErrTruncated, g.Codepoint)
		}
		last = g.Codepoint

		out = append(out,
			g.Codepoint,
			byte(g.Width<<4|g.Height),
			packSigned(g.XOffset)<<4|packSigned(g.YOffset),
		)
		out = append(out, g.Bitmap...)
	}
	return append(out, 0), nil
}

// lookup returns the first glyph at or after ch. Codepoints missing from
// the table borrow the next one up.
func (f *Face) lookup(ch byte) (*Glyph, bool) {
	for i := range f.Glyphs {
		if f.Glyphs[i].Codepoint >= ch {
			return &f.Glyphs[i], true
		}
	}
	return nil, false
}

// run walks s from x with the baseline at y, painting when sink is non-nil.
// It returns the x after the last glyph.
func (f *Face) run(sink screen.Sink, s string, x, y int) int {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == ' ' {
			x += spaceAdvance
			continue
		}
		g, ok := f.lookup(ch)
		if !ok {
			continue
		}
		x += g.XOffset
		top := y - g.YOffset - g.Height + 1
		if sink != nil {
			r := raster.Raster{Width: g.Width, Height: g.Height, Data: g.Bitmap}
			_ = raster.Paint(sink, r, image.Pt(x, top), 1, raster.OnesBlack)
		}
		x += g.Width + 1
	}
	return x
}

// MeasureString is the advance DrawString would produce for s.
func (f *Face) MeasureString(s string) int {
	return f.run(nil, s, 0, 0)
}

// DrawString paints s with its baseline at y and returns the x following the
// last glyph.
func (f *Face) DrawString(sink screen.Sink, s string, x, y int) int {
	return f.run(sink, s, x, y)
}
