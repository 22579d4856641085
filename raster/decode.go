package raster

import (
	"bytes"
	"image"

	"github.com/32bitkid/bitreader"

	"github.com/32bitkid/lackpaint/screen"
)

const background = screen.White

func (p Polarity) color(set bool) screen.Color {
	if set == (p == OnesWhite) {
		return screen.White
	}
	return screen.Black
}

type decoder struct {
	data       []byte
	pos        int
	stride     int
	compressed bool
	slots      *slots
}

// next yields the bits of the following row. A nil row means the whole row
// is the returned solid colour.
func (d *decoder) next() ([]byte, screen.Color, error) {
	if d.pos >= len(d.data) {
		return nil, background, ErrTruncated
	}

	first := d.data[d.pos]
	if d.compressed && first&escMask == escValue {
		d.pos++
		slot := int(first & escSlot)
		if slot == blackSlot {
			return nil, screen.Black, nil
		}
		if row := d.slots.rows[slot]; row != nil {
			return row, 0, nil
		}
		return nil, background, nil
	}

	end := d.pos + d.stride
	if end > len(d.data) {
		d.pos = len(d.data)
		return nil, background, ErrTruncated
	}
	row := d.data[d.pos:end:end]
	d.pos = end
	if d.compressed {
		d.slots.remember(row)
	}
	return row, 0, nil
}

// Paint draws r at origin in a single fill window, every source pixel
// replicated into a scale x scale block. The declared pixel count is always
// pushed, even when the data runs short.
func Paint(sink screen.Sink, r Raster, origin image.Point, scale int, p Polarity) error {
	if scale < 1 {
		scale = 1
	}
	if r.Width <= 0 || r.Height <= 0 {
		return nil
	}
	if sink.BeginFill(origin.X, origin.Y, r.Width*scale, r.Height*scale) == 0 {
		return nil
	}

	d := decoder{
		data:       r.Data,
		stride:     r.stride(),
		compressed: r.Compressed,
		slots:      newSlots(),
	}

	var err error
	for y := 0; y < r.Height; y++ {
		row, solid, rerr := d.next()
		if rerr != nil && err == nil {
			err = rerr
		}
		for rep := 0; rep < scale; rep++ {
			if row == nil {
				sink.FillSolid(r.Width*scale, solid)
				continue
			}
			emitRow(sink, row, r.Width, scale, p)
		}
	}
	return err
}

func emitRow(sink screen.Sink, row []byte, width, scale int, p Polarity) {
	bits := bitreader.NewReader(bytes.NewReader(row))
	for x := 0; x < width; x++ {
		set, err := bits.Read1()
		if err != nil {
			set = p == OnesWhite
		}
		c := p.color(set)
		for i := 0; i < scale; i++ {
			sink.PushPixel(c)
		}
	}
}
