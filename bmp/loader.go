package bmp

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/32bitkid/bitreader"
	"github.com/rs/zerolog/log"

	"github.com/32bitkid/lackpaint/dissolve"
	"github.com/32bitkid/lackpaint/screen"
)

type Options struct {
	// GreyscaleBits enables 4-bit bitmaps, showing this many significant
	// bits (1, 2 or 4) of each sample. Zero accepts 1-bit bitmaps only.
	GreyscaleBits int
	GapColor      screen.Color

	ReadName      bool
	ShowExtension bool
	Lowercase     bool
}

// Loader streams bitmaps into Sink. With a Dissolve sequencer the rows of
// each image arrive in pseudo-random order.
type Loader struct {
	Options
	Sink     screen.Sink
	Dissolve *dissolve.Sequencer
}

func NewLoader(sink screen.Sink, opts Options) *Loader {
	return &Loader{Options: opts, Sink: sink}
}

type rowPainter struct {
	r      io.ReadSeeker
	h      Header
	plan   Plan
	shift  uint
	sink   screen.Sink
	failed error

	// only the painted span of each row is read: buf starts at the byte
	// holding column StartCol, lead bits into it
	buf    []byte
	lead   uint
	colOff int64
	stride int64
}

func newRowPainter(r io.ReadSeeker, h Header, plan Plan, sink screen.Sink) *rowPainter {
	bpp := int64(h.BitsPerPixel)
	first := int64(plan.StartCol) * bpp
	rp := &rowPainter{
		r:      r,
		h:      h,
		plan:   plan,
		sink:   sink,
		lead:   uint(first % 8),
		colOff: first / 8,
		stride: (bpp*int64(h.Width) + 31) / 32 * 4,
	}
	n := (int64(rp.lead) + int64(plan.Paint.Dx())*bpp + 7) / 8
	if rest := rp.stride - rp.colOff; n > rest {
		n = rest
	}
	rp.buf = make([]byte, n)
	return rp
}

// fetch loads the painted span of the stored row for target row y. Missing
// bytes read as zero.
func (rp *rowPainter) fetch(y int) {
	src := int64(rp.h.Height) - int64(y) - 1 - int64(rp.plan.StartRow)
	off := int64(rp.h.DataOffset) + src*rp.stride + rp.colOff

	n := 0
	_, err := rp.r.Seek(off, io.SeekStart)
	if err == nil {
		n, err = io.ReadFull(rp.r, rp.buf)
	}
	if err != nil {
		for i := n; i < len(rp.buf); i++ {
			rp.buf[i] = 0
		}
		if rp.failed == nil {
			rp.failed = fmt.Errorf("%w: row %d: %v", ErrTruncated, src, err)
		}
	}
}

func (rp *rowPainter) paint(y int) {
	rp.fetch(y)

	bits := bitreader.NewReader(bytes.NewReader(rp.buf))
	if rp.lead > 0 {
		_ = bits.Skip(rp.lead)
	}

	for x := 0; x < rp.plan.Paint.Dx(); x++ {
		if rp.h.BitsPerPixel == 1 {
			set, _ := bits.Read1()
			if set {
				rp.sink.PushPixel(screen.White)
			} else {
				rp.sink.PushPixel(screen.Black)
			}
			continue
		}
		v, _ := bits.Read8(4)
		v = v >> rp.shift << rp.shift
		rp.sink.PushPixel(screen.Grey(v | v<<4))
	}
}

// Paint validates the bitmap in r, fits it to target and paints it. The
// returned name is the one to show in the title: the recovered or short
// name on success, the short name with a trailing '?' on failure.
func (l *Loader) Paint(r io.ReadSeeker, shortName string, target image.Rectangle) (string, error) {
	failName := shortName + "?"

	h, err := ReadHeader(r)
	if err != nil {
		return failName, err
	}
	if h.BitsPerPixel == 4 && l.GreyscaleBits == 0 {
		return failName, fmt.Errorf("%w: greyscale disabled", ErrBitDepth)
	}

	plan, err := Fit(int(h.Width), int(h.Height), target)
	if err != nil {
		return failName, err
	}

	log.Debug().
		Str("file", shortName).
		Int("w", int(h.Width)).Int("h", int(h.Height)).
		Uint16("bpp", h.BitsPerPixel).
		Msgf("painting into %v", plan.Paint)

	screen.FillRect(l.Sink, target.Min.X, target.Min.Y, plan.LeftGap, target.Dy(), l.GapColor)
	screen.FillRect(l.Sink, plan.Paint.Max.X, target.Min.Y, plan.RightGap, target.Dy(), l.GapColor)

	rp := newRowPainter(r, h, plan, l.Sink)
	if bits := l.GreyscaleBits; bits > 0 && bits < 4 {
		rp.shift = uint(4 - bits)
	}

	paint := plan.Paint
	rows := paint.Dy()
	if l.Dissolve != nil && rows <= dissolve.MaxRows {
		for i := 0; i < rows; i++ {
			y := l.Dissolve.Next(rows)
			l.Sink.BeginFill(paint.Min.X, paint.Min.Y+y, paint.Dx(), 1)
			rp.paint(y)
		}
	} else {
		l.Sink.BeginFill(paint.Min.X, paint.Min.Y, paint.Dx(), rows)
		for y := 0; y < rows; y++ {
			rp.paint(y)
		}
	}
	if rp.failed != nil {
		return failName, rp.failed
	}

	name := shortName
	if l.ReadName {
		if recovered, ok := ExtractName(r); ok {
			name = recovered
		}
	}
	return DisplayName(name, l.ShowExtension, l.Lowercase), nil
}

// IsRejected reports whether err means the file is not a usable slide, as
// opposed to a storage failure.
func IsRejected(err error) bool {
	for _, target := range []error{
		ErrSignature, ErrInfoHeader, ErrBitDepth, ErrCompression,
		ErrPalette, ErrDimensions, ErrNoFit, ErrTooShort,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
