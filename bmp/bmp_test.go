package bmp

import (
	"bytes"
	"encoding/binary"
	"image"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/32bitkid/lackpaint/dissolve"
	"github.com/32bitkid/lackpaint/screen"
)

type bitmapSpec struct {
	w, h    int
	bpp     int
	px      func(x, y int) uint8 // display coordinates, top row is y=0
	trailer string

	// overrides
	info        uint32
	compression uint32
	palette0    uint32
	truncate    int
}

func makeBMP(s bitmapSpec) []byte {
	colours := 1 << uint(s.bpp)
	offset := 14 + 40 + 4*colours
	rowSize := ((s.bpp*s.w + 31) / 32) * 4
	if s.info == 0 {
		s.info = 40
	}

	var b bytes.Buffer
	b.WriteString("BM")
	le := func(v interface{}) { _ = binary.Write(&b, binary.LittleEndian, v) }
	le(uint32(offset + rowSize*s.h + len(s.trailer)))
	le(uint32(0))
	le(uint32(offset))
	le(s.info)
	le(int32(s.w))
	le(int32(s.h))
	le(uint16(1))
	le(uint16(s.bpp))
	le(s.compression)
	le([5]uint32{})
	le(s.palette0)
	for i := 1; i < colours; i++ {
		v := uint8(i * 255 / (colours - 1))
		le([4]uint8{v, v, v, 0})
	}

	for y := s.h - 1; y >= 0; y-- {
		row := make([]byte, rowSize)
		for x := 0; x < s.w; x++ {
			v := s.px(x, y)
			if s.bpp == 1 {
				if v != 0 {
					row[x>>3] |= 0x80 >> uint(x&7)
				}
			} else if x&1 == 0 {
				row[x>>1] |= v << 4
			} else {
				row[x>>1] |= v & 0x0F
			}
		}
		b.Write(row)
	}
	b.WriteString(s.trailer)

	out := b.Bytes()
	if s.truncate > 0 {
		out = out[:len(out)-s.truncate]
	}
	return out
}

// columns encodes x in the low bit so crops are visible.
func columns(x, y int) uint8 { return uint8(x & 1) }

func rows(x, y int) uint8 { return uint8(y & 1) }

func TestReadHeaderRejects(t *testing.T) {
	t.Parallel()

	base := bitmapSpec{w: 8, h: 4, bpp: 1, px: columns}
	valid := makeBMP(base)

	h, err := ReadHeader(bytes.NewReader(valid))
	require.NoError(t, err)
	assert.Equal(t, int32(8), h.Width)
	assert.Equal(t, 4, h.RowSize())
	assert.Equal(t, uint32(14+40+8), h.DataOffset)

	sig := append([]byte{}, valid...)
	sig[0] = 'X'

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"signature", sig, ErrSignature},
		{"empty", nil, ErrSignature},
		{"info header", makeBMP(bitmapSpec{w: 8, h: 4, bpp: 1, px: columns, info: 108}), ErrInfoHeader},
		{"bit depth", makeBMP(bitmapSpec{w: 8, h: 4, bpp: 8, px: columns}), ErrBitDepth},
		{"compression", makeBMP(bitmapSpec{w: 8, h: 4, bpp: 4, px: columns, compression: 2}), ErrCompression},
		{"palette", makeBMP(bitmapSpec{w: 8, h: 4, bpp: 1, px: columns, palette0: 0x00FFFFFF}), ErrPalette},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadHeader(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFit(t *testing.T) {
	t.Parallel()

	target := image.Rect(74, 48, 74+396, 48+218)

	p, err := Fit(395, 218, target)
	require.NoError(t, err)
	assert.Equal(t, 0, p.LeftGap)
	assert.Equal(t, 1, p.RightGap)
	assert.Equal(t, image.Rect(74, 48, 74+395, 48+218), p.Paint)

	p, err = Fit(400, 218, target)
	require.NoError(t, err)
	assert.Equal(t, 2, p.StartCol)
	assert.Equal(t, target, p.Paint)

	p, err = Fit(396, 221, target)
	require.NoError(t, err)
	assert.Equal(t, 1, p.StartRow)
	assert.Equal(t, 2, p.RowsBelow(221))

	p, err = Fit(396, 218, target)
	require.NoError(t, err)
	assert.Equal(t, Plan{Target: target, Paint: target}, p)

	_, err = Fit(396, 100, target)
	assert.ErrorIs(t, err, ErrTooShort)

	_, err = Fit(300, 300, target)
	assert.ErrorIs(t, err, ErrNoFit)
}

func TestPropertyFitGaps(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		tw := rapid.IntRange(1, 480).Draw(t, "tw")
		th := rapid.IntRange(1, 320).Draw(t, "th")
		w := rapid.IntRange(1, tw).Draw(t, "w")
		target := image.Rect(0, 0, tw, th)

		p, err := Fit(w, th, target)
		if err != nil {
			t.Fatalf("fit: %v", err)
		}
		if p.LeftGap+p.RightGap+p.Paint.Dx() != tw {
			t.Fatalf("gaps %d+%d and paint %d don't cover %d", p.LeftGap, p.RightGap, p.Paint.Dx(), tw)
		}
		if p.LeftGap != (tw-w)/2 || p.RightGap < p.LeftGap || p.RightGap-p.LeftGap > 1 {
			t.Fatalf("uneven gaps %d/%d", p.LeftGap, p.RightGap)
		}
		if p.Paint.Min.X != p.LeftGap || p.Paint.Max.X != tw-p.RightGap {
			t.Fatalf("paint %v overlaps the gaps", p.Paint)
		}
	})
}

func TestPropertyFitRowCrop(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		tw := rapid.IntRange(1, 480).Draw(t, "tw")
		th := rapid.IntRange(1, 320).Draw(t, "th")
		h := rapid.IntRange(th, 2000).Draw(t, "h")

		p, err := Fit(tw, h, image.Rect(0, 0, tw, th))
		if err != nil {
			t.Fatalf("fit: %v", err)
		}
		if p.StartRow != (h-th)/2 {
			t.Fatalf("above = %d, want %d", p.StartRow, (h-th)/2)
		}
		if p.StartRow+p.RowsBelow(h)+th != h {
			t.Fatalf("crop doesn't add up")
		}
	})
}

func paintInto(t *testing.T, l *Loader, data []byte, target image.Rectangle) (*screen.Framebuffer, string, error) {
	t.Helper()
	fb := screen.NewFramebuffer(24, 16)
	fb.Clear(screen.RGB(255, 0, 0))
	l.Sink = fb
	name, err := l.Paint(bytes.NewReader(data), "SLIDE1.BMP", target)
	assert.Zero(t, fb.Violations())
	return fb, name, err
}

func bw(set bool) screen.Color {
	if set {
		return screen.White
	}
	return screen.Black
}

func TestPaintCentresNarrowImage(t *testing.T) {
	t.Parallel()

	gap := screen.RGB(0, 0, 255)
	l := NewLoader(nil, Options{GapColor: gap})
	target := image.Rect(2, 3, 2+16, 3+8)

	fb, name, err := paintInto(t, l, makeBMP(bitmapSpec{w: 11, h: 8, bpp: 1, px: columns}), target)
	require.NoError(t, err)
	assert.Equal(t, "SLIDE1", name)

	for y := 3; y < 11; y++ {
		for x := 2; x < 4; x++ {
			assert.Equal(t, gap, fb.ColorAt(x, y), "left gap %d,%d", x, y)
		}
		for x := 4; x < 15; x++ {
			assert.Equal(t, bw((x-4)&1 == 1), fb.ColorAt(x, y), "pixel %d,%d", x, y)
		}
		for x := 15; x < 18; x++ {
			assert.Equal(t, gap, fb.ColorAt(x, y), "right gap %d,%d", x, y)
		}
	}
	// outside the target stays untouched
	assert.Equal(t, screen.RGB(255, 0, 0), fb.ColorAt(1, 3))
	assert.Equal(t, screen.RGB(255, 0, 0), fb.ColorAt(2, 11))
}

func TestPaintCropsColumns(t *testing.T) {
	t.Parallel()

	l := NewLoader(nil, Options{})
	target := image.Rect(0, 0, 16, 8)

	// 19 wide: one column cropped on the left, two on the right
	fb, _, err := paintInto(t, l, makeBMP(bitmapSpec{w: 19, h: 8, bpp: 1, px: columns}), target)
	require.NoError(t, err)
	for x := 0; x < 16; x++ {
		assert.Equal(t, bw((x+1)&1 == 1), fb.ColorAt(x, 0), "column %d", x)
	}
}

func TestPaintCropsRows(t *testing.T) {
	t.Parallel()

	target := image.Rect(0, 0, 16, 8)
	data := makeBMP(bitmapSpec{w: 16, h: 11, bpp: 1, px: rows})

	for _, seq := range []*dissolve.Sequencer{nil, dissolve.New(0)} {
		l := NewLoader(nil, Options{})
		l.Dissolve = seq
		fb, _, err := paintInto(t, l, data, target)
		require.NoError(t, err)
		// one row cropped above
		for y := 0; y < 8; y++ {
			assert.Equal(t, bw((y+1)&1 == 1), fb.ColorAt(5, y), "row %d", y)
		}
	}
}

func TestPaintGreyscale(t *testing.T) {
	t.Parallel()

	target := image.Rect(0, 0, 16, 4)
	data := makeBMP(bitmapSpec{w: 16, h: 4, bpp: 4, px: func(x, y int) uint8 { return uint8(x) }})

	_, name, err := paintInto(t, NewLoader(nil, Options{}), data, target)
	assert.ErrorIs(t, err, ErrBitDepth)
	assert.Equal(t, "SLIDE1.BMP?", name)

	fb, _, err := paintInto(t, NewLoader(nil, Options{GreyscaleBits: 4}), data, target)
	require.NoError(t, err)
	for x := 0; x < 16; x++ {
		assert.Equal(t, screen.Grey(uint8(x)|uint8(x)<<4), fb.ColorAt(x, 2))
	}

	fb, _, err = paintInto(t, NewLoader(nil, Options{GreyscaleBits: 2}), data, target)
	require.NoError(t, err)
	assert.Equal(t, screen.Grey(0xCC), fb.ColorAt(15, 0))
	assert.Equal(t, screen.Grey(0x44), fb.ColorAt(7, 0))
	assert.Equal(t, screen.Black, fb.ColorAt(3, 0))

	fb, _, err = paintInto(t, NewLoader(nil, Options{GreyscaleBits: 1}), data, target)
	require.NoError(t, err)
	assert.Equal(t, screen.Grey(0x88), fb.ColorAt(9, 1))
	assert.Equal(t, screen.Black, fb.ColorAt(7, 1))
}

func TestPaintGreyscaleCropsColumns(t *testing.T) {
	t.Parallel()

	target := image.Rect(0, 0, 12, 4)
	data := makeBMP(bitmapSpec{w: 16, h: 4, bpp: 4, px: func(x, y int) uint8 { return uint8(x) }})

	fb, _, err := paintInto(t, NewLoader(nil, Options{GreyscaleBits: 4}), data, target)
	require.NoError(t, err)
	assert.Equal(t, screen.Grey(0x22), fb.ColorAt(0, 0))
	assert.Equal(t, screen.Grey(0xDD), fb.ColorAt(11, 0))
}

func TestPaintTruncated(t *testing.T) {
	t.Parallel()

	target := image.Rect(0, 0, 16, 8)
	data := makeBMP(bitmapSpec{w: 16, h: 8, bpp: 1, px: columns, truncate: 6})

	_, name, err := paintInto(t, NewLoader(nil, Options{ReadName: true}), data, target)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Equal(t, "SLIDE1.BMP?", name)
}

func TestPaintRecoversName(t *testing.T) {
	t.Parallel()

	target := image.Rect(0, 0, 16, 8)
	spec := bitmapSpec{w: 16, h: 8, bpp: 1, px: columns, trailer: "NAME:=\r\nphoto.jpg\r\n"}
	data := makeBMP(spec)

	_, name, err := paintInto(t, NewLoader(nil, Options{ReadName: true}), data, target)
	require.NoError(t, err)
	assert.Equal(t, "photo", name)

	_, name, err = paintInto(t, NewLoader(nil, Options{ReadName: true, ShowExtension: true}), data, target)
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", name)

	_, name, err = paintInto(t, NewLoader(nil, Options{ShowExtension: true, Lowercase: true}), data, target)
	require.NoError(t, err)
	assert.Equal(t, "slide1.bmp", name)
}

func TestExtractName(t *testing.T) {
	t.Parallel()

	long := "abcdefghijklmnopqrstuvwxyzabcdefghijklmn"
	require.Len(t, long, MaxNameLen)
	padding := string(make([]byte, 200))

	tests := []struct {
		name    string
		data    string
		want    string
		success bool
	}{
		{"plain", padding + "NAME:=\r\nphoto.jpg\r\n", "photo.jpg", true},
		{"longest", padding + "NAME:=\r\n" + long + "\r\n", long, true},
		{"too long", padding + "NAME:=\r\n" + long + "x\r\n", "", false},
		{"control character", padding + "NAME:=\r\nph\toto\r\n", "", false},
		{"unterminated", padding + "NAME:=\r\nphoto", "", false},
		{"empty", padding + "NAME:=\r\n\r\n", "", false},
		{"missing", padding + "photo.jpg\r\n", "", false},
		{"out of reach", "NAME:=\r\nphoto.jpg\r\n" + padding, "", false},
		{"short file", "NAME:=\r\nx\r\n", "x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractName(bytes.NewReader([]byte(tt.data)))
			assert.Equal(t, tt.success, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "photo", DisplayName("photo.jpg", false, false))
	assert.Equal(t, "photo.jpg", DisplayName("photo.jpg", true, false))
	assert.Equal(t, ".bmp", DisplayName(".bmp", false, false))
	assert.Equal(t, "a.b", DisplayName("a.b", false, false))
	assert.Equal(t, "my slide", DisplayName("My Slide.BMP", false, true))
}

func TestIsRejected(t *testing.T) {
	t.Parallel()

	_, err := Fit(1, 1, image.Rect(0, 0, 2, 2))
	assert.True(t, IsRejected(err))
	assert.False(t, IsRejected(ErrTruncated))
}

func TestPaintWideImageReadsOnlyPaintedSpan(t *testing.T) {
	// header and palette only, declaring a row far wider than the target
	data := makeBMP(bitmapSpec{w: 8, h: 218, bpp: 4, px: columns})
	offset := binary.LittleEndian.Uint32(data[0x0A:])
	binary.LittleEndian.PutUint32(data[0x12:], 400_000_000)
	data = data[:offset]

	target := image.Rect(0, 0, 396, 218)
	fb := screen.NewFramebuffer(396, 218)
	l := NewLoader(fb, Options{GreyscaleBits: 4})

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	name, err := l.Paint(bytes.NewReader(data), "WIDE.BMP", target)
	runtime.ReadMemStats(&after)

	assert.ErrorIs(t, err, ErrTruncated)
	assert.Equal(t, "WIDE.BMP?", name)
	assert.Zero(t, fb.Violations())
	assert.Equal(t, screen.Black, fb.ColorAt(200, 100))
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
}

func TestRowPainterSpan(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		w, bpp     int
		target     int
		wantOff    int64
		wantLead   uint
		wantLength int
	}{
		{"one bit, odd crop", 19, 1, 16, 0, 1, 3},
		{"one bit, byte aligned", 40, 1, 16, 1, 4, 3},
		{"four bit, even crop", 16, 4, 12, 1, 0, 6},
		{"four bit, odd crop", 15, 4, 12, 0, 4, 7},
		{"four bit, huge", 400_000_000, 4, 396, 99_999_901, 0, 198},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := Header{Width: int32(tc.w), Height: 8, BitsPerPixel: uint16(tc.bpp)}
			plan, err := Fit(tc.w, 8, image.Rect(0, 0, tc.target, 8))
			require.NoError(t, err)

			rp := newRowPainter(nil, h, plan, nil)
			assert.Equal(t, tc.wantOff, rp.colOff)
			assert.Equal(t, tc.wantLead, rp.lead)
			assert.Len(t, rp.buf, tc.wantLength)
		})
	}
}
