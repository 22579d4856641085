package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/32bitkid/lackpaint/screen"
)

func rowOf(fb *screen.Framebuffer, y, w int) []screen.Color {
	out := make([]screen.Color, w)
	for x := range out {
		out[x] = fb.ColorAt(x, y)
	}
	return out
}

func bitsRow(b byte, p Polarity) []screen.Color {
	out := make([]screen.Color, 8)
	for x := range out {
		out[x] = p.color(b&(0x80>>uint(x)) != 0)
	}
	return out
}

func TestParseHeader(t *testing.T) {
	t.Parallel()

	r, err := Parse([]byte{0x01, 0xDB, 0x00, 0x00, 0x00, 0x05, 0x00, 0x03, 0xAA}, true)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(475, 0), r.Origin)
	assert.Equal(t, 5, r.Width)
	assert.Equal(t, 3, r.Height)
	assert.Equal(t, []byte{0xAA}, r.Data)

	_, err = Parse([]byte{0, 1, 2}, true)
	assert.ErrorIs(t, err, ErrHeader)
}

func TestPaintEscapeSlots(t *testing.T) {
	t.Parallel()

	// literal, ring slot 0, unpopulated initial slot 10
	r := Raster{Width: 8, Height: 3, Data: []byte{0x0F, 0xA0, 0xAA}, Compressed: true}
	fb := screen.NewFramebuffer(8, 3)
	fb.Clear(screen.Black)

	require.NoError(t, Paint(fb, r, image.Point{}, 1, OnesWhite))
	assert.Zero(t, fb.Violations())

	want := bitsRow(0x0F, OnesWhite)
	assert.Equal(t, want, rowOf(fb, 0, 8))
	assert.Equal(t, want, rowOf(fb, 1, 8))
	assert.Equal(t, bitsRow(0xFF, OnesWhite), rowOf(fb, 2, 8))
}

func TestPaintConstantBlackSlot(t *testing.T) {
	t.Parallel()

	r := Raster{Width: 4, Height: 2, Data: []byte{0xA8, 0xF0}, Compressed: true}
	fb := screen.NewFramebuffer(4, 2)

	require.NoError(t, Paint(fb, r, image.Point{}, 1, OnesWhite))
	for x := 0; x < 4; x++ {
		assert.Equal(t, screen.Black, fb.ColorAt(x, 0))
		assert.Equal(t, screen.White, fb.ColorAt(x, 1))
	}
}

func TestPaintInitialSlots(t *testing.T) {
	t.Parallel()

	// nine literals push the first one out of the ring, slot 9 still has it
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x09, 0x0A, 0xA9, 0xA0}
	r := Raster{Width: 8, Height: len(data), Data: data, Compressed: true}
	fb := screen.NewFramebuffer(8, 11)

	require.NoError(t, Paint(fb, r, image.Point{}, 1, OnesBlack))
	assert.Equal(t, bitsRow(0x01, OnesBlack), rowOf(fb, 9, 8))
	// ring slot 0 now holds the ninth literal
	assert.Equal(t, bitsRow(0x0A, OnesBlack), rowOf(fb, 10, 8))
}

func TestPaintUncompressedIgnoresEscapes(t *testing.T) {
	t.Parallel()

	r := Raster{Width: 8, Height: 1, Data: []byte{0xA8}}
	fb := screen.NewFramebuffer(8, 1)

	require.NoError(t, Paint(fb, r, image.Point{}, 1, OnesBlack))
	assert.Equal(t, bitsRow(0xA8, OnesBlack), rowOf(fb, 0, 8))
}

func TestPaintScale(t *testing.T) {
	t.Parallel()

	r := Raster{Width: 2, Height: 1, Data: []byte{0x40}}
	fb := screen.NewFramebuffer(6, 3)

	require.NoError(t, Paint(fb, r, image.Pt(0, 0), 3, OnesBlack))
	assert.Zero(t, fb.Violations())
	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			want := screen.White
			if x >= 3 {
				want = screen.Black
			}
			assert.Equal(t, want, fb.ColorAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestPaintTruncatedCompletesFill(t *testing.T) {
	t.Parallel()

	r := Raster{Width: 16, Height: 4, Data: []byte{0x00, 0x00, 0x12}, Compressed: true}
	fb := screen.NewFramebuffer(16, 4)
	fb.Clear(screen.Black)

	err := Paint(fb, r, image.Point{}, 1, OnesWhite)
	require.ErrorIs(t, err, ErrTruncated)
	assert.Zero(t, fb.Violations())
	assert.Equal(t, screen.White, fb.ColorAt(0, 3))
}

func TestEncodeRejectsEscapeCollision(t *testing.T) {
	t.Parallel()

	m := image.NewGray(image.Rect(0, 0, 8, 1))
	for x, v := range []uint8{255, 0, 255, 0, 0, 0, 0, 0} {
		m.SetGray(x, 0, color.Gray{Y: v})
	}
	_, err := Encode(m, m.Bounds())
	assert.ErrorIs(t, err, ErrEscapeCollision)
}

func TestEncodeUsesSlots(t *testing.T) {
	t.Parallel()

	m := image.NewGray(image.Rect(0, 0, 8, 3))
	for x := 0; x < 8; x++ {
		m.SetGray(x, 1, color.Gray{Y: 255})
		m.SetGray(x, 2, color.Gray{Y: 255})
	}
	m.SetGray(0, 1, color.Gray{})
	m.SetGray(0, 2, color.Gray{})

	r, err := Encode(m, m.Bounds())
	require.NoError(t, err)
	assert.Equal(t, []byte{0xA8, 0x7F, 0xA0}, r.Data)
}

func TestPropertyEncodePaintReproducesImage(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 40).Draw(t, "w")
		h := rapid.IntRange(1, 30).Draw(t, "h")
		phases := rapid.SliceOfN(rapid.Bool(), 1, 6).Draw(t, "phases")

		// column 0 stays black so no literal row can begin with 0xA?
		m := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			seed := phases[y%len(phases)]
			for x := 1; x < w; x++ {
				if seed != ((x+y)%3 == 0) {
					m.SetGray(x, y, color.Gray{Y: 255})
				}
			}
		}

		r, err := Encode(m, m.Bounds())
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		fb := screen.NewFramebuffer(w, h)
		if err := Paint(fb, r, image.Point{}, 1, OnesWhite); err != nil {
			t.Fatalf("paint: %v", err)
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				want := screen.Black
				if m.GrayAt(x, y).Y == 255 {
					want = screen.White
				}
				if got := fb.ColorAt(x, y); got != want {
					t.Fatalf("pixel %d,%d: got %04X want %04X", x, y, got, want)
				}
			}
		}
		if fb.Violations() != 0 {
			t.Fatalf("sink violations: %d", fb.Violations())
		}
	})
}
