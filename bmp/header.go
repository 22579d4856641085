// Package bmp paints uncompressed 1-bit and 4-bit Windows bitmaps into a
// fixed screen rectangle without ever holding more than one row in memory.
package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	ErrSignature   = errors.New("bmp: missing BM signature")
	ErrInfoHeader  = errors.New("bmp: unsupported info header")
	ErrBitDepth    = errors.New("bmp: unsupported bit depth")
	ErrCompression = errors.New("bmp: compressed bitmaps are not supported")
	ErrPalette     = errors.New("bmp: palette entry 0 must be black")
	ErrDimensions  = errors.New("bmp: width and height must be positive")
	ErrNoFit       = errors.New("bmp: neither dimension matches the target")
	ErrTooShort    = errors.New("bmp: image is shorter than the target")
	ErrTruncated   = errors.New("bmp: pixel data ends early")
)

const infoHeaderSize = 40

// Header holds the fields the loader relies on. Offsets are fixed by the
// 14-byte file header followed by a 40-byte info header and the palette.
type Header struct {
	DataOffset   uint32
	InfoSize     uint32
	Width        int32
	Height       int32
	BitsPerPixel uint16
	Compression  uint32
	Palette0     uint32
}

// RowSize is the stored length of one row, padded to four bytes.
func (h Header) RowSize() int {
	return ((int(h.BitsPerPixel)*int(h.Width) + 31) / 32) * 4
}

// ReadHeader reads and checks the header at the start of r. 4-bit bitmaps
// are accepted here; whether they can be shown is up to the loader.
func ReadHeader(r io.ReadSeeker) (Header, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Header{}, err
	}

	var raw struct {
		Signature    [2]byte
		_            uint32 // file size
		_            uint32 // reserved
		DataOffset   uint32
		InfoSize     uint32
		Width        int32
		Height       int32
		_            uint16 // planes
		BitsPerPixel uint16
		Compression  uint32
		_            [5]uint32 // image size, resolution, colour counts
		Palette0     uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, fmt.Errorf("%w: %v", ErrSignature, err)
		}
		return Header{}, err
	}

	h := Header{
		DataOffset:   raw.DataOffset,
		InfoSize:     raw.InfoSize,
		Width:        raw.Width,
		Height:       raw.Height,
		BitsPerPixel: raw.BitsPerPixel,
		Compression:  raw.Compression,
		Palette0:     raw.Palette0,
	}

	switch {
	case raw.Signature != [2]byte{'B', 'M'}:
		return h, ErrSignature
	case h.InfoSize != infoHeaderSize:
		return h, fmt.Errorf("%w: size %d", ErrInfoHeader, h.InfoSize)
	case h.BitsPerPixel != 1 && h.BitsPerPixel != 4:
		return h, fmt.Errorf("%w: %d bpp", ErrBitDepth, h.BitsPerPixel)
	case h.Compression != 0:
		return h, fmt.Errorf("%w: method %d", ErrCompression, h.Compression)
	case h.Palette0 != 0:
		return h, fmt.Errorf("%w: 0x%08X", ErrPalette, h.Palette0)
	case h.Width <= 0 || h.Height <= 0:
		return h, fmt.Errorf("%w: %dx%d", ErrDimensions, h.Width, h.Height)
	}
	return h, nil
}
