package bmp

import (
	"bytes"
	"io"
	"strings"
)

const (
	// MaxNameLen bounds a name recovered from the trailer.
	MaxNameLen = 40

	trailerScan = MaxNameLen + 8 + 2 + 2
)

var trailerTag = []byte("NAME:=\r\n")

// ExtractName recovers the original file name appended after the pixel
// data as "NAME:=\r\n<name>\r\n". Only the last few bytes of the file are
// examined; anything malformed reports false.
func ExtractName(r io.ReadSeeker) (string, bool) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return "", false
	}
	start := size - trailerScan
	if start < 0 {
		start = 0
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return "", false
	}
	tail, err := io.ReadAll(r)
	if err != nil {
		return "", false
	}

	i := bytes.Index(tail, trailerTag)
	if i < 0 {
		return "", false
	}

	var name []byte
	for _, ch := range tail[i+len(trailerTag):] {
		switch {
		case ch == '\r':
			if len(name) == 0 {
				return "", false
			}
			return string(name), true
		case ch < 0x20 || ch > 0x7E:
			return "", false
		case len(name) == MaxNameLen:
			return "", false
		default:
			name = append(name, ch)
		}
	}
	return "", false
}

// DisplayName applies the title options to a recovered or short name.
func DisplayName(name string, showExtension, lowercase bool) string {
	if !showExtension && len(name) > 4 && name[len(name)-4] == '.' {
		name = name[:len(name)-4]
	}
	if lowercase {
		name = strings.ToLower(name)
	}
	return name
}
