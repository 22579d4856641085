// Package slides picks the next slide from a folder, either in listing
// order or at random, and hands it to a painter.
package slides

import (
	"encoding/binary"
	"errors"
	"image"
	"io"
	"math/rand"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/32bitkid/lackpaint/bmp"
)

type Mode int

const (
	Sequential Mode = iota
	Random
)

func (m Mode) String() string {
	if m == Random {
		return "random"
	}
	return "sequential"
}

// Record describes the current slide. LongName is the original name from
// the file's trailer, filled in once the slide has been painted.
type Record struct {
	ShortName string
	LongName  string
	Ordinal   int
}

// Name is the best name known for the slide.
func (r Record) Name() string {
	if r.LongName != "" {
		return r.LongName
	}
	return r.ShortName
}

// Painter draws one slide file into target and reports the name to show.
type Painter interface {
	Paint(r io.ReadSeeker, shortName string, target image.Rectangle) (string, error)
}

// Selector owns the current slide. It is not safe for concurrent use.
type Selector struct {
	mode   Mode
	folder folder

	current Record
	have    bool

	// sequential
	dir afero.File

	// random
	count    int
	previous int
	rng      *rand.Rand
}

func NewSelector(fs afero.Fs, path string, mode Mode) *Selector {
	return &Selector{
		mode:   mode,
		folder: folder{fs: fs, path: path},
		rng:    rand.New(rand.NewSource(1)),
	}
}

func (s *Selector) Mode() Mode { return s.mode }

// Current returns the current slide, if any.
func (s *Selector) Current() (Record, bool) {
	return s.current, s.have
}

// Count is the number of eligible files seen by the last full scan. Only
// random mode scans.
func (s *Selector) Count() int { return s.count }

func (s *Selector) adopt(name string, ordinal int) {
	s.current = Record{ShortName: name, Ordinal: ordinal}
	s.have = true
}

func (s *Selector) closeDir() {
	if s.dir != nil {
		_ = s.dir.Close()
		s.dir = nil
	}
}

// Close releases the open folder listing.
func (s *Selector) Close() error {
	s.closeDir()
	return nil
}

// First starts over from the top of the folder. In random mode it counts
// the slides, seeds the generator from their names and makes the last one
// current, so the first Next is unlikely to repeat it.
func (s *Selector) First() bool {
	s.have = false
	if s.mode == Random {
		return s.firstRandom()
	}
	return s.firstSequential()
}

// Next moves to another slide. Without a current slide it falls back to
// First, so an unreadable card is retried on every call.
func (s *Selector) Next() bool {
	if !s.have {
		return s.First()
	}
	if s.mode == Random {
		return s.nextRandom()
	}
	return s.nextSequential()
}

func (s *Selector) firstSequential() bool {
	s.closeDir()
	dir, err := s.folder.open()
	if err != nil {
		log.Error().Err(err).Str("folder", s.folder.path).Msg("opening slide folder")
		return false
	}
	s.dir = dir
	s.current.Ordinal = 0
	return s.advance()
}

func (s *Selector) advance() bool {
	ordinal := s.current.Ordinal
	info, err := nextEligible(s.dir)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Error().Err(err).Str("folder", s.folder.path).Msg("reading slide folder")
		}
		s.have = false
		return false
	}
	s.adopt(info.Name(), ordinal+1)
	return true
}

func (s *Selector) nextSequential() bool {
	if s.advance() {
		return true
	}
	log.Debug().Msg("end of slide folder, starting over")
	return s.firstSequential()
}

func (s *Selector) firstRandom() bool {
	var seed uint32
	var last string
	count, err := s.folder.walk(func(name string, _ int) bool {
		seed ^= nameSeed(name)
		last = name
		return true
	})
	if err != nil {
		log.Error().Err(err).Str("folder", s.folder.path).Msg("scanning slide folder")
	}

	s.count = count
	s.previous = count
	if seed != 0 {
		s.rng.Seed(int64(seed))
	}
	log.Debug().Int("slides", count).Uint32("seed", seed).Msg("scanned slide folder")

	if count == 0 {
		return false
	}
	s.adopt(last, count)
	return true
}

func (s *Selector) nextRandom() bool {
	if s.count == 0 {
		return s.First()
	}

	n := s.rng.Intn(s.count) + 1
	if n == s.previous {
		// one retry only, repeats stay possible
		n = s.rng.Intn(s.count) + 1
	}
	s.previous = n

	s.have = false
	var picked string
	seen, err := s.folder.walk(func(name string, ordinal int) bool {
		if ordinal == n {
			picked = name
			return false
		}
		return true
	})
	if err != nil {
		log.Error().Err(err).Str("folder", s.folder.path).Msg("scanning slide folder")
		return false
	}
	if seen != n || picked == "" {
		// the folder shrank under us
		log.Warn().Int("wanted", n).Int("found", seen).Msg("slide folder changed")
		return false
	}
	s.adopt(picked, n)
	return true
}

func nameSeed(name string) uint32 {
	var b [4]byte
	copy(b[:], name)
	return binary.LittleEndian.Uint32(b[:])
}

// NameAsSeed folds the current short name into a number for seeding.
func (s *Selector) NameAsSeed() uint32 {
	if !s.have {
		return 0
	}
	return nameSeed(s.current.ShortName)
}

// Reseed mixes extra with the current name and reseeds the generator.
func (s *Selector) Reseed(extra uint32) {
	seed := extra ^ s.NameAsSeed()
	s.rng.Seed(int64(seed))
	log.Debug().Uint32("seed", seed).Msg("reseeded slide order")
}

// PaintCurrent paints the current slide with p. It reports false with an
// empty name when there is no current slide, and false with the painter's
// failure name when the file can't be shown.
func (s *Selector) PaintCurrent(p Painter, target image.Rectangle) (string, bool) {
	if !s.have {
		return "", false
	}
	short := s.current.ShortName

	f, err := s.folder.openSlide(short)
	if err != nil {
		log.Error().Err(err).Str("file", short).Msg("opening slide")
		return short + "?", false
	}
	defer f.Close()

	name, err := p.Paint(f, short, target)
	if err != nil {
		log.Warn().Err(err).Str("file", short).Msg("slide rejected")
		return name, false
	}
	if long, ok := bmp.ExtractName(f); ok {
		s.current.LongName = long
	}
	return name, true
}
