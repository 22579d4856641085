// Package dissolve produces a pseudo-random row order for painting an image
// so that it fades in rather than wiping from top to bottom.
package dissolve

// DefaultSeed is used when a sequencer is created with a zero seed, which
// would lock the register.
const DefaultSeed uint8 = 0x55

// MaxRows is the largest row count a Sequencer can order.
const MaxRows = 255

// Sequencer is an 8-bit Fibonacci LFSR with taps 8,6,5,4. It cycles through
// every value in [1,255] once per period.
type Sequencer struct {
	state uint8
}

func New(seed uint8) *Sequencer {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Sequencer{state: seed}
}

func (s *Sequencer) step() uint8 {
	v := s.state
	bit := (v ^ v>>2 ^ v>>3 ^ v>>4) & 1
	s.state = v>>1 | bit<<7
	return s.state
}

// Next returns a row in [0,n). Successive calls with the same n visit every
// row once before any repeats.
func (s *Sequencer) Next(n int) int {
	if n <= 0 {
		return 0
	}
	if n > MaxRows {
		n = MaxRows
	}
	if s.state == 0 {
		s.state = DefaultSeed
	}
	for {
		if v := int(s.step()) - 1; v < n {
			return v
		}
	}
}
