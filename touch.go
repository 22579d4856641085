package lackpaint

// Touch samples the panel. ok is false while nothing is pressing it.
type Touch interface {
	Touch() (x, y int, ok bool)
}

const touchSamples = 8

// touchFilter averages touchSamples consecutive readings, one per call.
// Coordinates are halved before summing so each sample fits a byte.
type touchFilter struct {
	src Touch

	xs, ys [touchSamples]uint8
	n      int

	// a reported touch must lift before the next one counts
	held bool
}

func (f *touchFilter) reset() { f.n = 0 }

// stable reports an averaged position once touchSamples readings in a row
// have been taken.
func (f *touchFilter) stable() (x, y int, ok bool) {
	tx, ty, down := f.src.Touch()
	if f.held {
		if !down {
			f.held = false
		}
		return 0, 0, false
	}
	if !down {
		f.reset()
		return 0, 0, false
	}

	f.xs[f.n] = uint8(tx >> 1)
	f.ys[f.n] = uint8(ty >> 1)
	f.n++
	if f.n < touchSamples {
		return 0, 0, false
	}
	f.reset()
	f.held = true
	return average(f.xs), average(f.ys), true
}

// average returns twice the mean of the halved samples.
func average(samples [touchSamples]uint8) int {
	sum := 0
	for _, s := range samples {
		sum += int(s)
	}
	return sum >> 2
}
