package slides

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// folder is the slide directory on the storage device. Listings are read
// one entry at a time so nothing proportional to the folder size is held.
type folder struct {
	fs   afero.Fs
	path string
}

func eligible(info os.FileInfo) bool {
	return !info.IsDir() && !strings.HasPrefix(info.Name(), ".")
}

func (f folder) open() (afero.File, error) {
	return f.fs.Open(f.path)
}

// nextEligible reads entries from dir until an eligible one turns up.
// io.EOF means the listing is exhausted.
func nextEligible(dir afero.File) (os.FileInfo, error) {
	for {
		infos, err := dir.Readdir(1)
		if len(infos) == 0 {
			if err == nil {
				err = io.EOF
			}
			return nil, err
		}
		if eligible(infos[0]) {
			return infos[0], nil
		}
	}
}

// walk calls visit with every eligible name and its 1-based ordinal until
// visit returns false. It returns the number of names visited.
func (f folder) walk(visit func(name string, ordinal int) bool) (int, error) {
	dir, err := f.open()
	if err != nil {
		return 0, err
	}
	defer dir.Close()

	count := 0
	for {
		info, err := nextEligible(dir)
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		count++
		if !visit(info.Name(), count) {
			return count, nil
		}
	}
}

func (f folder) openSlide(name string) (afero.File, error) {
	return f.fs.Open(filepath.Join(f.path, name))
}
