package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/32bitkid/lackpaint"
	"github.com/32bitkid/lackpaint/bmp"
)

func inspectAction(fs afero.Fs) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() < 1 {
			return fmt.Errorf("inspect: no files given")
		}
		for _, path := range c.Args().Slice() {
			if err := inspect(c.App.Writer, fs, path); err != nil {
				return err
			}
		}
		return nil
	}
}

// inspect reports on one file. Files that are not usable slides are
// described, not treated as errors.
func inspect(w io.Writer, fs afero.Fs, path string) error {
	f, err := fs.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var report bytes.Buffer
	h, err := bmp.ReadHeader(f)
	switch {
	case bmp.IsRejected(err):
		fmt.Fprintf(&report, "%s: rejected: %v\n", path, err)
	case err != nil:
		return err
	default:
		describe(&report, f, path, h)
	}

	_, err = w.Write(report.Bytes())
	return err
}

func describe(report *bytes.Buffer, r io.ReadSeeker, path string, h bmp.Header) {
	fmt.Fprintf(report, "%s: %dx%d %dbpp, pixels at %d\n",
		path, h.Width, h.Height, h.BitsPerPixel, h.DataOffset)

	plan, err := bmp.Fit(int(h.Width), int(h.Height), lackpaint.ImageArea)
	if err != nil {
		fmt.Fprintf(report, "  fit: %v\n", err)
	} else {
		fmt.Fprintf(report, "  fit: paint %v gaps %d/%d crop rows %d/%d cols %d\n",
			plan.Paint, plan.LeftGap, plan.RightGap,
			plan.StartRow, plan.RowsBelow(int(h.Height)), plan.StartCol)
	}

	if name, ok := bmp.ExtractName(r); ok {
		fmt.Fprintf(report, "  name: %s\n", name)
	} else {
		report.WriteString("  name: none\n")
	}
}
