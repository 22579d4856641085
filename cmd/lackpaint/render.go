package main

import (
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
	xbmp "golang.org/x/image/bmp"

	"github.com/32bitkid/lackpaint"
	"github.com/32bitkid/lackpaint/screen"
)

func renderAction(fs afero.Fs) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c, fs)
		if err != nil {
			return err
		}

		fb := screen.NewFramebuffer(lackpaint.ScreenWidth, lackpaint.ScreenHeight)
		clock := clockwork.NewFakeClock()
		attempts := 0
		app := lackpaint.New(lackpaint.Options{
			Sink:   fb,
			Fs:     fs,
			Clock:  clock,
			Config: cfg,
			OnSlide: func(name string, ok bool) {
				attempts++
				log.Debug().Str("name", name).Bool("painted", ok).Msg("slide")
			},
		})
		app.Init()

		want := c.Int("slides")
		// one second steps; every state change happens on whole seconds
		limit := cfg.SplashSeconds + 2 + want*(cfg.SecondsBetweenImages+1) + 1
		for step := 0; attempts < want && step < limit; step++ {
			clock.Advance(time.Second)
			app.Loop()
		}

		if v := fb.Violations(); v > 0 {
			log.Warn().Int("violations", v).Msg("fill protocol broken")
		}
		var m image.Image = fb
		if zoom := c.Int("zoom"); zoom > 1 {
			m = screen.Magnify(fb, zoom)
		}
		out := c.String("out")
		if err := writeImage(fs, out, m); err != nil {
			return err
		}
		log.Info().Str("path", out).Int("slides", attempts).Str("title", app.Title()).Msg("rendered")
		return nil
	}
}

// writeImage saves m as PNG or BMP depending on the extension of path.
func writeImage(fs afero.Fs, path string, m image.Image) error {
	var encode func(f afero.File) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		encode = func(f afero.File) error { return png.Encode(f, m) }
	case ".bmp":
		encode = func(f afero.File) error { return xbmp.Encode(f, m) }
	default:
		return fmt.Errorf("unsupported image type %q", ext)
	}

	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
