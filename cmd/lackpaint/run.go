package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/32bitkid/lackpaint"
	"github.com/32bitkid/lackpaint/screen"
)

const folderChanges = fsnotify.Create | fsnotify.Remove | fsnotify.Rename

func runAction(fs afero.Fs) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c, fs)
		if err != nil {
			return err
		}

		fb := screen.NewFramebuffer(lackpaint.ScreenWidth, lackpaint.ScreenHeight)
		snapshot := c.String("snapshot")
		app := lackpaint.New(lackpaint.Options{
			Sink:   fb,
			Fs:     fs,
			Config: cfg,
			OnSlide: func(name string, ok bool) {
				log.Info().Str("name", name).Bool("painted", ok).Msg("slide")
				if snapshot == "" {
					return
				}
				if err := writeImage(fs, snapshot, fb); err != nil {
					log.Error().Err(err).Str("path", snapshot).Msg("writing snapshot")
				}
			},
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if d := c.Duration("for"); d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}

		g, ctx := errgroup.WithContext(ctx)
		rescan := make(chan struct{}, 1)

		if c.Bool("watch") {
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()
			if err := watcher.Add(cfg.Folder); err != nil {
				return err
			}
			log.Debug().Str("folder", cfg.Folder).Msg("watching slide folder")
			g.Go(func() error {
				return watchFolder(ctx, watcher.Events, watcher.Errors, rescan)
			})
		}

		g.Go(func() error {
			return app.Run(ctx, rescan)
		})
		return g.Wait()
	}
}

// watchFolder turns folder changes into rescan requests. Requests are
// coalesced; a pending one is never duplicated.
func watchFolder(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	rescan chan<- struct{},
) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Op&folderChanges == 0 {
				continue
			}
			log.Debug().Str("file", ev.Name).Stringer("op", ev.Op).Msg("slide folder changed")
			select {
			case rescan <- struct{}{}:
			default:
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("error in watcher")
		}
	}
}
