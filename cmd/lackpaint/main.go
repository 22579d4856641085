package main

import (
	"fmt"
	"io"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/32bitkid/lackpaint/config"
)

func init() {
	// -v is verbose here
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := newApp(afero.NewOsFs(), os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("lackpaint failed")
	}
}

func newApp(fs afero.Fs, stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()

	app.Name = "lackpaint"
	app.Usage = "paint-program picture frame simulator"
	app.Version = "1.0.0"
	app.Writer = stdout
	app.ErrWriter = stderr

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{config.EnvFile},
			Value:   config.DefaultFile,
			Usage:   "path to configuration file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log debug detail",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "also log to this file, rotated",
		},
	}

	app.Before = func(c *cli.Context) error {
		setupLogging(stderr, c.Bool("verbose"), c.String("log-file"))
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:   "run",
			Usage:  "Run the slideshow on an in-memory screen",
			Action: runAction(fs),
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "watch",
					Usage: "rescan the slide folder when it changes",
				},
				&cli.StringFlag{
					Name:  "snapshot",
					Usage: "write the screen to this .png or .bmp after every slide",
				},
				&cli.DurationFlag{
					Name:  "for",
					Usage: "stop after this long",
				},
			},
		},
		{
			Name:   "render",
			Usage:  "Render a number of slide changes and save the screen",
			Action: renderAction(fs),
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "out",
					Usage:    "output .png or .bmp",
					Required: true,
				},
				&cli.IntFlag{
					Name:  "slides",
					Value: 1,
					Usage: "slide changes to run through",
				},
				&cli.IntFlag{
					Name:  "zoom",
					Value: 1,
					Usage: "enlarge the output, showing the panel's pixel grid",
				},
			},
		},
		{
			Name:      "inspect",
			Usage:     "Show how bitmaps would be fitted into the drawing window",
			ArgsUsage: "FILE...",
			Action:    inspectAction(fs),
		},
		{
			Name:   "config",
			Usage:  "Print the effective configuration",
			Action: configAction(fs),
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "init",
					Usage: "write the effective configuration to the config path",
				},
			},
		},
	}

	return app
}

// loadConfig reads the configuration named by --config and applies its
// logging level.
func loadConfig(c *cli.Context, fs afero.Fs) (config.Values, error) {
	cfg, err := config.Load(fs, c.String("config"))
	if err != nil {
		return cfg, err
	}
	if cfg.DebugLogging {
		enableDebug()
	}
	return cfg, nil
}

func configAction(fs afero.Fs) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c, fs)
		if err != nil {
			return err
		}

		if c.Bool("init") {
			path := c.String("config")
			if err := config.Save(fs, path, cfg); err != nil {
				return err
			}
			log.Info().Str("path", path).Msg("wrote configuration")
		}

		data, err := toml.Marshal(&cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = c.App.Writer.Write(data)
		return err
	}
}
