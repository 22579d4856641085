// Package config loads the slideshow settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/32bitkid/lackpaint/screen"
)

const (
	DefaultFile = "lackpaint.toml"
	EnvFile     = "LACKPAINT_CFG"
)

type Values struct {
	Folder               string `toml:"folder" validate:"required"`
	SecondsBetweenImages int    `toml:"seconds_between_images" validate:"min=1,max=86400"`
	RandomOrder          bool   `toml:"random_order"`
	ReadImageName        bool   `toml:"read_image_name"`
	ShowImageExt         bool   `toml:"show_image_ext"`
	LowercaseImageName   bool   `toml:"lowercase_image_name"`
	GreyscaleBits        int    `toml:"greyscale_bits" validate:"oneof=0 1 2 4"`
	GapFillColour        string `toml:"gap_fill_colour" validate:"hexcolour"`
	Dissolve             bool   `toml:"dissolve"`
	Touch                bool   `toml:"touch"`
	FullSplash           bool   `toml:"full_splash"`
	SplashSeconds        int    `toml:"splash_seconds" validate:"min=0,max=60"`
	ShowBusyIcons        bool   `toml:"show_busy_icons"`
	ShowTouch            bool   `toml:"show_touch"`
	DebugLogging         bool   `toml:"debug_logging"`
}

var BaseDefaults = Values{
	Folder:               "SLIDES/",
	SecondsBetweenImages: 10,
	RandomOrder:          true,
	ReadImageName:        true,
	GapFillColour:        "#ffffff",
	Dissolve:             true,
	Touch:                true,
	FullSplash:           true,
	SplashSeconds:        5,
	ShowBusyIcons:        true,
}

func validateHexColour(fl validator.FieldLevel) bool {
	_, err := screen.ParseHex(fl.Field().String())
	return err == nil
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("hexcolour", validateHexColour)
	return v
}()

func (v Values) Validate() error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (got %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// GapColour is the colour drawn either side of narrow slides.
func (v Values) GapColour() screen.Color {
	c, err := screen.ParseHex(v.GapFillColour)
	if err != nil {
		return screen.White
	}
	return c
}

func (v Values) Interval() time.Duration {
	return time.Duration(v.SecondsBetweenImages) * time.Second
}

func (v Values) SplashDuration() time.Duration {
	return time.Duration(v.SplashSeconds) * time.Second
}

// Load reads path from fsys over BaseDefaults. A missing file is not an
// error; the defaults are returned as they are.
func Load(fsys afero.Fs, path string) (Values, error) {
	vals := BaseDefaults

	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Msgf("no config file at %s, using defaults", path)
		return vals, nil
	}
	if err != nil {
		return vals, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &vals); err != nil {
		return BaseDefaults, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := vals.Validate(); err != nil {
		return BaseDefaults, err
	}
	return vals, nil
}

// Save writes vals to path, creating its directory.
func Save(fsys afero.Fs, path string, vals Values) error {
	if err := vals.Validate(); err != nil {
		return err
	}
	data, err := toml.Marshal(&vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := afero.WriteFile(fsys, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
