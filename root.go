// Package lackpaint is a picture frame that looks like a 1984 paint
// program.
//
// Slides are uncompressed 1-bit (or 4-bit greyscale) bitmaps read from a
// folder on a storage device and painted, one at a time, into the drawing
// window of a static desktop. Everything around the slide is drawn from
// compact compiled-in rasters and a small bitmap font, so the whole screen
// can be produced without a frame buffer.
//
// App owns all state. Loop does one small piece of work per call and never
// blocks; Run drives it from a ticker.
package lackpaint

import (
	"context"
	"image"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/32bitkid/lackpaint/bmp"
	"github.com/32bitkid/lackpaint/config"
	"github.com/32bitkid/lackpaint/dissolve"
	"github.com/32bitkid/lackpaint/font"
	"github.com/32bitkid/lackpaint/resources"
	"github.com/32bitkid/lackpaint/screen"
	"github.com/32bitkid/lackpaint/slides"
)

const (
	// TickInterval is how often Run calls Loop.
	TickInterval = 20 * time.Millisecond

	firstSlideDelay = 2 * time.Second
	badSlideDelay   = time.Second
	messageTime     = time.Second
)

type Options struct {
	Sink   screen.Sink
	Fs     afero.Fs
	Clock  clockwork.Clock
	Config config.Values

	// Touch may be nil, as on a panel without a digitiser.
	Touch Touch

	// OnSlide is told about every painting attempt.
	OnSlide func(name string, ok bool)
}

type App struct {
	cfg     config.Values
	sink    screen.Sink
	clock   clockwork.Clock
	touch   *touchFilter
	onSlide func(name string, ok bool)

	face     *font.Face
	chrome   *resources.Chrome
	selector *slides.Selector
	loader   *bmp.Loader

	started     time.Time
	initialized bool
	splashing   bool
	splashUntil time.Time

	paused      bool
	getNext     bool
	rescan      bool
	lastImageAt time.Time
	timeToNext  time.Duration

	title        string
	message      string
	messageUntil time.Time
}

func New(opts Options) *App {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	mode := slides.Sequential
	if opts.Config.RandomOrder {
		mode = slides.Random
	}

	loader := bmp.NewLoader(opts.Sink, bmp.Options{
		GreyscaleBits: opts.Config.GreyscaleBits,
		GapColor:      opts.Config.GapColour(),
		ReadName:      opts.Config.ReadImageName,
		ShowExtension: opts.Config.ShowImageExt,
		Lowercase:     opts.Config.LowercaseImageName,
	})
	if opts.Config.Dissolve {
		loader.Dissolve = dissolve.New(dissolve.DefaultSeed)
	}

	a := &App{
		cfg:      opts.Config,
		sink:     opts.Sink,
		clock:    clock,
		onSlide:  opts.OnSlide,
		face:     resources.Font(),
		chrome:   resources.LoadChrome(),
		selector: slides.NewSelector(opts.Fs, opts.Config.Folder, mode),
		loader:   loader,
	}
	if opts.Touch != nil && opts.Config.Touch {
		a.touch = &touchFilter{src: opts.Touch}
	}
	return a
}

// Init draws the desktop and starts the splash. With no splash time the
// first slide is found straight away.
func (a *App) Init() {
	a.started = a.clock.Now()
	a.initialized = true

	a.drawScreen()
	a.drawTitle(splashTitle)
	a.splash(true)
	a.corners()

	a.splashing = true
	a.splashUntil = a.started.Add(a.cfg.SplashDuration())
	log.Debug().
		Str("folder", a.cfg.Folder).
		Stringer("mode", a.selector.Mode()).
		Msg("lackpaint started")

	if a.cfg.SplashSeconds == 0 {
		a.endSplash()
	}
}

func (a *App) endSplash() {
	a.splashing = false

	a.drawTitle(untitled)
	a.menuItems()
	a.splash(false)

	a.busy(true, true)
	a.selector.First()
	a.busy(false, false)

	a.getNext = false
	a.lastImageAt = a.clock.Now()
	a.timeToNext = firstSlideDelay
}

// Paused reports whether the slideshow is held on the current slide.
func (a *App) Paused() bool { return a.paused }

// Title is the text in the drawing window's title bar.
func (a *App) Title() string { return a.title }

// Message is the text at the right of the menu bar.
func (a *App) Message() string { return a.message }

// Rescan makes the next slide change start from a fresh look at the folder.
func (a *App) Rescan() { a.rescan = true }

// Loop performs one step: finishing the splash, changing slide, expiring a
// message or handling a touch.
func (a *App) Loop() {
	if !a.initialized {
		a.Init()
		return
	}

	now := a.clock.Now()
	if a.splashing {
		if !now.Before(a.splashUntil) {
			a.endSplash()
		}
		return
	}

	if !a.messageUntil.IsZero() && !now.Before(a.messageUntil) {
		a.clearMessage()
	}

	if !a.paused && now.Sub(a.lastImageAt) >= a.timeToNext {
		a.nextSlide()
		return
	}

	if a.touch != nil {
		if x, y, ok := a.touch.stable(); ok {
			a.tap(x, y)
		}
	}
}

func (a *App) nextSlide() {
	if !a.messageUntil.IsZero() {
		a.clearMessage()
	}

	// scanning can take a while
	a.busy(true, true)
	if a.rescan {
		a.rescan = false
		log.Debug().Msg("rescanning slide folder")
		a.selector.First()
		a.getNext = a.selector.Mode() == slides.Random
	}
	if a.getNext {
		a.selector.Next()
	}
	a.getNext = true

	a.busy(true, false)
	a.drawTitle("")
	name, painted := a.selector.PaintCurrent(a.loader, ImageArea)
	if name != "" {
		a.drawTitle(name)
	}
	a.busy(false, false)
	a.lastImageAt = a.clock.Now()

	switch {
	case painted:
		a.timeToNext = a.cfg.Interval()
	case name != "":
		// flash the bad name
		a.timeToNext = badSlideDelay
	default:
		a.timeToNext = 0
	}

	if a.onSlide != nil {
		a.onSlide(name, painted)
	}
}

func (a *App) tap(x, y int) {
	if a.cfg.ShowTouch {
		a.crosshair(x, y)
	}

	p := image.Pt(x, y)
	inside := drawWindow.Min.X <= p.X && p.X <= drawWindow.Max.X &&
		drawWindow.Min.Y <= p.Y && p.Y <= drawWindow.Max.Y

	switch {
	case inside:
		a.paused = !a.paused
		if a.paused {
			a.showMessage(pausedMsg)
		} else {
			a.clearMessage()
		}
		log.Debug().Bool("paused", a.paused).Msg("tap in drawing window")
	case !a.paused && a.selector.Mode() == slides.Random:
		a.showMessage(randomMsg)
		a.messageUntil = a.clock.Now().Add(messageTime)
		millis := a.clock.Since(a.started).Milliseconds()
		a.selector.Reseed(uint32(x*y) + uint32(millis))
	}
}

// Run calls Loop every TickInterval until ctx is done. A value on rescan
// schedules Rescan.
func (a *App) Run(ctx context.Context, rescan <-chan struct{}) error {
	if !a.initialized {
		a.Init()
	}

	ticker := a.clock.NewTicker(TickInterval)
	defer ticker.Stop()
	defer func() {
		_ = a.selector.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("lackpaint stopping")
			return nil
		case <-rescan:
			a.Rescan()
		case <-ticker.Chan():
			a.Loop()
		}
	}
}
