package lackpaint

import (
	"image"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/32bitkid/lackpaint/raster"
	"github.com/32bitkid/lackpaint/resources"
	"github.com/32bitkid/lackpaint/screen"
)

var touchMark = screen.RGB(255, 0, 0)

func (a *App) fill(x, y, w, h int, c screen.Color) {
	screen.FillRect(a.sink, x, y, w, h, c)
}

func (a *App) paint(r raster.Raster, at image.Point, scale int) {
	if err := raster.Paint(a.sink, r, at, scale, raster.OnesWhite); err != nil {
		log.Error().Err(err).Msgf("painting chrome at %v", at)
	}
}

// checkerboard fills the whole screen with alternating pixels.
func (a *App) checkerboard() {
	a.sink.BeginFill(0, 0, ScreenWidth, ScreenHeight)
	for row := 0; row < ScreenHeight; row++ {
		for col := 0; col < ScreenWidth; col++ {
			if (col+row&1)&1 != 0 {
				a.sink.PushPixel(screen.White)
			} else {
				a.sink.PushPixel(screen.Black)
			}
		}
	}
}

// windowFrame outlines interior r and adds a drop shadow right and below.
func (a *App) windowFrame(r image.Rectangle) {
	x, y := r.Min.X-1, r.Min.Y-1
	w, h := r.Dx()+2, r.Dy()+2
	screen.Rect(a.sink, x, y, w, h, screen.Black)
	a.fill(x+w, y, 1, h+1, screen.Black)
	a.fill(x, y+h, w+1, 1, screen.Black)
}

func (a *App) titleBands(x, y, h, length int) {
	a.fill(x, y, length, 3, screen.White)
	for bar := 0; bar < 6; bar++ {
		a.fill(x, y+3+2*bar, length, 1, screen.Black)
		a.fill(x, y+4+2*bar, length, 1, screen.White)
	}
	a.fill(x, y+h-2, length, 2, screen.White)
}

func (a *App) titleBar() {
	x, y, w, h := drawWindow.Min.X, drawWindow.Min.Y, drawWindow.Dx(), titleHeight
	a.titleBands(x+1, y, h, w-2)
	a.fill(x, y+h, w, 1, screen.Black)
	// close box
	a.fill(x+7, y+3, 13, 11, screen.White)
	screen.Rect(a.sink, x+8, y+3, 11, 11, screen.Black)
}

// drawTitle centres title in the title bar, or shows bands only when it is
// empty.
func (a *App) drawTitle(title string) {
	x, y, w, h := drawWindow.Min.X, drawWindow.Min.Y, drawWindow.Dx(), titleHeight
	a.title = title
	if title == "" {
		a.titleBands(x+titleBandsLHS, y, h, w-titleBandsRHS-titleBandsLHS)
		return
	}

	n := a.face.MeasureString(title)
	cenX := x + (w-n)/2
	bandX := x + titleBandsLHS
	a.titleBands(bandX, y, h, cenX-titleGap-bandX)
	bandX = cenX - titleGap + n + 2*titleGap
	a.titleBands(bandX, y, h, x+w-titleBandsRHS-bandX)
	a.fill(cenX-titleGap, y+1, n+2*titleGap, h-2, screen.White)
	a.face.DrawString(a.sink, title, cenX, y+resources.FontHeight)
}

func (a *App) menuItems() {
	x := menuX
	for _, item := range menuItems {
		x = a.face.DrawString(a.sink, item, x, menuTextY)
		x += menuItemGap
	}
}

// showMessage replaces whatever sits at the far right of the menu bar.
func (a *App) showMessage(msg string) {
	a.clearMessage()
	w := a.face.MeasureString(msg)
	a.face.DrawString(a.sink, msg, ScreenWidth-w-roundCorner, menuTextY)
	a.message = msg
}

func (a *App) clearMessage() {
	if a.message == "" {
		return
	}
	w := a.face.MeasureString(a.message)
	a.fill(ScreenWidth-w-roundCorner, 0, w, menuBarHeight-1, screen.White)
	a.message = ""
	a.messageUntil = time.Time{}
}

// lines draws the line width palette: a dotted hairline then widths 1-8.
func (a *App) lines() {
	y, h := linesY, 1
	a.sink.BeginFill(linesX, y, linesW, h)
	for x := 0; x < linesW; x++ {
		if x&0b11 != 0 {
			a.sink.PushPixel(screen.White)
		} else {
			a.sink.PushPixel(screen.Black)
		}
	}
	y++
	for line := 0; line < 4; line++ {
		y += linesGap + h
		h = 1 << uint(line)
		a.fill(linesX, y, linesW, h, screen.Black)
	}
}

func (a *App) help() string {
	if a.cfg.RandomOrder {
		return helpText + helpRandomly
	}
	return helpText
}

func (a *App) splash(draw bool) {
	if !a.cfg.FullSplash {
		return
	}
	size := iconSize * iconCell
	x := drawWindow.Min.X + (ImageArea.Dx()-size)/2
	y := drawWindow.Min.Y + titleHeight + (ImageArea.Dy()-size)/2
	if draw {
		a.paint(a.chrome.Icon, image.Pt(x, y), iconCell)
	} else {
		a.fill(x, y, size, size, screen.White)
	}

	help := a.help()
	w := a.face.MeasureString(help)
	x = drawWindow.Min.X + (drawWindow.Dx()-w)/2
	y = drawWindow.Max.Y - resources.FontDescender - 2
	if draw {
		a.face.DrawString(a.sink, help, x, y)
	} else {
		a.fill(x, y-resources.FontHeight, w, resources.FontHeight+resources.FontDescender+1, screen.White)
	}
}

// busy shows the disk while scanning, the watch while painting, or clears
// the spot.
func (a *App) busy(draw, disk bool) {
	if !a.cfg.ShowBusyIcons {
		return
	}
	if !draw {
		a.fill(busyAt.X, busyAt.Y, busySize, busySize, screen.White)
		return
	}
	icon := a.chrome.Busy
	if disk {
		icon = a.chrome.Disk
	}
	a.paint(icon, busyAt, 1)
}

func (a *App) crosshair(x, y int) {
	a.fill(x-3, y, 7, 1, touchMark)
	a.fill(x, y-3, 1, 7, touchMark)
}

// drawScreen paints every static part of the screen.
func (a *App) drawScreen() {
	a.checkerboard()

	a.fill(0, 0, ScreenWidth, menuBarHeight, screen.White)
	a.fill(0, menuBarHeight, ScreenWidth, 1, screen.Black)

	a.windowFrame(drawWindow)
	a.fill(drawWindow.Min.X, drawWindow.Min.Y, drawWindow.Dx(), drawWindow.Dy(), screen.White)
	a.titleBar()

	a.windowFrame(toolWindow)
	a.paint(a.chrome.Tools, a.chrome.Tools.Origin, 1)

	a.windowFrame(lineWindow)
	a.fill(lineWindow.Min.X, lineWindow.Min.Y, lineWindow.Dx(), lineWindow.Dy(), screen.White)
	a.paint(a.chrome.Tick, a.chrome.Tick.Origin, 1)
	a.lines()

	a.windowFrame(fillWindow)
	a.paint(a.chrome.Fills, a.chrome.Fills.Origin, 1)
}

func (a *App) corners() {
	for _, c := range a.chrome.Corners {
		a.paint(c, c.Origin, 1)
	}
}
