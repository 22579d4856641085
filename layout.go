package lackpaint

import "image"

const (
	ScreenWidth  = 480
	ScreenHeight = 320

	roundCorner = 5

	menuBarHeight = 19
	menuTextY     = 13
	menuItemGap   = 13
	menuX         = 12

	titleHeight   = 17
	titleBandsLHS = 20
	titleBandsRHS = 2
	titleGap      = 6

	busySize = 16

	iconSize = 32
	iconCell = 3

	linesX   = 26
	linesY   = 248
	linesW   = 29
	linesGap = 9
)

// Window rectangles are interiors; frames and shadows are drawn outside.
var (
	drawWindow = image.Rect(74, 30, 74+396, 30+236)
	toolWindow = image.Rect(10, 29, 10+51, 29+197)
	lineWindow = image.Rect(10, 237, 10+51, 237+75)
	fillWindow = image.Rect(72, 279, 72+401, 279+33)

	// ImageArea is where slides are painted, under the title bar.
	ImageArea = image.Rect(
		drawWindow.Min.X,
		drawWindow.Min.Y+titleHeight+1,
		drawWindow.Max.X,
		drawWindow.Max.Y,
	)

	busyAt = image.Pt(ScreenWidth-busySize-roundCorner, (menuBarHeight-busySize)/2)
)

var menuItems = []string{"\x80", "File", "Edit", "Goodies", "Font", "FontSize", "Style"}

const (
	splashTitle  = "\x81 LackPaint \x7F MMXXV \x81"
	untitled     = "untitled"
	pausedMsg    = "Paused"
	randomMsg    = "Randomized"
	helpText     = "Tap image to pause/resume."
	helpRandomly = " Elsewhere to randomize."
)
