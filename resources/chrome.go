package resources

import (
	"image"
	"image/color"
	"sync"

	"github.com/32bitkid/lackpaint/raster"
)

// Screen corners are hand-made window resources and stored without row
// compression. Set bits are white.
var (
	cornerTopLeft = []byte{
		0, 0, 0, 0, 0, 5, 0, 5,
		0b00000111,
		0b00011111,
		0b00111111,
		0b01111111,
		0b01111111,
	}
	cornerTopRight = []byte{
		1, 219, 0, 0, 0, 5, 0, 5,
		0b00000000,
		0b11000000,
		0b11100000,
		0b11110000,
		0b11110000,
	}
	cornerBottomLeft = []byte{
		0, 0, 1, 59, 0, 5, 0, 5,
		0b00101000,
		0b01010000,
		0b00101000,
		0b00010000,
		0b00000000,
	}
	// looks less round than the others where it meets the checkerboard
	cornerBottomRight = []byte{
		1, 219, 1, 59, 0, 5, 0, 5,
		0b01010000,
		0b10100000,
		0b01000000,
		0b10000000,
		0b00000000,
	}
)

// Chrome holds every static raster drawn around the slide. All of them
// paint with raster.OnesWhite.
type Chrome struct {
	Corners []raster.Raster

	// window contents, positioned
	Tools raster.Raster
	Fills raster.Raster
	Tick  raster.Raster

	// icons, positioned by the caller
	Icon raster.Raster
	Busy raster.Raster
	Disk raster.Raster
}

var (
	toolsWindow = image.Rect(10, 29, 10+51, 29+197)
	fillsWindow = image.Rect(72, 279, 72+401, 279+33)
	tickAt      = image.Pt(13, 254)
)

const tickArt = `
	..........##
	.........##.
	........##..
	.##....##...
	.###..##....
	..######....
	...####.....
	....##......
	............
`

const iconArt = `
	................................
	................................
	..############################..
	..#..........................#..
	..#.#######################..#..
	..#.#.....................#..#..
	..#.#.....................#..#..
	..#.#.........###.........#..#..
	..#.#........#####........#..#..
	..#.#.......#######.......#..#..
	..#.#........#####........#..#..
	..#.#.........###.........#..#..
	..#.#.....................#..#..
	..#.#.........#...........#..#..
	..#.#........###..........#..#..
	..#.#.......#####.....#...#..#..
	..#.#......#######...###..#..#..
	..#.#.....#########.#####.#..#..
	..#.#....###########.######..#..
	..#.#...##############.####..#..
	..#.#..####################..#..
	..#.#######################..#..
	..#..........................#..
	..#..........................#..
	..#...##########.........##..#..
	..#...#........#........####.#..
	..#...##########.........##..#..
	..#..........................#..
	..############################..
	...###########################..
	................................
	................................
`

const busyArt = `
	.....######.....
	.....######.....
	.....######.....
	....########....
	...##......##...
	..##...#....##..
	..#....#.....#..
	..#....#.....##.
	..#....####..##.
	..#..........#..
	..##........##..
	...##......##...
	....########....
	.....######.....
	.....######.....
	.....######.....
`

const diskArt = `
	.##############.
	.#..#......#.##.
	.#..#......#..#.
	.#..#......#..#.
	.#..#......#..#.
	.#..########..#.
	.#............#.
	.#............#.
	.#..########..#.
	.#..#......#..#.
	.#..#......#..#.
	.#..#......#..#.
	.#..#......#..#.
	.#..########..#.
	.##############.
	................
`

// toolArt is the paint tool palette, two per row, left then right.
var toolArt = []string{
	// lasso
	`
	...#####...
	..#.....#..
	.#.......#.
	.#.......#.
	..#.....#..
	...#####...
	.....#.....
	....#......
	....#......
	.....##....
	...........
	`,
	// marquee
	`
	#.#.#.#.#.#
	...........
	#.........#
	...........
	#.........#
	...........
	#.........#
	...........
	#.........#
	...........
	#.#.#.#.#.#
	`,
	// grabber
	`
	....#.#....
	...#.#.#...
	...#.#.#.#.
	...#.#.#.##
	.#.#.#.#.##
	##.#######.
	.#########.
	..########.
	..#######..
	...######..
	...........
	`,
	// text
	`
	...........
	.....#.....
	....###....
	....###....
	...##.##...
	...##.##...
	..#######..
	..##...##..
	.##.....##.
	###.....###
	...........
	`,
	// paint bucket
	`
	....#......
	...#.#.....
	..#..##....
	.#..#.##...
	#..#...##..
	.#.#....##.
	..#....#.##
	...#..#..##
	....##...##
	..........#
	...........
	`,
	// spray can
	`
	.#.#.......
	#.#.##.....
	.#.####....
	#.#####....
	.........#.
	...#####...
	...#...#...
	...#...#...
	...#...#...
	...#...#...
	...#####...
	`,
	// brush
	`
	.........##
	........##.
	.......##..
	......##...
	.....##....
	....##.....
	...###.....
	..####.....
	..###......
	.###.......
	.##........
	`,
	// pencil
	`
	.......###.
	......#.##.
	.....#.#.#.
	....#.#.#..
	...#.#.#...
	..#.#.#....
	.#.#.#.....
	.###.......
	.##........
	.#.........
	...........
	`,
	// line
	`
	#..........
	.#.........
	..#........
	...#.......
	....#......
	.....#.....
	......#....
	.......#...
	........#..
	.........#.
	..........#
	`,
	// eraser
	`
	...........
	....#######
	...#.....##
	..#.....#.#
	.#.....#..#
	#######...#
	#.....#..#.
	#.....#.#..
	#.....##...
	#######....
	...........
	`,
	// rectangle
	`
	...........
	###########
	#.........#
	#.........#
	#.........#
	#.........#
	#.........#
	#.........#
	#.........#
	###########
	...........
	`,
	// filled rectangle
	`
	...........
	###########
	#.#.#.#.#.#
	##.#.#.#.##
	#.#.#.#.#.#
	##.#.#.#.##
	#.#.#.#.#.#
	##.#.#.#.##
	#.#.#.#.#.#
	###########
	...........
	`,
	// rounded rectangle
	`
	...........
	..#######..
	.#.......#.
	#.........#
	#.........#
	#.........#
	#.........#
	#.........#
	.#.......#.
	..#######..
	...........
	`,
	// filled rounded rectangle
	`
	...........
	..#######..
	.##.#.#.##.
	#.#.#.#.#.#
	##.#.#.#.##
	#.#.#.#.#.#
	##.#.#.#.##
	#.#.#.#.#.#
	.##.#.#.##.
	..#######..
	...........
	`,
	// oval
	`
	...#####...
	.##.....##.
	#.........#
	#.........#
	#.........#
	#.........#
	#.........#
	#.........#
	#.........#
	.##.....##.
	...#####...
	`,
	// filled oval
	`
	...#####...
	.##.#.#.##.
	#.#.#.#.#.#
	##.#.#.#.##
	#.#.#.#.#.#
	##.#.#.#.##
	#.#.#.#.#.#
	##.#.#.#.##
	#.#.#.#.#.#
	.##.#.#.##.
	...#####...
	`,
	// freehand
	`
	....###....
	..##...#...
	.#......#..
	.#.......#.
	..#......#.
	...##...#..
	.....#..#..
	....#...#..
	...#...#...
	...####....
	...........
	`,
	// filled freehand
	`
	....###....
	..###.##...
	.#.#.#.##..
	.##.#.#.##.
	..##.#.#.#.
	...##.#.##.
	.....#.##..
	....#.#.#..
	...#.#.#...
	...####....
	...........
	`,
	// polygon
	`
	....#......
	...#.#.....
	..#...#....
	.#.....#...
	#.......###
	#.........#
	#.........#
	.#.......#.
	..#.....#..
	...#####...
	...........
	`,
	// filled polygon
	`
	....#......
	...###.....
	..#.#.#....
	.#.#.#.#...
	#.#.#.#.###
	##.#.#.#.##
	#.#.#.#.#.#
	.#.#.#.#.#.
	..#.#.#.#..
	...#####...
	...........
	`,
}

// fillPatterns are 8x8 tiles, set bits black.
var fillPatterns = [40][8]byte{
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
	{0x77, 0xDD, 0x77, 0xDD, 0x77, 0xDD, 0x77, 0xDD},
	{0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55},
	{0x88, 0x22, 0x88, 0x22, 0x88, 0x22, 0x88, 0x22},
	{0x88, 0x00, 0x22, 0x00, 0x88, 0x00, 0x22, 0x00},
	{0x80, 0x00, 0x08, 0x00, 0x80, 0x00, 0x08, 0x00},
	{0x80, 0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00},
	{0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00},
	{0xFF, 0x00, 0x00, 0x00, 0xFF, 0x00, 0x00, 0x00},
	{0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA},
	{0x88, 0x88, 0x88, 0x88, 0x88, 0x88, 0x88, 0x88},
	{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80},
	{0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01},
	{0x11, 0x22, 0x44, 0x88, 0x11, 0x22, 0x44, 0x88},
	{0x88, 0x44, 0x22, 0x11, 0x88, 0x44, 0x22, 0x11},
	{0xFF, 0x80, 0x80, 0x80, 0xFF, 0x08, 0x08, 0x08},
	{0xFF, 0x88, 0x88, 0x88, 0xFF, 0x88, 0x88, 0x88},
	{0xF0, 0xF0, 0xF0, 0xF0, 0x0F, 0x0F, 0x0F, 0x0F},
	{0xCC, 0xCC, 0x33, 0x33, 0xCC, 0xCC, 0x33, 0x33},
	{0x81, 0x42, 0x24, 0x18, 0x18, 0x24, 0x42, 0x81},
	{0x10, 0x38, 0x7C, 0xFE, 0x7C, 0x38, 0x10, 0x00},
	{0x00, 0x44, 0x00, 0x11, 0x00, 0x44, 0x00, 0x11},
	{0xDD, 0x77, 0xDD, 0x77, 0xDD, 0x77, 0xDD, 0x77},
	{0xEE, 0xBB, 0xEE, 0xBB, 0xEE, 0xBB, 0xEE, 0xBB},
	{0x7F, 0xFF, 0xF7, 0xFF, 0x7F, 0xFF, 0xF7, 0xFF},
	{0x18, 0x18, 0xFF, 0x18, 0x18, 0x18, 0x18, 0x18},
	{0x08, 0x1C, 0x22, 0xC1, 0x80, 0x01, 0x02, 0x04},
	{0x80, 0x80, 0x41, 0x3E, 0x08, 0x08, 0x14, 0xE3},
	{0xB1, 0x30, 0x03, 0x1B, 0xD8, 0xC0, 0x0C, 0x8D},
	{0x02, 0x01, 0x80, 0x40, 0x20, 0x10, 0x08, 0x04},
	{0x20, 0x50, 0x88, 0x88, 0x88, 0x88, 0x05, 0x02},
	{0x77, 0x89, 0x8F, 0x8F, 0x77, 0x98, 0xF8, 0xF8},
	{0x00, 0x08, 0x14, 0x2A, 0x55, 0x2A, 0x14, 0x08},
	{0x82, 0x44, 0x39, 0x44, 0x82, 0x01, 0x01, 0x01},
	{0x41, 0x80, 0x00, 0x00, 0x14, 0x08, 0x00, 0x00},
	{0xAA, 0x00, 0x80, 0x00, 0x88, 0x00, 0x80, 0x00},
	{0x3E, 0x41, 0x80, 0x80, 0x80, 0x41, 0x3E, 0x00},
	{0xC0, 0xC0, 0x00, 0x00, 0x0C, 0x0C, 0x00, 0x00},
	{0xF8, 0x74, 0x22, 0x47, 0x8F, 0x17, 0x22, 0x71},
}

func canvas(w, h int) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 0xFF
	}
	return m
}

func hline(m *image.Gray, y int) {
	for x := m.Rect.Min.X; x < m.Rect.Max.X; x++ {
		m.SetGray(x, y, color.Gray{})
	}
}

func vline(m *image.Gray, x int) {
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		m.SetGray(x, y, color.Gray{})
	}
}

func blit(dst *image.Gray, src *image.Gray, at image.Point) {
	b := src.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.SetGray(at.X+x, at.Y+y, src.GrayAt(b.Min.X+x, b.Min.Y+y))
		}
	}
}

// toolsImage lays the tool icons out in a 2x10 grid. The two left-most
// columns stay white so no literal row can open with an escape byte.
func toolsImage() *image.Gray {
	const (
		cellW  = 25
		cellH  = 18
		margin = 3
	)
	m := canvas(toolsWindow.Dx(), toolsWindow.Dy())
	vline(m, cellW)
	for row := 0; row < len(toolArt)/2; row++ {
		top := margin + row*(cellH+1)
		if row > 0 {
			hline(m, top-1)
		}
		for col := 0; col < 2; col++ {
			icon := bitmapFromTemplate(toolArt[row*2+col])
			left := col * (cellW + 1)
			at := image.Pt(left+(cellW-icon.Rect.Dx())/2, top+(cellH-icon.Rect.Dy())/2)
			blit(m, icon, at)
		}
	}
	return m
}

// fillsImage is two rows of twenty pattern swatches, each boxed by black
// rules.
func fillsImage() *image.Gray {
	const (
		cols   = 20
		swatch = 20
		rowH   = 16
	)
	m := canvas(fillsWindow.Dx(), fillsWindow.Dy())
	for i, pat := range fillPatterns {
		col, row := i%cols, i/cols
		x0, y0 := col*swatch, row*rowH
		for y := y0 + 1; y < y0+rowH; y++ {
			for x := x0 + 1; x < x0+swatch; x++ {
				if pat[y&7]&(0x80>>uint(x&7)) != 0 {
					m.SetGray(x, y, color.Gray{})
				}
			}
		}
	}
	for x := 0; x < m.Rect.Dx(); x += swatch {
		vline(m, x)
	}
	for y := 0; y < m.Rect.Dy(); y += rowH {
		hline(m, y)
	}
	return m
}

func mustParse(b []byte) raster.Raster {
	r, err := raster.Parse(b, false)
	if err != nil {
		panic(err)
	}
	return r
}

func buildChrome() *Chrome {
	return &Chrome{
		Corners: []raster.Raster{
			mustParse(cornerTopLeft),
			mustParse(cornerTopRight),
			mustParse(cornerBottomLeft),
			mustParse(cornerBottomRight),
		},
		Tools: mustEncode(toolsImage(), toolsWindow.Min),
		Fills: mustEncode(fillsImage(), fillsWindow.Min),
		Tick:  mustEncode(bitmapFromTemplate(tickArt), tickAt),
		Icon:  mustEncode(bitmapFromTemplate(iconArt), image.Point{}),
		Busy:  mustEncode(bitmapFromTemplate(busyArt), image.Point{}),
		Disk:  mustEncode(bitmapFromTemplate(diskArt), image.Point{}),
	}
}

var chrome = sync.OnceValue(buildChrome)

// LoadChrome returns the shared chrome rasters.
func LoadChrome() *Chrome { return chrome() }
