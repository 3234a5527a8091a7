package render

import (
	"github.com/gdamore/tcell/v2"
)

// Each terminal cell holds a 2x4 grid of braille dots
const (
	DotsX = 2
	DotsY = 4
)

// brailleBase is U+2800, the empty braille pattern
const brailleBase = 0x2800

// brailleBits maps a dot position (x, y) within a cell to its pattern bit
var brailleBits = [DotsX][DotsY]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Canvas represents a 2D grid of cells for terminal rendering. Besides text,
// each cell carries braille dots, so the canvas can also be addressed as a
// pixel grid of (width*DotsX) x (height*DotsY) dots.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// Cell represents a single character cell with style
type Cell struct {
	Char  rune
	Dots  uint8
	Style tcell.Style
}

// blank is the content of a cleared cell
var blank = Cell{Char: ' ', Style: tcell.StyleDefault}

// NewCanvas creates a new blank canvas; negative sizes are treated as zero
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: max(width, 0), height: max(height, 0)}
	c.cells = make([][]Cell, c.height)
	for y := range c.cells {
		c.cells[y] = make([]Cell, c.width)
	}
	c.Clear()
	return c
}

func (c *Canvas) contains(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Set sets the character and style at the given position
// Coordinates are 0-indexed with (0,0) at top-left
func (c *Canvas) Set(x, y int, char rune, style tcell.Style) {
	if c.contains(x, y) {
		c.cells[y][x] = Cell{Char: char, Style: style}
	}
}

// SetBackground changes the background color of a cell, keeping its content
func (c *Canvas) SetBackground(x, y int, color tcell.Color) {
	if c.contains(x, y) {
		c.cells[y][x].Style = c.cells[y][x].Style.Background(color)
	}
}

// SetDot turns on the braille dot at pixel (px, py). The cell's foreground
// takes the given style's foreground; its background is kept.
func (c *Canvas) SetDot(px, py int, style tcell.Style) {
	if px < 0 || py < 0 || !c.contains(px/DotsX, py/DotsY) {
		return
	}
	x, y := px/DotsX, py/DotsY
	cell := &c.cells[y][x]
	cell.Dots |= brailleBits[px%DotsX][py%DotsY]
	fg, _, _ := style.Decompose()
	cell.Style = cell.Style.Foreground(fg)
}

// Get retrieves the cell at the given position
func (c *Canvas) Get(x, y int) Cell {
	if c.contains(x, y) {
		return c.cells[y][x]
	}
	return blank
}

// Rune returns the character a cell is displayed as: its text if any,
// otherwise its braille dots
func (cell Cell) Rune() rune {
	if cell.Char == ' ' && cell.Dots != 0 {
		return rune(brailleBase + int(cell.Dots))
	}
	return cell.Char
}

// Clear resets the entire canvas to spaces with default style
func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for x := range row {
			row[x] = blank
		}
	}
}

// DrawText draws a string at the given position, one rune per cell
func (c *Canvas) DrawText(x, y int, text string, style tcell.Style) {
	for _, char := range text {
		c.Set(x, y, char, style)
		x++
	}
}

// Width returns the canvas width
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height
func (c *Canvas) Height() int {
	return c.height
}

// PixelWidth returns the canvas width in dots
func (c *Canvas) PixelWidth() int {
	return c.width * DotsX
}

// PixelHeight returns the canvas height in dots
func (c *Canvas) PixelHeight() int {
	return c.height * DotsY
}

// Blit renders the canvas to a tcell screen
func (c *Canvas) Blit(screen tcell.Screen, offsetX, offsetY int) {
	for y, row := range c.cells {
		for x, cell := range row {
			screen.SetContent(offsetX+x, offsetY+y, cell.Rune(), nil, cell.Style)
		}
	}
}
