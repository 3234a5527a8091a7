package ui

import (
	"itinglobe/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// clearPanel blanks the inside of a panel so it is opaque over the globe
func clearPanel(screen tcell.Screen, x, y, width, height int) {
	for row := y + 1; row < y+height-1; row++ {
		for col := x + 1; col < x+width-1; col++ {
			screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
	}
}

// drawBorder draws a box outline
func drawBorder(screen tcell.Screen, x, y, width, height int) {
	style := render.StyleLabel

	screen.SetContent(x, y, '┌', nil, style)
	screen.SetContent(x+width-1, y, '┐', nil, style)
	screen.SetContent(x, y+height-1, '└', nil, style)
	screen.SetContent(x+width-1, y+height-1, '┘', nil, style)

	for i := 1; i < width-1; i++ {
		screen.SetContent(x+i, y, '─', nil, style)
		screen.SetContent(x+i, y+height-1, '─', nil, style)
	}

	for i := 1; i < height-1; i++ {
		screen.SetContent(x, y+i, '│', nil, style)
		screen.SetContent(x+width-1, y+i, '│', nil, style)
	}
}

// drawTitle centers a title in a panel's top border
func drawTitle(screen tcell.Screen, x, y, width int, title string) {
	tx := x + (width-runewidth.StringWidth(title))/2
	drawString(screen, tx, y, title, render.StyleLabel)
}

// drawString writes text cell by cell, advancing by each rune's display width
func drawString(screen tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
	return x
}

// truncate cuts text to at most width display cells
func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}
