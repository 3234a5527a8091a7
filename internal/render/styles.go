package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette, following the page the globe was first drawn on: dark globe,
// light country outlines, red pins
var (
	ColorOcean   = hexColor("#0b1d3a")
	ColorBorder  = hexColor("#e8e8e8")
	ColorPin     = hexColor("#ff3030")
	ColorHorizon = hexColor("#3a5a8c")
)

// Style definitions for globe elements and panels
var (
	StyleBorder       = tcell.StyleDefault.Foreground(ColorBorder)
	StylePin          = tcell.StyleDefault.Foreground(ColorPin).Bold(true)
	StyleHorizon      = tcell.StyleDefault.Foreground(ColorHorizon)
	StyleLabel        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleListItem     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleListHidden   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	StyleListSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// hexColor converts a "#rrggbb" string to a true-color tcell color
func hexColor(hex string) tcell.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Blend mixes two palette colors in Lab space; t=0 gives a, t=1 gives b
func Blend(a, b tcell.Color, t float64) tcell.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	ca := colorful.Color{R: float64(ar) / 255, G: float64(ag) / 255, B: float64(ab) / 255}
	cb := colorful.Color{R: float64(br) / 255, G: float64(bg) / 255, B: float64(bb) / 255}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}
