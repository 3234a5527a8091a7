package ui

import (
	"itinglobe/internal/debug"
	"itinglobe/internal/render"

	"github.com/gdamore/tcell/v2"
)

// fitMargin is the share of the smaller view dimension the fitted globe covers
const fitMargin = 0.9

// GlobeView displays the globe. Its renderer is the globe's drawing backend;
// one braille dot is one projected pixel.
type GlobeView struct {
	renderer *render.GlobeRenderer
	canvas   *render.Canvas
	width    int
	height   int
}

// NewGlobeView creates a globe view covering width x height cells
func NewGlobeView(width, height int) *GlobeView {
	return &GlobeView{
		renderer: render.NewGlobeRenderer(),
		canvas:   render.NewCanvas(width, height),
		width:    width,
		height:   height,
	}
}

// Renderer returns the backend the globe draws into
func (v *GlobeView) Renderer() *render.GlobeRenderer {
	return v.renderer
}

// PixelSize returns the view size in dots
func (v *GlobeView) PixelSize() (float64, float64) {
	return float64(v.canvas.PixelWidth()), float64(v.canvas.PixelHeight())
}

// FitScale returns a scale at which the globe fills most of the view
func (v *GlobeView) FitScale() float64 {
	w, h := v.PixelSize()
	return fitMargin * min(w, h) / 2
}

// Draw renders the globe view to the screen
func (v *GlobeView) Draw(screen tcell.Screen) {
	v.canvas.Clear()
	v.renderer.Draw(v.canvas)
	v.canvas.Blit(screen, 0, 0)
}

// UpdateDimensions updates the view dimensions when the screen is resized
func (v *GlobeView) UpdateDimensions(width, height int) {
	v.width = width
	v.height = height
	v.canvas = render.NewCanvas(width, height)
	debug.Log("globe view resized to %dx%d cells", width, height)
}
